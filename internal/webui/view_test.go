package webui

import "sync"

// fakeView records every render call so tests can assert on what a
// controller drew without a real page.
type fakeView struct {
	mu sync.Mutex

	texts    map[string]string
	styles   map[string]Style
	enabled  map[string][]bool
	visible  map[string]bool
	fields   map[string]string
	checks   map[string]bool
	navs     []string
	resets   int
	disables map[string]int

	eventRows    [][]EventRow
	editedRows   []int
	edits        map[int]map[string]string
	options      []EventOption
	selected     string
	participants [][]ParticipantRow
	popups       []string
	popupHides   int
}

func newFakeView() *fakeView {
	return &fakeView{
		texts:    map[string]string{},
		styles:   map[string]Style{},
		enabled:  map[string][]bool{},
		visible:  map[string]bool{},
		fields:   map[string]string{},
		checks:   map[string]bool{},
		disables: map[string]int{},
		edits:    map[int]map[string]string{},
	}
}

func (v *fakeView) SetText(id, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.texts[id] = text
}

func (v *fakeView) SetStyle(id string, style Style) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.styles[id] = style
}

func (v *fakeView) SetEnabled(id string, enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.enabled[id] = append(v.enabled[id], enabled)
	if !enabled {
		v.disables[id]++
	}
}

func (v *fakeView) SetVisible(id string, visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible[id] = visible
}

func (v *fakeView) Field(name string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fields[name]
}

func (v *fakeView) Checked(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.checks[name]
}

func (v *fakeView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resets++
}

func (v *fakeView) Navigate(url string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.navs = append(v.navs, url)
}

func (v *fakeView) SetEventRows(rows []EventRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.eventRows = append(v.eventRows, rows)
}

// EditRow seeds the edit inputs from the last rendered values, so a
// save with untouched inputs reads back exactly what was displayed.
func (v *fakeView) EditRow(id int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editedRows = append(v.editedRows, id)
	if len(v.eventRows) == 0 {
		return
	}
	for _, row := range v.eventRows[len(v.eventRows)-1] {
		if row.ID == id {
			inputs := map[string]string{}
			for k, val := range row.Fields {
				inputs[k] = val
			}
			v.edits[id] = inputs
		}
	}
}

func (v *fakeView) EditedFields(id int) map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.edits[id]
}

func (v *fakeView) SetEventOptions(opts []EventOption) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.options = opts
}

func (v *fakeView) SelectedEvent() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

func (v *fakeView) SetParticipantRows(rows []ParticipantRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.participants = append(v.participants, rows)
}

func (v *fakeView) ShowPopup(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.popups = append(v.popups, text)
}

func (v *fakeView) HidePopup() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.popupHides++
}

func (v *fakeView) text(id string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.texts[id]
}

func (v *fakeView) style(id string) Style {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.styles[id]
}

func (v *fakeView) disableCount(id string) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.disables[id]
}

func (v *fakeView) lastParticipants() []ParticipantRow {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.participants) == 0 {
		return nil
	}
	return v.participants[len(v.participants)-1]
}

// fakeClipboard records copies and can simulate a copy failure.
type fakeClipboard struct {
	mu     sync.Mutex
	copied []string
	err    error
}

func (c *fakeClipboard) Copy(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.copied = append(c.copied, text)
	return c.err
}
