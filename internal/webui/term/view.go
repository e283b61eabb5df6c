// Package term renders the webui views on a terminal.  It is the
// binding seatsctl uses: element writes become colored lines, form
// fields are seeded from flags, tables print as aligned columns.
package term

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/uowclimb/society-seats/internal/webui"
)

var (
	successText = color.New(color.FgGreen)
	dangerText  = color.New(color.FgRed, color.Bold)
	headerText  = color.New(color.FgCyan, color.Bold)
)

// View implements webui.View and webui.DashboardView against an
// io.Writer.  Field values come from a map seeded by the CLI.
type View struct {
	Out io.Writer

	mu       sync.Mutex
	fields   map[string]string
	checks   map[string]bool
	styles   map[string]webui.Style
	text     map[string]string
	rows     map[int]webui.EventRow
	editing  map[int]map[string]string
	selected string
	navigate func(url string)
}

// NewView builds a terminal view writing to out.
func NewView(out io.Writer) *View {
	return &View{
		Out:     out,
		fields:  map[string]string{},
		checks:  map[string]bool{},
		styles:  map[string]webui.Style{},
		text:    map[string]string{},
		rows:    map[int]webui.EventRow{},
		editing: map[int]map[string]string{},
	}
}

// SetField seeds a form field, standing in for the user typing it.
func (v *View) SetField(name, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fields[name] = value
}

// SetChecked seeds a checkbox.
func (v *View) SetChecked(name string, checked bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.checks[name] = checked
}

// SelectEvent seeds the event select, standing in for the dropdown.
func (v *View) SelectEvent(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = id
}

// OnNavigate installs the redirect hook.
func (v *View) OnNavigate(fn func(url string)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.navigate = fn
}

func (v *View) SetText(id, text string) {
	v.mu.Lock()
	v.text[id] = text
	style := v.styles[id]
	v.mu.Unlock()
	if text == "" {
		return
	}
	v.println(style, fmt.Sprintf("%-22s %s", id+":", text))
}

func (v *View) SetStyle(id string, style webui.Style) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.styles[id] = style
}

func (v *View) SetEnabled(id string, enabled bool) {
	if !enabled {
		v.println(webui.StyleDanger, fmt.Sprintf("[%s disabled]", id))
	}
}

func (v *View) SetVisible(id string, visible bool) {
	if visible {
		v.println(webui.StyleNone, fmt.Sprintf("[%s shown]", id))
	}
}

func (v *View) Field(name string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fields[name]
}

func (v *View) Checked(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.checks[name]
}

func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fields = map[string]string{}
	v.checks = map[string]bool{}
}

func (v *View) Navigate(url string) {
	v.mu.Lock()
	fn := v.navigate
	v.mu.Unlock()
	if fn != nil {
		fn(url)
		return
	}
	v.println(webui.StyleNone, "-> "+url)
}

// SetEventRows prints the event table and remembers the rows so
// EditRow can seed its inputs from them.
func (v *View) SetEventRows(rows []webui.EventRow) {
	v.mu.Lock()
	v.rows = make(map[int]webui.EventRow, len(rows))
	for _, row := range rows {
		v.rows[row.ID] = row
	}
	v.mu.Unlock()

	headerText.Fprintln(v.Out, "Events")
	w := tabwriter.NewWriter(v.Out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\t"+strings.Join(webui.EventFields, "\t"))
	for _, row := range rows {
		cols := make([]string, 0, len(webui.EventFields)+1)
		cols = append(cols, fmt.Sprint(row.ID))
		for _, f := range webui.EventFields {
			cols = append(cols, row.Fields[f])
		}
		fmt.Fprintln(w, strings.Join(cols, "\t"))
	}
	w.Flush()
}

// EditRow seeds the edit inputs from the rendered row, then overlays
// any fields the user passed as flags.  Flags the user omitted keep
// their current values, so a partial edit never blanks a field.
func (v *View) EditRow(id int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	inputs := map[string]string{}
	for _, f := range webui.EventFields {
		inputs[f] = v.rows[id].Fields[f]
		if set, ok := v.fields[f]; ok {
			inputs[f] = set
		}
	}
	v.editing[id] = inputs
}

func (v *View) EditedFields(id int) map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editing[id]
}

func (v *View) SetEventOptions(opts []webui.EventOption) {
	headerText.Fprintln(v.Out, "Event select")
	for _, o := range opts {
		fmt.Fprintf(v.Out, "  [%d] %s\n", o.ID, o.Label)
	}
}

func (v *View) SelectedEvent() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

// SetParticipantRows prints the participant table.
func (v *View) SetParticipantRows(rows []webui.ParticipantRow) {
	headerText.Fprintln(v.Out, "Participants")
	w := tabwriter.NewWriter(v.Out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tfirst_name\tlast_name")
	for _, row := range rows {
		if row.Placeholder {
			fmt.Fprintf(w, "-\t%s\t%s\n", row.FirstName, row.LastName)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", row.ID, row.FirstName, row.LastName)
	}
	w.Flush()
}

func (v *View) ShowPopup(text string) {
	successText.Fprintln(v.Out, text)
}

func (v *View) HidePopup() {}

func (v *View) println(style webui.Style, line string) {
	switch style {
	case webui.StyleSuccess:
		successText.Fprintln(v.Out, line)
	case webui.StyleDanger:
		dangerText.Fprintln(v.Out, line)
	default:
		fmt.Fprintln(v.Out, line)
	}
}
