package webui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSplitDuration(t *testing.T) {
	cases := []struct {
		name string
		d    time.Duration
		want Breakdown
	}{
		{"zero", 0, Breakdown{0, 0, 0, 0}},
		{"just seconds", 42 * time.Second, Breakdown{0, 0, 0, 42}},
		{"full mix", 2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second, Breakdown{2, 3, 4, 5}},
		{"sub-second floors to zero", 900 * time.Millisecond, Breakdown{0, 0, 0, 0}},
		{"exact day boundary", 24 * time.Hour, Breakdown{1, 0, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitDuration(tc.d))
		})
	}
}

func TestCountdownRendersBreakdown(t *testing.T) {
	view := newFakeView()
	cd := NewCountdown(view)

	target := time.Date(2026, 9, 16, 11, 0, 0, 0, time.UTC)
	cd.SetTarget(target)
	cd.Tick(target.Add(-(26*time.Hour + 30*time.Minute + 15*time.Second)))

	assert.Equal(t, "1", view.text(ElemCountdownDays))
	assert.Equal(t, "2", view.text(ElemCountdownHours))
	assert.Equal(t, "30", view.text(ElemCountdownMins))
	assert.Equal(t, "15", view.text(ElemCountdownSecs))
	assert.False(t, cd.Closed())
}

func TestCountdownTickBeforeTargetIsSafe(t *testing.T) {
	view := newFakeView()
	cd := NewCountdown(view)

	// The detail fetch has not landed yet; ticks must not render a
	// countdown from a zero target or close the form.
	cd.Tick(time.Now())
	cd.Tick(time.Now())

	assert.Empty(t, view.text(ElemCountdownDays))
	assert.False(t, cd.Closed())
	assert.Zero(t, view.disableCount(ElemSubmitButton))
}

func TestCountdownClosesExactlyOnce(t *testing.T) {
	view := newFakeView()
	cd := NewCountdown(view)

	target := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	cd.SetTarget(target)

	for i := 1; i <= 5; i++ {
		cd.Tick(target.Add(time.Duration(i) * time.Second))
	}

	assert.True(t, cd.Closed())
	assert.False(t, view.visible[ElemCountdownList])
	assert.True(t, view.visible[ElemCountdownOver])
	assert.Equal(t, 1, view.disableCount(ElemSubmitButton))
}

func TestCountdownStopEndsTicker(t *testing.T) {
	view := newFakeView()
	cd := NewCountdown(view)
	cd.SetTarget(time.Now().Add(time.Hour))

	cd.Start(time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	cd.Stop()
	// Stop again is a no-op.
	cd.Stop()

	assert.NotEmpty(t, view.text(ElemCountdownSecs))
}
