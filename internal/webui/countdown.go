package webui

import (
	"strconv"
	"sync"
	"time"
)

// Breakdown is a remaining duration split into display units by floor
// division: days first, then the remainders down to seconds.
type Breakdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// SplitDuration computes the countdown breakdown of d.
func SplitDuration(d time.Duration) Breakdown {
	return Breakdown{
		Days:    int(d / (24 * time.Hour)),
		Hours:   int(d % (24 * time.Hour) / time.Hour),
		Minutes: int(d % time.Hour / time.Minute),
		Seconds: int(d % time.Minute / time.Second),
	}
}

// Countdown renders the time left until registration closes and
// disables the form when it runs out.  The target arrives
// asynchronously from the event-detail fetch, so ticks that fire
// before SetTarget are no-ops rather than counting down from a zero
// target.  The closed transition happens exactly once; later ticks
// leave the view alone.
type Countdown struct {
	view View

	mu     sync.Mutex
	target time.Time
	set    bool
	closed bool
	ticker *time.Ticker
	done   chan struct{}
}

// NewCountdown builds a Countdown rendering into view.
func NewCountdown(view View) *Countdown {
	return &Countdown{view: view}
}

// SetTarget arms the countdown.  Called when the close date becomes
// known; until then Tick does nothing.
func (cd *Countdown) SetTarget(t time.Time) {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	cd.target = t
	cd.set = true
}

// Tick renders the countdown state as of now.
func (cd *Countdown) Tick(now time.Time) {
	cd.mu.Lock()
	defer cd.mu.Unlock()

	if !cd.set {
		return
	}

	distance := cd.target.Sub(now)
	if distance < 0 {
		if !cd.closed {
			cd.closed = true
			cd.view.SetVisible(ElemCountdownList, false)
			cd.view.SetVisible(ElemCountdownOver, true)
			cd.view.SetEnabled(ElemSubmitButton, false)
		}
		return
	}

	b := SplitDuration(distance)
	cd.view.SetText(ElemCountdownDays, strconv.Itoa(b.Days))
	cd.view.SetText(ElemCountdownHours, strconv.Itoa(b.Hours))
	cd.view.SetText(ElemCountdownMins, strconv.Itoa(b.Minutes))
	cd.view.SetText(ElemCountdownSecs, strconv.Itoa(b.Seconds))
}

// Closed reports whether the countdown has expired.
func (cd *Countdown) Closed() bool {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	return cd.closed
}

// Start ticks the countdown every interval until Stop is called.
func (cd *Countdown) Start(interval time.Duration) {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	if cd.ticker != nil {
		return
	}
	cd.ticker = time.NewTicker(interval)
	cd.done = make(chan struct{})
	go func(ticker *time.Ticker, done chan struct{}) {
		for {
			select {
			case now := <-ticker.C:
				cd.Tick(now)
			case <-done:
				return
			}
		}
	}(cd.ticker, cd.done)
}

// Stop tears the timer down.  Part of view teardown so navigating
// away does not leak a ticking goroutine.
func (cd *Countdown) Stop() {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	if cd.ticker == nil {
		return
	}
	cd.ticker.Stop()
	close(cd.done)
	cd.ticker = nil
}
