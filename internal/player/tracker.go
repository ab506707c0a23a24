package player

import "errors"

// TimeSource is the minimal media surface the tracker observes. Media
// satisfies it.
type TimeSource interface {
	CurrentTime() float64
	OnTimeUpdate(fn func())
}

// Tracker turns a media element's time-update signal into a reactive
// current-time value for active-segment and active-clip computations. The
// element is attached explicitly by the page shell once it exists; there is
// no polling. Detach removes the listener on teardown.
type Tracker struct {
	source    TimeSource
	current   float64
	listeners []func(seconds float64)
}

var ErrNoMedia = errors.New("player: nil media")

// Attach starts observing a media element. Attaching while already attached
// replaces the previous element.
func (t *Tracker) Attach(source TimeSource) error {
	if source == nil {
		return ErrNoMedia
	}
	if t.source != nil {
		t.source.OnTimeUpdate(nil)
	}
	t.source = source
	t.current = source.CurrentTime()
	source.OnTimeUpdate(t.tick)
	return nil
}

// Detach stops observing and removes the time-update listener.
func (t *Tracker) Detach() {
	if t.source == nil {
		return
	}
	t.source.OnTimeUpdate(nil)
	t.source = nil
}

func (t *Tracker) Attached() bool { return t.source != nil }

// Current returns the last observed playback time.
func (t *Tracker) Current() float64 { return t.current }

// OnTime registers a listener invoked with the playback time on every tick.
func (t *Tracker) OnTime(fn func(seconds float64)) {
	t.listeners = append(t.listeners, fn)
}

func (t *Tracker) tick() {
	if t.source == nil {
		return
	}
	t.current = t.source.CurrentTime()
	for _, fn := range t.listeners {
		fn(t.current)
	}
}
