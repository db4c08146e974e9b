package events

// Accumulator tracks the running displacement of one in-progress swipe.
// It is a two-state machine: idle until a begin arrives, then tracking until
// the matching end. The zero value is ready to use.
//
// Accumulator is not safe for concurrent use; the dispatcher owns it.
type Accumulator struct {
	tracking bool
	dx, dy   float64
}

// Feed applies one raw sub-event to the accumulator. When the event finishes
// a tracked swipe it returns the accumulated displacement and finger count;
// otherwise it returns nil. Unrecognized sub-events yield
// ErrUnsupportedSwipeSubEvent and leave the state untouched.
func (a *Accumulator) Feed(ev SwipeEvent) (*EndedSwipe, error) {
	switch ev.Type {
	case SwipeBegin:
		a.dx = 0
		a.dy = 0
		a.tracking = true
	case SwipeUpdate:
		if a.tracking {
			a.dx += ev.DX
			a.dy += ev.DY
		}
	case SwipeEnd:
		if a.tracking {
			a.tracking = false
			return &EndedSwipe{DX: a.dx, DY: a.dy, FingerCount: ev.FingerCount}, nil
		}
	default:
		return nil, ErrUnsupportedSwipeSubEvent
	}

	return nil, nil
}

// Tracking reports whether a swipe is currently in progress.
func (a *Accumulator) Tracking() bool {
	return a.tracking
}
