// Package events defines the gesture event model: raw swipe sub-events as
// they arrive from the input device, and the classified action events that
// trigger configured actions.
package events

import "fmt"

// ActionEvent is a classified swipe gesture: a finger count combined with one
// of eight compass directions. The first eight values are the three-finger
// swipes in octant order, the last eight are their four-finger counterparts.
type ActionEvent int

const (
	ThreeFingerSwipeLeft ActionEvent = iota
	ThreeFingerSwipeLeftUp
	ThreeFingerSwipeUp
	ThreeFingerSwipeRightUp
	ThreeFingerSwipeRight
	ThreeFingerSwipeRightDown
	ThreeFingerSwipeDown
	ThreeFingerSwipeLeftDown
	FourFingerSwipeLeft
	FourFingerSwipeLeftUp
	FourFingerSwipeUp
	FourFingerSwipeRightUp
	FourFingerSwipeRight
	FourFingerSwipeRightDown
	FourFingerSwipeDown
	FourFingerSwipeLeftDown

	NumActionEvents = 16
)

var actionEventNames = [NumActionEvents]string{
	"three-finger-swipe-left",
	"three-finger-swipe-left-up",
	"three-finger-swipe-up",
	"three-finger-swipe-right-up",
	"three-finger-swipe-right",
	"three-finger-swipe-right-down",
	"three-finger-swipe-down",
	"three-finger-swipe-left-down",
	"four-finger-swipe-left",
	"four-finger-swipe-left-up",
	"four-finger-swipe-up",
	"four-finger-swipe-right-up",
	"four-finger-swipe-right",
	"four-finger-swipe-right-down",
	"four-finger-swipe-down",
	"four-finger-swipe-left-down",
}

func (e ActionEvent) String() string {
	if e < 0 || e >= NumActionEvents {
		return fmt.Sprintf("action-event(%d)", int(e))
	}
	return actionEventNames[e]
}

// FingerCount returns the number of fingers for the event, 3 or 4.
func (e ActionEvent) FingerCount() int {
	if e >= FourFingerSwipeLeft {
		return 4
	}
	return 3
}

// ParseActionEvent resolves the kebab-case name of an action event, as used
// in configuration files and command-line flags.
func ParseActionEvent(name string) (ActionEvent, error) {
	for i, n := range actionEventNames {
		if n == name {
			return ActionEvent(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action event %q", name)
}

// AllActionEvents returns every ActionEvent in declaration order.
func AllActionEvents() []ActionEvent {
	all := make([]ActionEvent, NumActionEvents)
	for i := range all {
		all[i] = ActionEvent(i)
	}
	return all
}

// SwipeEventType tags a raw swipe sub-event.
type SwipeEventType int

const (
	// SwipeBegin starts a new swipe gesture.
	SwipeBegin SwipeEventType = iota
	// SwipeUpdate reports a displacement change within a swipe.
	SwipeUpdate
	// SwipeEnd finishes a swipe, carrying the finger count.
	SwipeEnd
	// SwipeOther is any swipe sub-event the pipeline does not understand.
	SwipeOther
)

func (t SwipeEventType) String() string {
	switch t {
	case SwipeBegin:
		return "begin"
	case SwipeUpdate:
		return "update"
	case SwipeEnd:
		return "end"
	default:
		return "other"
	}
}

// SwipeEvent is one raw sub-event of a continuous swipe, as drained from the
// input device. DX/DY are set for updates, FingerCount for ends.
type SwipeEvent struct {
	Type        SwipeEventType
	DX, DY      float64
	FingerCount int
}

// EndedSwipe is the finished gesture a tracked swipe collapses into: the
// accumulated displacement plus the finger count reported at the end.
type EndedSwipe struct {
	DX, DY      float64
	FingerCount int
}
