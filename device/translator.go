package device

import (
	"github.com/holoplot/go-evdev"
	"github.com/swipectl/swipectl/events"
)

// translator turns kernel multitouch events into swipe sub-events. It keys
// the swipe lifecycle off the BTN_TOOL_*TAP finger-count switches and tracks
// the primary contact (slot 0) for displacement updates.
//
// Events are pushed one at a time; flush is called at each SYN_REPORT frame
// boundary and returns the sub-events synthesized for the frame.
type translator struct {
	// fingers is non-zero while a swipe is in progress.
	fingers int

	// resolutionX/Y convert raw units to millimeters, when the device
	// reports a resolution.
	resolutionX, resolutionY float64

	slot             int32
	x, y             int32
	haveNewX, haveNewY bool
	lastX, lastY     int32
	haveLast         bool

	queued []events.SwipeEvent
}

func newTranslator(resolutionX, resolutionY float64) *translator {
	if resolutionX <= 0 {
		resolutionX = 1
	}
	if resolutionY <= 0 {
		resolutionY = 1
	}
	return &translator{resolutionX: resolutionX, resolutionY: resolutionY}
}

func (tr *translator) push(evType evdev.EvType, code evdev.EvCode, value int32) {
	switch evType {
	case evdev.EV_KEY:
		tr.pushKey(code, value)
	case evdev.EV_ABS:
		tr.pushAbs(code, value)
	}
}

func (tr *translator) pushKey(code evdev.EvCode, value int32) {
	var fingers int
	switch code {
	case evdev.BTN_TOOL_TRIPLETAP:
		fingers = 3
	case evdev.BTN_TOOL_QUADTAP:
		fingers = 4
	case evdev.BTN_TOOL_QUINTTAP:
		// tracked so the classifier can reject it by finger count
		fingers = 5
	default:
		return
	}

	if value == 1 {
		tr.begin(fingers)
	} else if tr.fingers == fingers {
		tr.end()
	}
}

func (tr *translator) pushAbs(code evdev.EvCode, value int32) {
	switch code {
	case evdev.ABS_MT_SLOT:
		tr.slot = value
	case evdev.ABS_MT_TRACKING_ID:
		// the primary contact was lifted or replaced; its next position
		// must not register as displacement
		if tr.slot == 0 {
			tr.haveLast = false
			tr.haveNewX = false
			tr.haveNewY = false
		}
	case evdev.ABS_MT_POSITION_X:
		if tr.slot == 0 {
			tr.x = value
			tr.haveNewX = true
		}
	case evdev.ABS_MT_POSITION_Y:
		if tr.slot == 0 {
			tr.y = value
			tr.haveNewY = true
		}
	}
}

func (tr *translator) begin(fingers int) {
	tr.fingers = fingers
	tr.haveLast = false
	tr.haveNewX = false
	tr.haveNewY = false
	tr.queued = append(tr.queued, events.SwipeEvent{Type: events.SwipeBegin})
}

func (tr *translator) end() {
	tr.queued = append(tr.queued, events.SwipeEvent{
		Type:        events.SwipeEnd,
		FingerCount: tr.fingers,
	})
	tr.fingers = 0
}

// flush finishes the current frame, returning its synthesized sub-events.
func (tr *translator) flush() []events.SwipeEvent {
	out := tr.queued
	tr.queued = nil

	if tr.fingers == 0 || (!tr.haveNewX && !tr.haveNewY) {
		return out
	}

	if tr.haveLast {
		dx := float64(tr.x-tr.lastX) / tr.resolutionX
		dy := float64(tr.y-tr.lastY) / tr.resolutionY
		if dx != 0 || dy != 0 {
			out = append(out, events.SwipeEvent{Type: events.SwipeUpdate, DX: dx, DY: dy})
		}
	}

	tr.lastX = tr.x
	tr.lastY = tr.y
	tr.haveLast = true
	tr.haveNewX = false
	tr.haveNewY = false

	return out
}
