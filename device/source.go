// Package device reads the touchpad through evdev and synthesizes swipe
// sub-events from its multitouch reports.
package device

import (
	"fmt"

	"github.com/holoplot/go-evdev"
	"github.com/swipectl/swipectl/events"
	"github.com/swipectl/swipectl/utils"
)

// EvdevSource drains swipe sub-events from one evdev multitouch device. It
// implements the dispatcher's event source contract: Wait blocks until an
// event is readable, Drain consumes events up to the next frame boundary.
type EvdevSource struct {
	dev     *evdev.InputDevice
	tr      *translator
	pending []*evdev.InputEvent
}

// Open opens a specific evdev device node.
func Open(path string) (*EvdevSource, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input device %s: %w", path, err)
	}

	if !isMultitouchTouchpad(dev) {
		dev.Close()
		return nil, fmt.Errorf("%s is not a multitouch touchpad", path)
	}

	return newSource(dev), nil
}

// Discover scans /dev/input for the first multitouch touchpad.
func Discover() (*EvdevSource, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to list input devices: %w", err)
	}

	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			utils.Verbose("skipping %s: %v", p.Path, err)
			continue
		}

		if isMultitouchTouchpad(dev) {
			utils.Info("using touchpad %q (%s)", p.Name, p.Path)
			return newSource(dev), nil
		}
		dev.Close()
	}

	return nil, fmt.Errorf("no multitouch touchpad found")
}

// DeviceInfo describes one input device node.
type DeviceInfo struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Touchpad bool   `json:"touchpad"`
}

// List enumerates the input device nodes under /dev/input and marks the
// ones usable as a swipe source.
func List() ([]DeviceInfo, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to list input devices: %w", err)
	}

	infos := make([]DeviceInfo, 0, len(paths))
	for _, p := range paths {
		info := DeviceInfo{Path: p.Path, Name: p.Name}
		if dev, err := evdev.Open(p.Path); err == nil {
			info.Touchpad = isMultitouchTouchpad(dev)
			dev.Close()
		}
		infos = append(infos, info)
	}

	return infos, nil
}

func newSource(dev *evdev.InputDevice) *EvdevSource {
	resolutionX, resolutionY := resolutions(dev)
	return &EvdevSource{
		dev: dev,
		tr:  newTranslator(resolutionX, resolutionY),
	}
}

// isMultitouchTouchpad reports whether the device exposes multitouch slots
// and the finger-count switches swipe tracking depends on.
func isMultitouchTouchpad(dev *evdev.InputDevice) bool {
	hasSlots := false
	for _, code := range dev.CapableEvents(evdev.EV_ABS) {
		if code == evdev.ABS_MT_SLOT {
			hasSlots = true
			break
		}
	}
	if !hasSlots {
		return false
	}

	for _, code := range dev.CapableEvents(evdev.EV_KEY) {
		if code == evdev.BTN_TOOL_TRIPLETAP {
			return true
		}
	}
	return false
}

func resolutions(dev *evdev.InputDevice) (float64, float64) {
	var resolutionX, resolutionY float64

	if infos, err := dev.AbsInfos(); err == nil {
		if info, ok := infos[evdev.ABS_MT_POSITION_X]; ok {
			resolutionX = float64(info.Resolution)
		}
		if info, ok := infos[evdev.ABS_MT_POSITION_Y]; ok {
			resolutionY = float64(info.Resolution)
		}
	}

	return resolutionX, resolutionY
}

// Wait blocks until at least one input event is readable. A read failure is
// fatal for the dispatch loop.
func (s *EvdevSource) Wait() error {
	if len(s.pending) > 0 {
		return nil
	}

	ev, err := s.dev.ReadOne()
	if err != nil {
		return fmt.Errorf("failed to read input event: %w", err)
	}

	s.pending = append(s.pending, ev)
	return nil
}

// Drain consumes input events up to the next SYN_REPORT frame boundary and
// returns the swipe sub-events synthesized for the frame.
func (s *EvdevSource) Drain() ([]events.SwipeEvent, error) {
	for {
		ev, err := s.next()
		if err != nil {
			return nil, fmt.Errorf("failed to read input event: %w", err)
		}

		if ev.Type == evdev.EV_SYN && ev.Code == evdev.SYN_REPORT {
			return s.tr.flush(), nil
		}
		s.tr.push(ev.Type, ev.Code, ev.Value)
	}
}

func (s *EvdevSource) next() (*evdev.InputEvent, error) {
	if len(s.pending) > 0 {
		ev := s.pending[0]
		s.pending = s.pending[1:]
		return ev, nil
	}
	return s.dev.ReadOne()
}

// Close releases the device node.
func (s *EvdevSource) Close() error {
	return s.dev.Close()
}
