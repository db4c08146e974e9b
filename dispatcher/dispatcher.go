// Package dispatcher runs the gesture pipeline: it drains raw swipe
// sub-events from the input device, accumulates them into displacement
// vectors, classifies finished swipes, and executes the registered actions.
package dispatcher

import (
	"fmt"
	"strings"

	"github.com/swipectl/swipectl/actions"
	"github.com/swipectl/swipectl/events"
	"github.com/swipectl/swipectl/utils"
)

// Source yields raw swipe sub-events from the input device. A non-nil error
// from either method is fatal and terminates the dispatch loop.
type Source interface {
	// Wait blocks until sub-events are available.
	Wait() error
	// Drain returns the currently pending sub-events, in order.
	Drain() ([]events.SwipeEvent, error)
}

// Dispatcher owns the classification parameters, the accumulator, and the
// action registry. It processes events strictly sequentially.
type Dispatcher struct {
	source   Source
	registry *actions.Registry

	threshold        float64
	invertX, invertY bool

	acc events.Accumulator
}

// New returns a Dispatcher over the given source and registry.
func New(source Source, registry *actions.Registry, threshold float64, invertX, invertY bool) *Dispatcher {
	return &Dispatcher{
		source:    source,
		registry:  registry,
		threshold: threshold,
		invertX:   invertX,
		invertY:   invertY,
	}
}

// Run executes the dispatch loop until the source fails. Classification and
// action failures are logged and absorbed; only source errors propagate.
func (d *Dispatcher) Run() error {
	d.logStatus()
	utils.Info("listening for events ...")

	for {
		if err := d.source.Wait(); err != nil {
			return fmt.Errorf("waiting for input events: %w", err)
		}

		drained, err := d.source.Drain()
		if err != nil {
			return fmt.Errorf("draining input events: %w", err)
		}

		for _, ev := range drained {
			d.process(ev)
		}
	}
}

func (d *Dispatcher) process(ev events.SwipeEvent) {
	end, err := d.acc.Feed(ev)
	if err != nil {
		utils.Verbose("discarding event: %v", err)
		return
	}
	if end == nil {
		return
	}

	actionEvent, err := events.Classify(
		end.DX, end.DY, end.FingerCount,
		d.threshold, d.invertX, d.invertY,
	)
	if err != nil {
		utils.Verbose("discarding event: %v", err)
		return
	}

	d.Trigger(actionEvent)
}

// Trigger executes every action registered for the event, in registration
// order. A failing action is logged as a warning and does not stop the
// remaining actions.
func (d *Dispatcher) Trigger(actionEvent events.ActionEvent) {
	list := d.registry.ActionsFor(actionEvent)
	utils.Verbose("received end event: %s, triggering %d actions", actionEvent, len(list))

	for _, action := range list {
		if err := action.Execute(); err != nil {
			utils.Warn("error executing action %s: %v", action, err)
		}
	}
}

// logStatus prints the registered actions per event at debug level and a
// per-event count summary at info level.
func (d *Dispatcher) logStatus() {
	var threeFinger, fourFinger []string

	for _, event := range events.AllActionEvents() {
		utils.Verbose(" * %s: %s", event, d.registry.Describe(event))

		count := fmt.Sprintf("%d", len(d.registry.ActionsFor(event)))
		if event.FingerCount() == 3 {
			threeFinger = append(threeFinger, count)
		} else {
			fourFinger = append(fourFinger, count)
		}
	}

	utils.Info("%s, %s actions enabled",
		strings.Join(threeFinger, "/"),
		strings.Join(fourFinger, "/"),
	)
}
