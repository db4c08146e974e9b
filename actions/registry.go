package actions

import (
	"strings"

	"github.com/swipectl/swipectl/events"
	"github.com/swipectl/swipectl/ipc"
	"github.com/swipectl/swipectl/utils"
)

// Registry maps every ActionEvent to its ordered list of actions. All 16
// events are always present, possibly with an empty list; lookups never
// fail for a valid event. The registry is built once at startup and
// read-only afterwards.
type Registry struct {
	actions map[events.ActionEvent][]Action
}

// NewRegistry builds the registry from configured action specs, keyed by
// action event name. Entries with a kind outside enabledKinds, or with an
// unknown kind, are dropped with a warning.
func NewRegistry(specs map[string][]Spec, enabledKinds []string, manager *ipc.Manager) *Registry {
	registry := &Registry{
		actions: make(map[events.ActionEvent][]Action, events.NumActionEvents),
	}

	enabled := make(map[string]bool, len(enabledKinds))
	for _, kind := range enabledKinds {
		enabled[kind] = true
	}

	for _, event := range events.AllActionEvents() {
		list := []Action{}
		for _, spec := range specs[event.String()] {
			if !enabled[spec.Kind] {
				utils.Warn("removing disabled action in %s: %s", event, spec)
				continue
			}

			switch spec.Kind {
			case KindCommand:
				list = append(list, NewCommandAction(spec.Command))
			case KindIpc:
				list = append(list, NewIpcAction(spec.Command, manager))
			default:
				utils.Warn("unknown action kind %q in %s", spec.Kind, event)
			}
		}
		registry.actions[event] = list
	}

	return registry
}

// Replace swaps the action list registered for an event. Tests use this to
// install scripted actions.
func (r *Registry) Replace(event events.ActionEvent, list []Action) {
	r.actions[event] = list
}

// ActionsFor returns the ordered action list for an event. The list is
// never nil for a valid event.
func (r *Registry) ActionsFor(event events.ActionEvent) []Action {
	return r.actions[event]
}

// Describe renders the action list of an event for diagnostics.
func (r *Registry) Describe(event events.ActionEvent) string {
	rendered := make([]string, 0, len(r.actions[event]))
	for _, action := range r.actions[event] {
		rendered = append(rendered, action.String())
	}
	return strings.Join(rendered, ", ")
}

// Total returns the number of registered actions across all events.
func (r *Registry) Total() int {
	total := 0
	for _, list := range r.actions {
		total += len(list)
	}
	return total
}
