package actions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swipectl/swipectl/events"
	"github.com/swipectl/swipectl/ipc"
)

func testManager() *ipc.Manager {
	return ipc.NewManagerWithDial(func() (*ipc.Connection, error) {
		return nil, errors.New("no socket")
	})
}

func TestNewRegistry_AllEventsPresent(t *testing.T) {
	registry := NewRegistry(nil, nil, testManager())

	for _, event := range events.AllActionEvents() {
		list := registry.ActionsFor(event)
		assert.NotNil(t, list, "event %s must always have an entry", event)
		assert.Empty(t, list)
	}
	assert.Equal(t, 0, registry.Total())
}

func TestNewRegistry_PopulatesInOrder(t *testing.T) {
	specs := map[string][]Spec{
		"three-finger-swipe-right": {
			{Kind: "ipc", Command: "workspace next"},
			{Kind: "command", Command: "notify-send swiped"},
		},
	}

	registry := NewRegistry(specs, []string{"ipc", "command"}, testManager())

	list := registry.ActionsFor(events.ThreeFingerSwipeRight)
	require.Len(t, list, 2)
	assert.Equal(t, "ipc:<workspace next>", list[0].String())
	assert.Equal(t, "command:<notify-send swiped>", list[1].String())
	assert.Equal(t, 2, registry.Total())
}

func TestNewRegistry_DropsDisabledKinds(t *testing.T) {
	specs := map[string][]Spec{
		"three-finger-swipe-left": {
			{Kind: "command", Command: "touch /tmp/f"},
			{Kind: "ipc", Command: "workspace prev"},
		},
	}

	// only ipc enabled: the command entry is dropped, not an error
	registry := NewRegistry(specs, []string{"ipc"}, testManager())

	list := registry.ActionsFor(events.ThreeFingerSwipeLeft)
	require.Len(t, list, 1)
	assert.Equal(t, "ipc:<workspace prev>", list[0].String())
}

func TestNewRegistry_DropsUnknownKinds(t *testing.T) {
	specs := map[string][]Spec{
		"four-finger-swipe-up": {
			{Kind: "dbus", Command: "whatever"},
		},
	}

	registry := NewRegistry(specs, []string{"ipc", "command", "dbus"}, testManager())
	assert.Empty(t, registry.ActionsFor(events.FourFingerSwipeUp))
}

func TestRegistry_Describe(t *testing.T) {
	specs := map[string][]Spec{
		"three-finger-swipe-up": {
			{Kind: "command", Command: "true"},
			{Kind: "command", Command: "false"},
		},
	}

	registry := NewRegistry(specs, []string{"command"}, testManager())
	assert.Equal(t, "command:<true>, command:<false>", registry.Describe(events.ThreeFingerSwipeUp))
	assert.Equal(t, "", registry.Describe(events.FourFingerSwipeDown))
}
