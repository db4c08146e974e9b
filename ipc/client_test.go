package ipc

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindowManager answers protocol requests on the far end of a pipe.
func fakeWindowManager(t *testing.T, conn net.Conn, outcomes []CommandOutcome, commandLog chan<- string) {
	t.Helper()

	go func() {
		defer conn.Close()
		for {
			msgType, payload, err := readMessage(conn)
			if err != nil {
				return
			}

			var reply []byte
			switch msgType {
			case messageRunCommand:
				if commandLog != nil {
					commandLog <- string(payload)
				}
				reply, _ = json.Marshal(outcomes)
			case messageGetVersion:
				reply, _ = json.Marshal(Version{Major: 4, Minor: 23, HumanReadable: "4.23"})
			}

			if err := writeMessage(conn, msgType, reply); err != nil {
				return
			}
		}
	}()
}

func TestConnection_RunCommand(t *testing.T) {
	client, server := net.Pipe()
	commandLog := make(chan string, 1)
	fakeWindowManager(t, server, []CommandOutcome{{Success: true}}, commandLog)

	conn := NewConnection(client)
	defer conn.Close()

	outcomes, err := conn.RunCommand("workspace next")
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Success)
	assert.Equal(t, "workspace next", <-commandLog)
}

func TestConnection_RunCommand_FailedOutcome(t *testing.T) {
	client, server := net.Pipe()
	fakeWindowManager(t, server, []CommandOutcome{
		{Success: true},
		{Success: false, Error: "no such workspace"},
	}, nil)

	conn := NewConnection(client)
	defer conn.Close()

	outcomes, err := conn.RunCommand("workspace nope; focus")
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.False(t, outcomes[1].Success)
	assert.Equal(t, "no such workspace", outcomes[1].Error)
}

func TestConnection_GetVersion(t *testing.T) {
	client, server := net.Pipe()
	fakeWindowManager(t, server, nil, nil)

	conn := NewConnection(client)
	defer conn.Close()

	version, err := conn.GetVersion()
	require.NoError(t, err)
	assert.Equal(t, "4.23", version.HumanReadable)
	assert.Equal(t, 4, version.Major)
}

func TestConnection_TransportError(t *testing.T) {
	client, server := net.Pipe()
	server.Close()

	conn := NewConnection(client)
	defer conn.Close()

	_, err := conn.RunCommand("workspace next")
	assert.Error(t, err)
}

func TestSocketPath_PrefersSway(t *testing.T) {
	t.Setenv("SWAYSOCK", "/run/sway.sock")
	t.Setenv("I3SOCK", "/run/i3.sock")

	path, err := SocketPath()
	require.NoError(t, err)
	assert.Equal(t, "/run/sway.sock", path)
}

func TestSocketPath_Unset(t *testing.T) {
	t.Setenv("SWAYSOCK", "")
	t.Setenv("I3SOCK", "")

	_, err := SocketPath()
	assert.Error(t, err)
}
