// Package ipc talks to the window manager's control socket. It implements
// the i3/sway IPC protocol directly over the unix socket advertised in the
// environment, and owns the process-wide connection lifecycle.
package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
)

// Connection is an established window manager IPC connection. Calls are
// strict request/reply; the caller serializes access.
type Connection struct {
	conn net.Conn
}

// SocketPath returns the window manager control socket path from the
// environment, preferring $SWAYSOCK over $I3SOCK.
func SocketPath() (string, error) {
	if path := os.Getenv("SWAYSOCK"); path != "" {
		return path, nil
	}
	if path := os.Getenv("I3SOCK"); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("neither SWAYSOCK nor I3SOCK is set")
}

// Connect dials the window manager control socket.
func Connect() (*Connection, error) {
	path, err := SocketPath()
	if err != nil {
		return nil, err
	}

	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", path, err)
	}

	return &Connection{conn: conn}, nil
}

// NewConnection wraps an already-established stream. Tests use this with an
// in-memory pipe.
func NewConnection(conn net.Conn) *Connection {
	return &Connection{conn: conn}
}

func (c *Connection) roundTrip(msgType uint32, payload []byte) ([]byte, error) {
	if err := writeMessage(c.conn, msgType, payload); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	replyType, reply, err := readMessage(c.conn)
	if err != nil {
		return nil, fmt.Errorf("failed to read reply: %w", err)
	}
	if replyType != msgType {
		return nil, fmt.Errorf("unexpected reply type %d for request type %d", replyType, msgType)
	}

	return reply, nil
}

// RunCommand issues a command to the window manager and returns the
// per-sub-command outcomes from the reply.
func (c *Connection) RunCommand(command string) ([]CommandOutcome, error) {
	reply, err := c.roundTrip(messageRunCommand, []byte(command))
	if err != nil {
		return nil, err
	}

	var outcomes []CommandOutcome
	if err := json.Unmarshal(reply, &outcomes); err != nil {
		return nil, fmt.Errorf("failed to decode command reply: %w", err)
	}

	return outcomes, nil
}

// GetVersion queries the window manager version.
func (c *Connection) GetVersion() (*Version, error) {
	reply, err := c.roundTrip(messageGetVersion, nil)
	if err != nil {
		return nil, err
	}

	var version Version
	if err := json.Unmarshal(reply, &version); err != nil {
		return nil, fmt.Errorf("failed to decode version reply: %w", err)
	}

	return &version, nil
}

// Close closes the underlying socket.
func (c *Connection) Close() error {
	return c.conn.Close()
}
