package ipc

import (
	"errors"
	"sync"

	"github.com/swipectl/swipectl/utils"
)

// ErrNotConnected is returned by TryRun when no connection could be
// established.
var ErrNotConnected = errors.New("connection is not set")

// ErrUnsuccessfulOutcome is returned by TryRun when the window manager
// reports failure for any sub-command of the issued command.
var ErrUnsuccessfulOutcome = errors.New("unsuccessful outcome(s)")

// DialFunc establishes a window manager connection.
type DialFunc func() (*Connection, error)

// Manager owns the optional, shared window manager connection. The
// connection is established lazily on first use and attempted exactly once:
// a failed attempt is terminal for the process lifetime, after which every
// TryRun fails with ErrNotConnected.
type Manager struct {
	dial DialFunc

	once sync.Once
	mu   sync.Mutex
	conn *Connection
}

// NewManager returns a Manager that dials the socket from the environment.
func NewManager() *Manager {
	return &Manager{dial: Connect}
}

// NewManagerWithDial returns a Manager with a custom dialer. Tests use this
// to stand in a fake window manager.
func NewManagerWithDial(dial DialFunc) *Manager {
	return &Manager{dial: dial}
}

func (m *Manager) acquire() *Connection {
	m.once.Do(func() {
		conn, err := m.dial()
		if err != nil {
			utils.Warn("ipc: could not establish a connection: %v", err)
			return
		}

		version := "unknown"
		if v, err := conn.GetVersion(); err == nil && v.HumanReadable != "" {
			version = v.HumanReadable
		}
		utils.Info("ipc: connection opened (version %s)", version)

		m.conn = conn
	})

	return m.conn
}

// Connected reports whether a connection is established, attempting the
// one-time connect if it has not happened yet.
func (m *Manager) Connected() bool {
	return m.acquire() != nil
}

// TryRun issues a command over the shared connection. It fails with
// ErrNotConnected when the connection is absent, with the transport error
// when the round trip fails, and with ErrUnsuccessfulOutcome when the reply
// carries any failed sub-command.
func (m *Manager) TryRun(command string) error {
	conn := m.acquire()
	if conn == nil {
		return ErrNotConnected
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	outcomes, err := conn.RunCommand(command)
	if err != nil {
		return err
	}

	for _, outcome := range outcomes {
		if !outcome.Success {
			return ErrUnsuccessfulOutcome
		}
	}

	return nil
}

// Close releases the connection if one was established.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		return nil
	}
	return m.conn.Close()
}
