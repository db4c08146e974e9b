// Package actions defines the side effects a classified gesture can trigger:
// spawning a shell command, or sending a command to the window manager over
// its IPC socket.
package actions

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"github.com/swipectl/swipectl/ipc"
)

// Action kind names as used in configuration entries.
const (
	KindCommand = "command"
	KindIpc     = "ipc"
)

// ExecutionError reports a failed action invocation. It is logged by the
// dispatcher and never aborts the remaining actions for an event.
type ExecutionError struct {
	Kind    string
	Message string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: command execution resulted in error: %s", e.Kind, e.Message)
}

// Action is one configured side effect. The set of implementations is
// closed: CommandAction and IpcAction.
type Action interface {
	// Execute performs the side effect, blocking until it completes.
	Execute() error
	// String renders the action as "{kind}:<{command}>" for diagnostics.
	String() string
}

// CommandAction spawns a shell command and waits for it. The exit code of
// the spawned program is deliberately ignored; only failure to parse or
// start the command is an error.
type CommandAction struct {
	command string
}

// NewCommandAction returns an action that runs the given command string.
func NewCommandAction(command string) *CommandAction {
	return &CommandAction{command: command}
}

func (a *CommandAction) Execute() error {
	argv, err := shlex.Split(a.command)
	if err != nil {
		return &ExecutionError{
			Kind:    KindCommand,
			Message: fmt.Sprintf("unable to parse command %q: %v", a.command, err),
		}
	}
	if len(argv) == 0 {
		return &ExecutionError{
			Kind:    KindCommand,
			Message: fmt.Sprintf("unable to parse command %q: empty command", a.command),
		}
	}

	if err := exec.Command(argv[0], argv[1:]...).Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// fire-and-forget: a program that ran and exited non-zero is
			// not an action failure
			return nil
		}
		return &ExecutionError{Kind: KindCommand, Message: err.Error()}
	}

	return nil
}

func (a *CommandAction) String() string {
	return fmt.Sprintf("%s:<%s>", KindCommand, a.command)
}

// IpcAction sends a command to the window manager through the shared
// connection manager.
type IpcAction struct {
	command string
	manager *ipc.Manager
}

// NewIpcAction returns an action that issues the given window manager
// command over the shared connection.
func NewIpcAction(command string, manager *ipc.Manager) *IpcAction {
	return &IpcAction{command: command, manager: manager}
}

func (a *IpcAction) Execute() error {
	if err := a.manager.TryRun(a.command); err != nil {
		return &ExecutionError{Kind: KindIpc, Message: err.Error()}
	}
	return nil
}

func (a *IpcAction) String() string {
	return fmt.Sprintf("%s:<%s>", KindIpc, a.command)
}

// Spec is an action as written in configuration: a kind plus the command
// string it carries.
type Spec struct {
	Kind    string
	Command string
}

// ParseSpec parses a "{kind}:{command}" action string. The kind is not
// validated here; unknown kinds are dropped with a warning when the
// registry is populated.
func ParseSpec(raw string) (Spec, error) {
	kind, command, found := strings.Cut(raw, ":")
	if !found || kind == "" || command == "" {
		return Spec{}, fmt.Errorf("action %q does not match the pattern {kind}:{command}", raw)
	}
	return Spec{Kind: kind, Command: command}, nil
}

func (s Spec) String() string {
	return fmt.Sprintf("%s:%s", s.Kind, s.Command)
}
