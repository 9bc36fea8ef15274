package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// DefaultTimeout bounds a single desktop notification command.
const DefaultTimeout = 5 * time.Second

// allowedCommands maps the permitted notification programs to their
// argument builders.
var allowedCommands = map[string]func(Event) []string{
	"notify-send": func(e Event) []string {
		return []string{"--app-name=vibetasks", "--icon=calendar", e.Summary(), e.Body()}
	},
	"osascript": func(e Event) []string {
		script := fmt.Sprintf("display notification %s with title %s", appleQuote(e.Body()), appleQuote(e.Summary()))
		return []string{"-e", script}
	},
}

func appleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// CommandNotifier sends desktop notifications through an allowlisted
// local program.
type CommandNotifier struct {
	command string
	timeout time.Duration
}

// NewCommandNotifier returns a notifier for command, which must be in the
// allowlist.
func NewCommandNotifier(command string) (*CommandNotifier, error) {
	if _, ok := allowedCommands[command]; !ok {
		return nil, fmt.Errorf("notification command not allowed: %s", command)
	}
	return &CommandNotifier{command: command, timeout: DefaultTimeout}, nil
}

// Name returns the program used for delivery.
func (c *CommandNotifier) Name() string {
	return c.command
}

// Args returns the argument list for e.
func (c *CommandNotifier) Args(e Event) []string {
	return allowedCommands[c.command](e)
}

// Notify runs the notification program and fails on a non-zero exit.
func (c *CommandNotifier) Notify(ctx context.Context, e Event) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.command, c.Args(e)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("%s exited with %d: %s", c.command, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("exec %s: %w", c.command, err)
	}
	return nil
}

// WriterNotifier prints alerts instead of showing them.
type WriterNotifier struct {
	W io.Writer
}

// Notify writes one line per alert.
func (w *WriterNotifier) Notify(ctx context.Context, e Event) error {
	_, err := fmt.Fprintf(w.W, "🔔 #%d %s: %s\n", e.TaskID, e.Summary(), e.Body())
	return err
}

// Notifier kinds accepted by New.
const (
	KindAuto       = "auto"
	KindNotifySend = "notify-send"
	KindOsascript  = "osascript"
	KindStdout     = "stdout"
)

// New builds the notifier for kind. "auto" chooses by operating system and
// falls back to printing on platforms without a supported program.
func New(kind string, stdout io.Writer) (Notifier, error) {
	switch kind {
	case KindAuto, "":
		switch runtime.GOOS {
		case "linux", "freebsd", "openbsd":
			return commandNotifier(KindNotifySend)
		case "darwin":
			return commandNotifier(KindOsascript)
		default:
			return &WriterNotifier{W: stdout}, nil
		}
	case KindStdout:
		return &WriterNotifier{W: stdout}, nil
	default:
		return commandNotifier(kind)
	}
}

func commandNotifier(kind string) (Notifier, error) {
	c, err := NewCommandNotifier(kind)
	if err != nil {
		return nil, err
	}
	return c, nil
}
