package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestNewCommandNotifierAllowlist(t *testing.T) {
	tests := []struct {
		cmd     string
		allowed bool
	}{
		{"notify-send", true},
		{"osascript", true},
		{"rm", false},
		{"sh", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			_, err := NewCommandNotifier(tt.cmd)
			if (err == nil) != tt.allowed {
				t.Errorf("NewCommandNotifier(%q) err = %v, allowed = %v", tt.cmd, err, tt.allowed)
			}
		})
	}
}

func TestCommandArgs(t *testing.T) {
	e := Event{TaskID: 2, Title: `Say "hi"`, Remaining: 3 * time.Hour}

	n, _ := NewCommandNotifier("notify-send")
	args := n.Args(e)
	if args[len(args)-2] != "Task Due Soon!" {
		t.Errorf("Expected summary before body, got %v", args)
	}
	if args[len(args)-1] != e.Body() {
		t.Errorf("Expected body last, got %v", args)
	}

	o, _ := NewCommandNotifier("osascript")
	script := o.Args(e)[1]
	if !strings.Contains(script, `\"hi\"`) {
		t.Errorf("Expected quotes escaped in AppleScript, got %s", script)
	}
	if !strings.HasPrefix(script, "display notification ") {
		t.Errorf("Unexpected script: %s", script)
	}
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := &WriterNotifier{W: &buf}

	if err := n.Notify(context.Background(), Event{TaskID: 5, Title: "Gym", Remaining: 2 * time.Hour}); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if !strings.Contains(buf.String(), "#5") || !strings.Contains(buf.String(), "due in 2 hours") {
		t.Errorf("Unexpected output: %q", buf.String())
	}
}

func TestNewKinds(t *testing.T) {
	var buf bytes.Buffer

	n, err := New(KindStdout, &buf)
	if err != nil {
		t.Fatalf("New(stdout) failed: %v", err)
	}
	if _, ok := n.(*WriterNotifier); !ok {
		t.Errorf("Expected WriterNotifier, got %T", n)
	}

	if _, err := New("curl", &buf); err == nil {
		t.Error("Expected error for disallowed command")
	}

	if _, err := New(KindAuto, &buf); err != nil {
		t.Errorf("New(auto) failed: %v", err)
	}
}
