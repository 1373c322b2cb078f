// Package toast shows short success/failure notices to the user.
package toast

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Level is the severity of a toast.
type Level string

const (
	Success Level = "success"
	Danger  Level = "danger"
)

// Notifier pushes a toast. Push is fire-and-forget.
type Notifier interface {
	Push(message string, level Level)
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Terminal renders toasts as single styled lines on w.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTerminal returns a Notifier writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Push(message string, level Level) {
	t.mu.Lock()
	defer t.mu.Unlock()

	mark, style := "✓", successStyle
	if level == Danger {
		mark, style = "✗", dangerStyle
	}
	fmt.Fprintln(t.w, style.Render(mark)+" "+message)
}

// Toast is one recorded notification.
type Toast struct {
	Message string
	Level   Level
}

// Recorder keeps every pushed toast in memory.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Push(message string, level Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, Toast{Message: message, Level: level})
}

// Toasts returns a copy of the recorded toasts.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}
