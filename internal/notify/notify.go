// Package notify carries user-visible notifications out of the core. It is
// the toast surface of the storefront: transient, dismissable, never fatal.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Level classifies a notification for display.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is one user-visible message.
type Notification struct {
	Level       Level
	Title       string
	Description string
}

// Notifier receives user-visible notifications. Implementations must not
// block and must not fail the operation that emitted the notification.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// WriterNotifier prints notifications to a writer, for terminal use.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier creates a notifier printing to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

// Notify prints the notification as a single line.
func (n *WriterNotifier) Notify(_ context.Context, msg Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if msg.Description != "" {
		fmt.Fprintf(n.w, "[%s] %s: %s\n", msg.Level, msg.Title, msg.Description)
		return
	}
	fmt.Fprintf(n.w, "[%s] %s\n", msg.Level, msg.Title)
}

// LogNotifier mirrors notifications into the structured log, used by the
// admin console where there is no terminal to print to.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier writing to the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification at a level matching its severity.
func (n *LogNotifier) Notify(ctx context.Context, msg Notification) {
	attrs := []any{
		slog.String("title", msg.Title),
		slog.String("description", msg.Description),
	}
	switch msg.Level {
	case LevelError:
		n.logger.ErrorContext(ctx, "notification", attrs...)
	case LevelWarning:
		n.logger.WarnContext(ctx, "notification", attrs...)
	default:
		n.logger.InfoContext(ctx, "notification", attrs...)
	}
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu            sync.Mutex
	Notifications []Notification
}

// Notify records the notification.
func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notifications = append(r.Notifications, n)
}

// Last returns the most recent notification, or false when none were sent.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Notifications) == 0 {
		return Notification{}, false
	}
	return r.Notifications[len(r.Notifications)-1], true
}
