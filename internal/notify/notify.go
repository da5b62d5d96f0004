// Package notify delivers user facing messages about item use.
package notify

//go:generate mockgen -destination=mock/mock_notifier.go -package=notifymock github.com/KirkDiggler/rpg-items/internal/notify Notifier

import (
	"context"
	"log/slog"
	"sync"
)

// Level of a notification
type Level string

// Notification levels
const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a message for the user. Kind identifies the message, e.g.
// a failure reason, and Link the item or actor it is about.
type Notification struct {
	Kind    string `json:"kind"`
	Level   Level  `json:"level"`
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
}

// Notifier delivers notifications
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Logger writes notifications to a structured logger
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a notifier that logs. A nil logger uses slog.Default.
func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

// Notify implements Notifier
func (l *Logger) Notify(ctx context.Context, n Notification) error {
	level := slog.LevelInfo
	switch n.Level {
	case LevelWarning:
		level = slog.LevelWarn
	case LevelError:
		level = slog.LevelError
	}

	l.logger.Log(ctx, level, n.Message,
		"kind", n.Kind,
		"link", n.Link)
	return nil
}

// Collector keeps notifications in memory
type Collector struct {
	mu            sync.Mutex
	notifications []Notification
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Notify implements Notifier
func (c *Collector) Notify(_ context.Context, n Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append(c.notifications, n)
	return nil
}

// All returns a copy of the collected notifications
func (c *Collector) All() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

// Reset drops everything collected
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = nil
}
