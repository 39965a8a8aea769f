package notify

import (
	"fmt"
	"time"

	"github.com/abelbrown/nurture/internal/logging"
)

// Notifier delivers a reminder. Delivery is an external concern: the
// scheduler only decides when to request it, not how it reaches the user.
type Notifier interface {
	Notify(title, body string) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(title, body string) error

func (f NotifierFunc) Notify(title, body string) error {
	return f(title, body)
}

// LogNotifier records reminders in the application log. The TUI layers
// its own banner and terminal bell on top; this keeps a durable trace of
// every delivery while the process is active. Best effort only: nothing
// survives process suspension.
type LogNotifier struct{}

func (LogNotifier) Notify(title, body string) error {
	logging.Info("reminder", "title", title, "body", body)
	return nil
}

// ReminderBody formats the standard reminder text for the configured
// interval.
func ReminderBody(interval time.Duration) string {
	return fmt.Sprintf("%.1f hours have passed since the last feed.", interval.Hours())
}
