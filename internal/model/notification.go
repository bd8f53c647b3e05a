package model

import "time"

// Level is the severity of a user-facing notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a short message shown to the user.
type Notification struct {
	Level   Level
	Message string
	At      time.Time
}

// Expired reports whether the notification has been visible for at least ttl.
func (n Notification) Expired(now time.Time, ttl time.Duration) bool {
	return !now.Before(n.At.Add(ttl))
}

// Notifier delivers notifications to the user.
type Notifier interface {
	Notify(n Notification)
}
