package notifier

import (
	"github.com/fatih/color"

	"github.com/amishk599/resumehub/internal/model"
)

// Icon is the glyph shown in front of a notification of the given level.
func Icon(l model.Level) string {
	switch l {
	case model.LevelSuccess:
		return "✔"
	case model.LevelWarning:
		return "⚠"
	case model.LevelError:
		return "✖"
	default:
		return "ℹ"
	}
}

// Color is the terminal color for a level.
func Color(l model.Level) *color.Color {
	switch l {
	case model.LevelSuccess:
		return color.New(color.FgGreen)
	case model.LevelWarning:
		return color.New(color.FgYellow)
	case model.LevelError:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgCyan)
	}
}

// Format renders n as a single colored line.
func Format(n model.Notification) string {
	return Color(n.Level).Sprint(Icon(n.Level) + " " + n.Message)
}
