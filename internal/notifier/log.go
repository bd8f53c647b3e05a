package notifier

import (
	"context"
	"log/slog"

	"github.com/amishk599/resumehub/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes notifications to a logger, mapping each level to a slog level.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each notification via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs n at the slog level matching its severity.
func (n *LogNotifier) Notify(note model.Notification) {
	n.logger.Log(context.Background(), slogLevel(note.Level), note.Message, "kind", note.Level.String())
}

func slogLevel(l model.Level) slog.Level {
	switch l {
	case model.LevelWarning:
		return slog.LevelWarn
	case model.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
