package sink

import (
	"log/slog"

	"presencesync/internal/logger"
	"presencesync/internal/presence"
)

// Log writes every published record to the structured log. It is the default
// sink and useful when no relay is running.
type Log struct {
	tracker
	appID string
	log   *slog.Logger
}

func NewLog(appID string) *Log {
	return &Log{appID: appID, log: logger.Component("sink").With("sink", "log")}
}

func (l *Log) Connect() error {
	l.log.Info("presence connected", "application_id", l.appID)
	return nil
}

func (l *Log) Publish(rec presence.Record) error {
	l.set(rec)
	l.log.Info("presence",
		"details", rec.Details,
		"state", rec.State,
		"large_image", rec.Assets.LargeImageKey,
		"large_text", rec.Assets.LargeImageText,
		"start", rec.Start,
	)
	return nil
}

func (l *Log) Dispose() error {
	l.clear()
	l.log.Info("presence disconnected", "application_id", l.appID)
	return nil
}
