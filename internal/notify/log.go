package notify

import (
	"context"
	"log"

	"github.com/bnxs304/aniarchive-api/internal/app"
)

// LogDispatcher records the would-be confirmation instead of sending
// it. Used when SMTP is not configured (local development).
type LogDispatcher struct {
	logger *log.Logger
}

func NewLogDispatcher(logger *log.Logger) *LogDispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Notify(_ context.Context, n app.Notification) error {
	d.logger.Printf("confirmation (not sent) to=%s code=%s event=%q", n.To, n.RaffleCode, n.EventTitle)
	return nil
}
