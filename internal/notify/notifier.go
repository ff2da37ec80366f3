// Package notify delivers scan results and failure notices to
// external channels.
package notify

import (
	"context"

	"github.com/hsulin/stockscan/pkg/logger"
)

// Message is a notification to be delivered.
type Message struct {
	Subject     string
	BodyHTML    string
	Attachments []string // file paths; missing files are skipped
}

// Notifier is the interface for all notification backends.
type Notifier interface {
	// Send delivers a message. Returns error if delivery fails.
	Send(ctx context.Context, msg Message) error
}

// LogNotifier writes notifications to the log instead of sending
// them. Used when mail is not configured.
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a log-based notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

// Send logs the message and succeeds.
func (n *LogNotifier) Send(ctx context.Context, msg Message) error {
	n.logger.WithFields(map[string]interface{}{
		"subject":     msg.Subject,
		"attachments": len(msg.Attachments),
	}).Info("Notification (mail not configured)")
	return nil
}
