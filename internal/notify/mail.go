package notify

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/gomail.v2"

	"github.com/hsulin/stockscan/pkg/config"
	"github.com/hsulin/stockscan/pkg/logger"
)

// MailNotifier sends messages over SMTP with STARTTLS.
type MailNotifier struct {
	cfg    config.SMTPConfig
	logger *logger.Logger

	// send is swappable for tests.
	send func(m *gomail.Message) error
}

// NewMailNotifier creates an SMTP notifier from config. The config
// must be complete (see SMTPConfig.Configured).
func NewMailNotifier(cfg config.SMTPConfig, log *logger.Logger) *MailNotifier {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	return &MailNotifier{
		cfg:    cfg,
		logger: log,
		send: func(m *gomail.Message) error {
			return dialer.DialAndSend(m)
		},
	}
}

// Send composes and delivers the mail. Attachment paths that no
// longer exist are skipped with a warning rather than failing the
// whole notification.
func (n *MailNotifier) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.User)
	m.SetHeader("To", n.cfg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.BodyHTML)

	for _, path := range msg.Attachments {
		if _, err := os.Stat(path); err != nil {
			n.logger.WithField("path", path).Warn("Attachment missing, skipping")
			continue
		}
		m.Attach(path)
	}

	if err := n.send(m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	n.logger.WithFields(map[string]interface{}{
		"to":      n.cfg.To,
		"subject": msg.Subject,
	}).Info("Mail sent")
	return nil
}
