package notify

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/hsulin/stockscan/pkg/config"
	"github.com/hsulin/stockscan/pkg/logger"
)

func testSMTPConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		User: "scanner@example.com",
		Pass: "app-password",
		To:   []string{"a@example.com", "b@example.com"},
	}
}

func TestLogNotifier_Send(t *testing.T) {
	n := NewLogNotifier(logger.NewWriter(io.Discard))
	err := n.Send(context.Background(), Message{Subject: "daily scan"})
	assert.NoError(t, err)
}

func TestMailNotifier_ComposesMessage(t *testing.T) {
	var captured *gomail.Message
	n := NewMailNotifier(testSMTPConfig(), logger.NewWriter(io.Discard))
	n.send = func(m *gomail.Message) error {
		captured = m
		return nil
	}

	attachment := filepath.Join(t.TempDir(), "scan.csv")
	require.NoError(t, os.WriteFile(attachment, []byte("ticker\n"), 0o644))

	err := n.Send(context.Background(), Message{
		Subject:     "Daily scan",
		BodyHTML:    "<p>Top 10</p>",
		Attachments: []string{attachment},
	})
	require.NoError(t, err)
	require.NotNil(t, captured)

	assert.Equal(t, []string{"scanner@example.com"}, captured.GetHeader("From"))
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, captured.GetHeader("To"))
	assert.Equal(t, []string{"Daily scan"}, captured.GetHeader("Subject"))
}

func TestMailNotifier_SkipsMissingAttachments(t *testing.T) {
	n := NewMailNotifier(testSMTPConfig(), logger.NewWriter(io.Discard))
	n.send = func(m *gomail.Message) error { return nil }

	err := n.Send(context.Background(), Message{
		Subject:     "Daily scan",
		BodyHTML:    "<p>body</p>",
		Attachments: []string{"/does/not/exist.csv"},
	})
	assert.NoError(t, err, "missing attachment must not fail the send")
}

func TestMailNotifier_CancelledContext(t *testing.T) {
	n := NewMailNotifier(testSMTPConfig(), logger.NewWriter(io.Discard))
	n.send = func(m *gomail.Message) error {
		t.Fatal("send must not be called after cancellation")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.Send(ctx, Message{Subject: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
