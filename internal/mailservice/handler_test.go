package mailservice

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSendNewUserEmail(t *testing.T) {
	mockMC := new(MockMessageConsumer)
	mockMailer := new(MockMailer)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())

	s := &MailService{
		mb:     mockMC,
		m:      mockMailer,
		admin:  "admin@example.com",
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	s.SendNewUserEmail()

	time.Sleep(1 * time.Second)

	assert.True(t, mockMailer.Called, "expected the mailer to be invoked")
	assert.Equal(t, "admin@example.com", mockMailer.Email, "expected email to be sent to the admin address")

	t.Cleanup(func() {
		s.Close()
	})
}
