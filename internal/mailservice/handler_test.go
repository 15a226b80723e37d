package mailservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type MockLogger struct{}

func (l *MockLogger) Error(msg string, args ...any) {}
func (l *MockLogger) Info(msg string, args ...any)  {}

func TestSendSignupNotifications(t *testing.T) {
	mockMailer := new(MockMailer)
	mockConsumer := new(MockMessageConsumer)

	ctx, cancel := context.WithCancel(context.Background())
	s := &MailService{
		mb:        mockConsumer,
		m:         mockMailer,
		recipient: "admin@bloglist.example",
		logger:    &MockLogger{},
		ctx:       ctx,
		cancel:    cancel,
	}
	defer s.Close()

	s.SendSignupNotifications()

	assert.Eventually(t, func() bool {
		return mockMailer.Called
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "admin@bloglist.example", mockMailer.Email)
}
