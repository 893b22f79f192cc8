package mailer

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jammapp/waitlist-api/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

// fakeDialer records every send and can be told to fail specific recipients.
type fakeDialer struct {
	mu        sync.Mutex
	sent      []string
	failFor   map[string]bool
	inFlight  int
	maxSeen   int
	sendDelay time.Duration
}

func (d *fakeDialer) DialAndSend(msgs ...*gomail.Message) error {
	d.mu.Lock()
	d.inFlight++
	if d.inFlight > d.maxSeen {
		d.maxSeen = d.inFlight
	}
	d.mu.Unlock()

	if d.sendDelay > 0 {
		time.Sleep(d.sendDelay)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.inFlight--

	for _, m := range msgs {
		to := m.GetHeader("To")
		if len(to) == 0 {
			return fmt.Errorf("message without recipient")
		}
		if d.failFor[to[0]] {
			return fmt.Errorf("smtp rejected %s", to[0])
		}
		d.sent = append(d.sent, to[0])
	}
	return nil
}

func newTestMailer(dialer smtpDialer) (*Mailer, *[]time.Duration) {
	sleeps := &[]time.Duration{}
	m := &Mailer{
		logger:     log.NewLoggerWithJSONOutput(),
		dialer:     dialer,
		from:       "noreply@jamm.app",
		fromName:   "Jamm App",
		baseURL:    "https://jamm.app",
		batchSize:  broadcastBatchSize,
		batchDelay: broadcastBatchDelay,
		sleep:      func(d time.Duration) { *sleeps = append(*sleeps, d) },
	}
	return m, sleeps
}

func TestSend_NotConfigured(t *testing.T) {
	m, _ := newTestMailer(nil)

	err := m.Send("someone@example.com", &Message{Subject: "hi", HTML: "<p>hi</p>"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSendToAll_NoRecipients(t *testing.T) {
	dialer := &fakeDialer{}
	m, sleeps := newTestMailer(dialer)

	result := m.SendToAll(nil, &Message{Subject: "hi", HTML: "<p>hi</p>"})

	assert.False(t, result.Success)
	assert.Equal(t, "No active subscribers found", result.Message)
	assert.Equal(t, 0, result.SentCount)
	assert.Empty(t, dialer.sent)
	assert.Empty(t, *sleeps)
}

func TestSendToAll_BatchesAndDelays(t *testing.T) {
	dialer := &fakeDialer{sendDelay: time.Millisecond}
	m, sleeps := newTestMailer(dialer)

	recipients := make([]string, 25)
	for i := range recipients {
		recipients[i] = fmt.Sprintf("user%d@example.com", i)
	}

	result := m.SendToAll(recipients, &Message{Subject: "hi", HTML: "<p>hi</p>"})

	assert.True(t, result.Success)
	assert.Equal(t, 25, result.SentCount)
	assert.Equal(t, "Sent 25 out of 25 emails", result.Message)
	assert.Empty(t, result.Failures)

	// 25 recipients in batches of 10: pauses only between batches, never
	// after the last one.
	require.Len(t, *sleeps, 2)
	for _, d := range *sleeps {
		assert.Equal(t, broadcastBatchDelay, d)
	}

	assert.LessOrEqual(t, dialer.maxSeen, broadcastBatchSize)
	assert.Len(t, dialer.sent, 25)
}

func TestSendToAll_PartialFailure(t *testing.T) {
	dialer := &fakeDialer{failFor: map[string]bool{}}
	recipients := make([]string, 10)
	for i := range recipients {
		recipients[i] = fmt.Sprintf("user%d@example.com", i)
		if i >= 3 {
			dialer.failFor[recipients[i]] = true
		}
	}

	m, _ := newTestMailer(dialer)
	result := m.SendToAll(recipients, &Message{Subject: "hi", HTML: "<p>hi</p>"})

	// One delivered recipient is enough for overall success.
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.SentCount)
	assert.Equal(t, "Sent 3 out of 10 emails (7 failed)", result.Message)
	assert.Len(t, result.Failures, 7)
}

func TestSendToAll_TotalFailure(t *testing.T) {
	dialer := &fakeDialer{failFor: map[string]bool{
		"a@example.com": true,
		"b@example.com": true,
	}}

	m, _ := newTestMailer(dialer)
	result := m.SendToAll([]string{"a@example.com", "b@example.com"}, &Message{Subject: "hi", HTML: "<p>hi</p>"})

	assert.False(t, result.Success)
	assert.Equal(t, 0, result.SentCount)
	assert.Equal(t, "Sent 0 out of 2 emails (2 failed)", result.Message)
	assert.Len(t, result.Failures, 2)
}

func TestWelcomeMessage(t *testing.T) {
	m, _ := newTestMailer(&fakeDialer{})

	msg := m.WelcomeMessage("Some+One@Example.com")

	assert.Equal(t, "Welcome to Jamm - You're on the waitlist!", msg.Subject)
	assert.Contains(t, msg.HTML, "https://jamm.app/unsubscribe?email=Some%2BOne%40Example.com")
}

func TestStripTags(t *testing.T) {
	stripped := stripTagsRegex.ReplaceAllString("<p>Hello <b>there</b></p>", "")
	assert.Equal(t, "Hello there", stripped)
}

func TestNewMailerFromEnv_Unconfigured(t *testing.T) {
	t.Setenv("EMAIL_USER", "")
	t.Setenv("EMAIL_APP_PASSWORD", "")

	m := NewMailerFromEnv(log.NewLoggerWithJSONOutput())

	assert.False(t, m.IsConfigured())
}

func TestNewMailerFromEnv_Configured(t *testing.T) {
	t.Setenv("EMAIL_USER", "waitlist@jamm.app")
	t.Setenv("EMAIL_APP_PASSWORD", "app-password")
	t.Setenv("PUBLIC_BASE_URL", "https://jamm.app")

	m := NewMailerFromEnv(log.NewLoggerWithJSONOutput())

	assert.True(t, m.IsConfigured())
	assert.True(t, strings.Contains(m.WelcomeMessage("a@b.com").HTML, "https://jamm.app/unsubscribe?email=a%40b.com"))
}
