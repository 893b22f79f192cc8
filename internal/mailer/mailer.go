package mailer

import (
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/jammapp/waitlist-api/internal/log"
	"github.com/jammapp/waitlist-api/pkg/utils"
	"gopkg.in/gomail.v2"
)

const (
	// broadcastBatchSize bounds how many sends are in flight at once so a
	// third-party mail provider's rate limits are not saturated.
	broadcastBatchSize = 10
	// broadcastBatchDelay is the fixed pause between batches. There is no
	// pause after the final batch.
	broadcastBatchDelay = time.Second
)

var stripTagsRegex = regexp.MustCompile("<[^>]*>")

// Message is an outbound email. Text is optional; when empty, a plain-text
// fallback is derived from HTML by tag stripping at send time.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

// BroadcastResult aggregates a SendToAll run. Success is true when at least
// one recipient was reached, even if most sends failed.
type BroadcastResult struct {
	Success   bool
	Message   string
	SentCount int
	Failures  []string
}

//go:generate mockgen -source=mailer.go -destination=sender_mock.go -package=mailer

// Sender is the notification capability consumed by the domains.
type Sender interface {
	IsConfigured() bool
	Send(to string, msg *Message) error
	SendToAll(recipients []string, msg *Message) *BroadcastResult
	WelcomeMessage(email string) *Message
}

type smtpDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer delivers messages over SMTP (gomail). A zero-credential Mailer is
// valid but unconfigured; callers must check IsConfigured before assuming
// sends will occur.
type Mailer struct {
	logger   *log.Logger
	dialer   smtpDialer
	from     string
	fromName string
	baseURL  string

	batchSize  int
	batchDelay time.Duration
	sleep      func(time.Duration)
}

// NewMailerFromEnv builds a Mailer from EMAIL_USER / EMAIL_APP_PASSWORD and
// the optional SMTP_HOST / SMTP_PORT overrides (defaults target Gmail, which
// the app-password pair is meant for).
func NewMailerFromEnv(logger *log.Logger) *Mailer {
	user := utils.GetEnvTrimmed("EMAIL_USER")
	pass := utils.GetEnvTrimmed("EMAIL_APP_PASSWORD")

	m := &Mailer{
		logger:     logger,
		from:       user,
		fromName:   utils.GetEnvTrimmedOrDefault("EMAIL_FROM_NAME", "Jamm App"),
		baseURL:    utils.GetEnvTrimmedOrDefault("PUBLIC_BASE_URL", "http://localhost:3000"),
		batchSize:  broadcastBatchSize,
		batchDelay: broadcastBatchDelay,
		sleep:      time.Sleep,
	}

	if user == "" || pass == "" {
		logger.Warn("Email transport not configured; welcome and broadcast emails will be skipped",
			"has_user", user != "",
			"has_password", pass != "",
		)
		return m
	}

	host := utils.GetEnvTrimmedOrDefault("SMTP_HOST", "smtp.gmail.com")
	port := utils.GetEnvIntOrDefault("SMTP_PORT", 587)
	m.dialer = gomail.NewDialer(host, port, user, pass)

	logger.Info("Email transport configured", "host", host, "port", port, "user", user)
	return m
}

func (m *Mailer) IsConfigured() bool {
	return m.dialer != nil
}

// Send delivers one message. Transport failures come back as an error and are
// logged; they never propagate as a panic.
func (m *Mailer) Send(to string, msg *Message) error {
	if !m.IsConfigured() {
		return fmt.Errorf("email transport is not configured")
	}

	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.from, m.fromName)
	gm.SetHeader("To", to)
	gm.SetHeader("Subject", msg.Subject)

	text := msg.Text
	if text == "" {
		text = stripTagsRegex.ReplaceAllString(msg.HTML, "")
	}
	gm.SetBody("text/plain", text)
	gm.AddAlternative("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		m.logger.Error("Failed to send email", "to", to, "subject", msg.Subject, "error", err)
		return fmt.Errorf("send email to %s: %w", to, err)
	}

	return nil
}

// SendToAll fans the message out in fixed-size batches: every send inside a
// batch runs concurrently and the batch is joined before the next one starts.
// Failed sends are collected per recipient and do not abort the run; there is
// no retry and no cancellation once a broadcast starts.
func (m *Mailer) SendToAll(recipients []string, msg *Message) *BroadcastResult {
	if len(recipients) == 0 {
		return &BroadcastResult{
			Success:   false,
			Message:   "No active subscribers found",
			SentCount: 0,
		}
	}

	var (
		mu        sync.Mutex
		sentCount int
		failures  []string
	)

	for start := 0; start < len(recipients); start += m.batchSize {
		end := start + m.batchSize
		if end > len(recipients) {
			end = len(recipients)
		}
		batch := recipients[start:end]

		var wg sync.WaitGroup
		for _, recipient := range batch {
			wg.Add(1)
			go func(to string) {
				defer wg.Done()
				err := m.Send(to, msg)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failures = append(failures, fmt.Sprintf("%s: %v", to, err))
					return
				}
				sentCount++
			}(recipient)
		}
		wg.Wait()

		if end < len(recipients) {
			m.sleep(m.batchDelay)
		}
	}

	if len(failures) > 0 {
		m.logger.Error("Some broadcast emails failed to send",
			"failed", len(failures),
			"total", len(recipients),
			"errors", failures,
		)
	}

	summary := fmt.Sprintf("Sent %d out of %d emails", sentCount, len(recipients))
	if len(failures) > 0 {
		summary += fmt.Sprintf(" (%d failed)", len(failures))
	}

	return &BroadcastResult{
		Success:   sentCount > 0,
		Message:   summary,
		SentCount: sentCount,
		Failures:  failures,
	}
}
