package admin

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"

	"github.com/jammapp/waitlist-api/domain/waitlist"
	"github.com/jammapp/waitlist-api/internal/log"
	"github.com/jammapp/waitlist-api/internal/mailer"
	"github.com/jammapp/waitlist-api/internal/models"
	apperrors "github.com/jammapp/waitlist-api/pkg/errors"
)

type AdminService interface {
	// Authenticate compares a presented bearer credential against the
	// configured shared secret. The secret is static and long-lived; there
	// are no sessions and no expiry.
	Authenticate(credential string) bool

	// ListSubscribers returns every active entry for the dashboard.
	ListSubscribers(ctx context.Context) ([]*models.WaitlistEntry, error)

	// Broadcast sends one message to every active subscriber in batches.
	// The notification result is returned unchanged, including partial
	// failure detail.
	Broadcast(ctx context.Context, req *BroadcastRequest) (*mailer.BroadcastResult, error)

	// Verify checks the dashboard password and mints a one-off session
	// token. The token is handed to the client but not validated anywhere
	// server-side; admin routes re-check the shared secret instead.
	Verify(password string) (string, error)
}

type adminService struct {
	logger *log.Logger
	store  waitlist.EntryStore
	sender mailer.Sender
	token  string
}

func NewAdminService(logger *log.Logger, store waitlist.EntryStore, sender mailer.Sender, token string) AdminService {
	if token == "" {
		logger.Warn("ADMIN_TOKEN not configured; admin endpoints will reject all requests")
	}
	return &adminService{logger: logger, store: store, sender: sender, token: token}
}

func (s *adminService) Authenticate(credential string) bool {
	if s.token == "" || credential == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(credential), []byte(s.token)) == 1
}

func (s *adminService) ListSubscribers(ctx context.Context) ([]*models.WaitlistEntry, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	entries, err := s.store.ListActive(ctx)
	if err != nil {
		logger.Error("Failed to list active subscribers", "error", err)
		return nil, err
	}

	return entries, nil
}

func (s *adminService) Broadcast(ctx context.Context, req *BroadcastRequest) (*mailer.BroadcastResult, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	entries, err := s.store.ListActive(ctx)
	if err != nil {
		logger.Error("Failed to load broadcast recipients", "error", err)
		return nil, err
	}

	recipients := make([]string, 0, len(entries))
	for _, entry := range entries {
		recipients = append(recipients, entry.Email)
	}

	logger.Info("Starting broadcast", "subject", req.Subject, "recipients", len(recipients))

	result := s.sender.SendToAll(recipients, &mailer.Message{
		Subject: req.Subject,
		HTML:    req.HTML,
		Text:    req.Text,
	})

	logger.Info("Broadcast finished", "sent", result.SentCount, "failed", len(result.Failures))
	return result, nil
}

func (s *adminService) Verify(password string) (string, error) {
	if s.token == "" {
		return "", apperrors.NewInternalServerError("Admin not configured", nil)
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(s.token)) != 1 {
		return "", apperrors.NewUnauthorizedError("Invalid password", nil)
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", apperrors.NewInternalServerError("Failed to generate session token", err)
	}

	return hex.EncodeToString(tokenBytes), nil
}
