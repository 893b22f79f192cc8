package waitlist

import (
	"context"

	"github.com/jammapp/waitlist-api/internal/log"
	"github.com/jammapp/waitlist-api/internal/mailer"
	apperrors "github.com/jammapp/waitlist-api/pkg/errors"
)

type WaitlistService interface {
	// Signup records a subscription and best-effort sends the welcome email.
	// Overall success is store-write success only; the welcome send result is
	// advisory metadata in the response.
	Signup(ctx context.Context, req *SignupRequest) (*SignupResponse, error)

	// Unsubscribe soft-deletes the entry for the given email.
	Unsubscribe(ctx context.Context, email string) (string, error)
}

type waitlistService struct {
	logger *log.Logger
	store  EntryStore
	sender mailer.Sender
}

func NewWaitlistService(logger *log.Logger, store EntryStore, sender mailer.Sender) WaitlistService {
	return &waitlistService{logger: logger, store: store, sender: sender}
}

func (s *waitlistService) Signup(ctx context.Context, req *SignupRequest) (*SignupResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("Signup received empty request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	entry, err := s.store.Upsert(ctx, req.Email, NormalizeSchool(req.School))
	if err != nil {
		logger.Error("Failed to add to waitlist", "error", err)
		return nil, err
	}

	response := &SignupResponse{Message: "Successfully added to waitlist!"}

	// Welcome email is fire-and-forget: a send failure is logged and folded
	// into emailSent, never into the signup outcome.
	if s.sender.IsConfigured() {
		msg := s.sender.WelcomeMessage(entry.Email)
		if sendErr := s.sender.Send(entry.Email, msg); sendErr != nil {
			logger.Error("Failed to send welcome email", "email", entry.Email, "error", sendErr)
		} else {
			response.EmailSent = true
		}
	} else {
		logger.Warn("Email transport not configured; skipping welcome email", "email", entry.Email)
	}

	return response, nil
}

func (s *waitlistService) Unsubscribe(ctx context.Context, email string) (string, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if err := s.store.Deactivate(ctx, email); err != nil {
		logger.Error("Failed to unsubscribe", "error", err)
		return "", err
	}

	return "Successfully unsubscribed", nil
}
