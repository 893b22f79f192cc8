package waitlist

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jammapp/waitlist-api/config/router"
	"github.com/jammapp/waitlist-api/internal/log"
	"github.com/jammapp/waitlist-api/internal/mailer"
	apperrors "github.com/jammapp/waitlist-api/pkg/errors"
	"github.com/jammapp/waitlist-api/pkg/ratelimit"
)

func NewWaitlistController(
	store EntryStore,
	sender mailer.Sender,
	logger *log.Logger,
) *router.RESTController {

	return router.NewRESTController(
		"WaitlistController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			service := NewWaitlistService(logger, store, sender)

			signupLimiter := createSignupRateLimiter()

			rs.AddPostHandler(c, signupLimiter, "waitlist", signupHandler(service))
			rs.AddPostHandler(c, nil, "unsubscribe", unsubscribeHandler(service))
			rs.AddGetHandler(c, nil, "unsubscribe", unsubscribeLinkHandler(service))
		},
	)
}

func createSignupRateLimiter() ratelimit.RateLimiter {
	// Tighter than the global default; signup is the only unauthenticated
	// write endpoint.
	const signupRequestsPerMinute = 30

	return ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests: signupRequestsPerMinute,
		Window:   time.Minute,
	})
}

func signupHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req SignupRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind signup request", "error", err)
			return bindErrorResult(err, &req)
		}

		response, err := service.Signup(ctx.Request.Context(), &req)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(response.Message, gin.H{"emailSent": response.EmailSent})
	}
}

func unsubscribeHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req UnsubscribeRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind unsubscribe request", "error", err)
			return bindErrorResult(err, &req)
		}

		return runUnsubscribe(ctx, service, req.Email)
	}
}

// unsubscribeLinkHandler backs the unsubscribe link embedded in every email.
func unsubscribeLinkHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		email := ctx.Query("email")
		if email == "" {
			return router.BadRequestResult("Email parameter is required", nil)
		}

		return runUnsubscribe(ctx, service, email)
	}
}

func runUnsubscribe(ctx *router.RequestContext, service WaitlistService, email string) *router.ServiceResult {
	message, err := service.Unsubscribe(ctx.Request.Context(), email)
	if err != nil {
		return router.ErrorResult(
			apperrors.HTTPStatusCode(err),
			apperrors.GetHumanReadableMessage(err),
			nil,
		)
	}

	return router.OKResult(message, nil)
}

// bindErrorResult surfaces the first validation failure's message, with the
// full field breakdown attached for form UIs.
func bindErrorResult(err error, model interface{}) *router.ServiceResult {
	validationErrors := apperrors.FormatValidationErrors(err, model)
	if len(validationErrors) > 0 {
		return router.BadRequestResult(validationErrors[0].Message, gin.H{"errors": validationErrors})
	}

	return router.BadRequestResult("Invalid request body", nil)
}
