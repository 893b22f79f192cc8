package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/jammapp/waitlist-api/config/router"
	"github.com/jammapp/waitlist-api/domain/waitlist"
	"github.com/jammapp/waitlist-api/internal/log"
	"github.com/jammapp/waitlist-api/internal/mailer"
	apperrors "github.com/jammapp/waitlist-api/pkg/errors"
	"github.com/jammapp/waitlist-api/pkg/utils"
)

func NewAdminController(
	store waitlist.EntryStore,
	sender mailer.Sender,
	logger *log.Logger,
) *router.RESTController {

	return router.NewRESTController(
		"AdminController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			service := NewAdminService(logger, store, sender, utils.GetEnvTrimmed("ADMIN_TOKEN"))
			requireToken := RequireToken(service)

			rs.AddGetHandler(c, nil, "waitlist", listSubscribersHandler(service), requireToken)
			rs.AddPostHandler(c, nil, "admin/send-email", broadcastHandler(service), requireToken)
			rs.AddPostHandler(c, nil, "admin/verify", verifyHandler(service))
		},
	)
}

func listSubscribersHandler(service AdminService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		entries, err := service.ListSubscribers(ctx.Request.Context())
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult("", gin.H{
			"count":       len(entries),
			"subscribers": waitlist.ToSubscriberResponses(entries),
		})
	}
}

func broadcastHandler(service AdminService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req BroadcastRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind broadcast request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult(validationErrors[0].Message, gin.H{"errors": validationErrors})
			}
			return router.BadRequestResult("Invalid request body", nil)
		}

		result, err := service.Broadcast(ctx.Request.Context(), &req)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		fields := gin.H{"sentCount": result.SentCount}
		if result.Success {
			return router.OKResult(result.Message, fields)
		}
		return router.PartialResult(result.Message, fields)
	}
}

func verifyHandler(service AdminService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req VerifyRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind verify request", "error", err)
			return router.BadRequestResult("Invalid request body", nil)
		}

		token, err := service.Verify(req.Password)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult("Login successful", gin.H{"token": token})
	}
}
