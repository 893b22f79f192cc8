package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jammapp/waitlist-api/internal/log"
)

func GetLogger(ctx *RequestContext) *log.Logger {
	if logger := ctx.Request.Context().Value(log.LoggerKeyForContext); logger != nil {
		if l, ok := logger.(*log.Logger); ok {
			return l
		}
	}

	baseLogger := log.NewLoggerWithJSONOutput()
	return baseLogger.WithCorrelationID(ctx.Request.Context())
}

func OKResult(message string, fields gin.H) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusOK,
		Success:    true,
		Message:    message,
		Fields:     fields,
	}
}

// PartialResult reports an operation that completed with success=false but
// without an error status (e.g. a broadcast where nothing was delivered).
func PartialResult(message string, fields gin.H) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusOK,
		Success:    false,
		Message:    message,
		Fields:     fields,
	}
}

func BadRequestResult(message string, fields gin.H) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusBadRequest,
		Success:    false,
		Message:    message,
		Fields:     fields,
	}
}

func UnauthorizedResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusUnauthorized,
		Success:    false,
		Message:    message,
	}
}

func NotFoundResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusNotFound,
		Success:    false,
		Message:    message,
	}
}

func TooManyRequestsResult(data RateLimitResponse) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusTooManyRequests,
		Success:    false,
		Message:    "Too Many Requests",
		Fields:     gin.H{"rate_limit": data},
	}
}

func InternalServerErrorResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusInternalServerError,
		Success:    false,
		Message:    message,
	}
}

func ErrorResult(statusCode int, message string, fields gin.H) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		Success:    false,
		Message:    message,
		Fields:     fields,
	}
}
