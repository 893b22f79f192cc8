package router

import (
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

// ServiceResult is the uniform response envelope: {"success": bool,
// "message": string, ...extra fields}. Success is carried separately from
// the HTTP status so partial outcomes (e.g. a broadcast where some sends
// failed) can report both.
type ServiceResult struct {
	StatusCode int
	Success    bool
	Message    string
	Fields     gin.H
}

type RateLimitResponse struct {
	Limit      int    `json:"limit"`
	Window     string `json:"window"`
	RetryAfter string `json:"retry_after"`
}

type HandlerFunction func(*RequestContext) *ServiceResult

type RESTController struct {
	name         string
	mountPoint   string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}

func (result *ServiceResult) ToJSON() gin.H {
	out := gin.H{"success": result.Success}

	if result.Message != "" {
		out["message"] = result.Message
	}

	for key, value := range result.Fields {
		out[key] = value
	}

	return out
}

func (result *ServiceResult) IsError() bool {
	return result.StatusCode >= 400
}
