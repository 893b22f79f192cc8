package admin

import (
	"net/http"
	"strings"

	"github.com/jammapp/waitlist-api/config/router"
)

// RequireToken gates a route on the admin bearer credential. Rejection
// short-circuits before the handler runs, so no store or transport call can
// happen on an unauthenticated request.
func RequireToken(service AdminService) router.MiddlewareFunc {
	return func(c *router.RequestContext) {
		credential := bearerCredential(c.GetHeader("Authorization"))

		if !service.Authenticate(credential) {
			router.GetLogger(c).Warn("Rejected admin request", "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, router.UnauthorizedResult("Unauthorized").ToJSON())
			return
		}

		c.Next()
	}
}

func bearerCredential(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
