package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/payzen/payzen_backend/internal/utils"
)

const apiRequestEvent = "api_request"

// trackedParams are the route parameters copied onto analytics events. Anything else
// (tokens, emails) stays out of PostHog.
var trackedParams = []string{"clientId", "invoiceId", "invoiceNumber"}

// PosthogMiddleware records one api_request event per successful authenticated request,
// keyed by the route template rather than the raw path.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !posthogClient.IsInitialized() || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		route := c.FullPath()
		if route == "" || route == "/health" || route == "/metrics" {
			return
		}
		accountID, ok := GetAccountIDFromContext(c)
		if !ok {
			return
		}

		props := map[string]any{
			"route":       route,
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		for _, name := range trackedParams {
			if v := c.Param(name); v != "" {
				props[name] = v
			}
		}
		posthogClient.Enqueue(accountID, apiRequestEvent, props)
	}
}

// PosthogEvent sends a named domain event (e.g. invoice_created) for the authenticated account.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	accountID, ok := GetAccountIDFromContext(c)
	if !ok {
		return
	}
	if properties == nil {
		properties = make(map[string]any, 1)
	}
	properties["route"] = c.FullPath()
	posthogClient.Enqueue(accountID, eventName, properties)
}
