package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"it-configurator/internal/common/errors"
)

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// respondError maps the internal taxonomy onto HTTP. Validation metadata
// (the offending field names) travels along so the page can highlight them.
func respondError(c *gin.Context, err error) {
	stdErr := errors.AsStandardError(err)
	body := gin.H{
		"code":      stdErr.Code,
		"message":   stdErr.Message,
		"retryable": stdErr.Retryable,
	}
	if fields, ok := stdErr.Metadata["fields"]; ok {
		body["fields"] = fields
	}
	c.JSON(errors.HTTPStatus(stdErr.Code), gin.H{"success": false, "error": body})
}

// HealthChecker reports readiness of the backing stores.
type HealthChecker interface {
	Healthy(ctx context.Context) error
}

// HealthCheckerFunc adapts a function to HealthChecker.
type HealthCheckerFunc func(ctx context.Context) error

func (f HealthCheckerFunc) Healthy(ctx context.Context) error { return f(ctx) }

// HealthHandler answers liveness probes. A nil checker always reports up.
func HealthHandler(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if checker != nil {
			if err := checker.Healthy(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
