package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theafricanengineer/mozillians/pkg/apperror"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

// ErrorMiddleware turns errors attached via c.Error into a response: an
// error page for browsers, JSON for AJAX. Handlers that already wrote a
// body are left alone.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		if status >= http.StatusInternalServerError {
			log.Error("request failed", err,
				zap.String("path", c.Request.URL.Path), zap.Int("status", status))
		} else {
			log.Debug("request rejected",
				zap.String("path", c.Request.URL.Path), zap.Int("status", status),
				zap.String("reason", err.Error()))
		}

		if isAJAX(c) {
			c.JSON(status, gin.H{"error": http.StatusText(status)})
			return
		}

		c.HTML(status, "error.html", gin.H{
			"Status":     status,
			"StatusText": http.StatusText(status),
		})
	}
}
