package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theafricanengineer/mozillians/internal/domain/session"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

// Renderer wraps gin's HTML rendering with the data every page wants:
// flash messages popped from the session and the signed-in flag.
type Renderer struct {
	sessions session.Store
	logger   logger.Logger
}

func NewRenderer(sessions session.Store, log logger.Logger) *Renderer {
	return &Renderer{sessions: sessions, logger: log}
}

func (r *Renderer) HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if sid, ok := CurrentSessionID(c); ok {
		msgs, err := r.sessions.PopFlashes(c.Request.Context(), sid)
		if err != nil {
			r.logger.Warn("failed to pop flash messages", zap.Error(err))
		} else if len(msgs) > 0 {
			data["Messages"] = msgs
		}
	}

	_, authed := CurrentUserID(c)
	data["Authenticated"] = authed

	c.HTML(status, name, data)
}

// Flash queues a one-shot notice shown on the next rendered page.
func (r *Renderer) Flash(c *gin.Context, msg string) {
	sid, ok := CurrentSessionID(c)
	if !ok {
		return
	}
	if err := r.sessions.AddFlash(c.Request.Context(), sid, msg); err != nil {
		r.logger.Warn("failed to store flash message", zap.Error(err))
	}
}
