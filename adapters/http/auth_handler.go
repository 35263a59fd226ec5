package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	accountUC "github.com/theafricanengineer/mozillians/internal/application/usecase/account"
	"github.com/theafricanengineer/mozillians/internal/domain/session"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

type AuthHandler struct {
	loginUseCase    *accountUC.LoginUseCase
	sessions        session.Store
	sessionLifespan time.Duration
	renderer        *Renderer
	logger          logger.Logger
}

func NewAuthHandler(
	loginUC *accountUC.LoginUseCase,
	sessions session.Store,
	sessionLifespan time.Duration,
	r *Renderer,
	log logger.Logger,
) *AuthHandler {
	return &AuthHandler{
		loginUseCase:    loginUC,
		sessions:        sessions,
		sessionLifespan: sessionLifespan,
		renderer:        r,
		logger:          log,
	}
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.renderer.HTML(c, http.StatusOK, "login.html", gin.H{"Form": LoginForm{}})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderer.HTML(c, http.StatusBadRequest, "login.html", gin.H{
			"Form":   form,
			"Errors": formErrors(err),
		})
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), accountUC.LoginInput{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if errors.Is(err, accountUC.ErrInvalidCredentials) {
			h.renderer.HTML(c, http.StatusUnauthorized, "login.html", gin.H{
				"Form":       form,
				"LoginError": "Email or password is incorrect.",
			})
			return
		}
		c.Error(err)
		return
	}

	c.SetCookie(SessionCookieName, output.Token, int(h.sessionLifespan.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if sid, ok := CurrentSessionID(c); ok {
		if err := h.sessions.Delete(c.Request.Context(), sid); err != nil {
			c.Error(err)
			return
		}
	}
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}
