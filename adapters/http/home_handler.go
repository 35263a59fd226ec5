package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theafricanengineer/mozillians/internal/application/usecase/directory"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

type HomeHandler struct {
	homeUseCase *directory.HomeUseCase
	renderer    *Renderer
	logger      logger.Logger
}

func NewHomeHandler(uc *directory.HomeUseCase, r *Renderer, log logger.Logger) *HomeHandler {
	return &HomeHandler{homeUseCase: uc, renderer: r, logger: log}
}

func (h *HomeHandler) Home(c *gin.Context) {
	input := directory.HomeInput{}
	if userID, ok := CurrentUserID(c); ok {
		input.UserID = &userID
	}

	output, err := h.homeUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	h.renderer.HTML(c, http.StatusOK, "home.html", gin.H{
		"Profile":       output.Profile,
		"Groups":        output.MyGroups,
		"CuratedGroups": output.CuratedGroups,
	})
}
