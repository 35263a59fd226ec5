package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theafricanengineer/mozillians/internal/application/usecase/directory"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

type ProfileHandler struct {
	viewProfileUC *directory.ViewProfileUseCase
	renderer      *Renderer
	logger        logger.Logger
}

func NewProfileHandler(uc *directory.ViewProfileUseCase, r *Renderer, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{viewProfileUC: uc, renderer: r, logger: log}
}

// ViewProfile shows a member's profile page by username.
func (h *ProfileHandler) ViewProfile(c *gin.Context) {
	viewerID, ok := CurrentUserID(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user not found in context"))
		return
	}

	input := directory.ViewProfileInput{
		Username:     c.Param("username"),
		ViewerUserID: viewerID,
	}
	output, err := h.viewProfileUC.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	data := gin.H{
		"ShownUser": output.User,
		"Profile":   output.Profile,
	}
	if output.CanVouch {
		// Prefill the vouch form with the target's identifier.
		data["VouchForm"] = VouchForm{Vouchee: output.Profile.ID.String()}
	}

	h.renderer.HTML(c, http.StatusOK, "profile.html", data)
}
