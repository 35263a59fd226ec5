package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	inviteUC "github.com/theafricanengineer/mozillians/internal/application/usecase/invite"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

type InviteHandler struct {
	inviteUseCase *inviteUC.InviteUseCase
	renderer      *Renderer
	logger        logger.Logger
}

func NewInviteHandler(uc *inviteUC.InviteUseCase, r *Renderer, log logger.Logger) *InviteHandler {
	return &InviteHandler{inviteUseCase: uc, renderer: r, logger: log}
}

// Invite shows the invite form on GET and, on a valid POST, persists the
// invite, mails the recipient and renders a confirmation naming them.
func (h *InviteHandler) Invite(c *gin.Context) {
	inviter, ok := CallerProfile(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("profile not found in context"))
		return
	}

	if c.Request.Method != http.MethodPost {
		h.renderer.HTML(c, http.StatusOK, "invite.html", gin.H{"Form": InviteForm{}})
		return
	}

	var form InviteForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderer.HTML(c, http.StatusOK, "invite.html", gin.H{
			"Form":   form,
			"Errors": formErrors(err),
		})
		return
	}

	output, err := h.inviteUseCase.Execute(c.Request.Context(), inviteUC.InviteInput{
		Inviter:   inviter,
		Recipient: form.Recipient,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.renderer.HTML(c, http.StatusOK, "invited.html", gin.H{
		"Recipient": output.Invite.Recipient,
	})
}
