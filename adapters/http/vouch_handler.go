package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/theafricanengineer/mozillians/internal/application/usecase/directory"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
	"github.com/theafricanengineer/mozillians/pkg/i18n"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

type VouchHandler struct {
	vouchUseCase *directory.VouchUseCase
	renderer     *Renderer
	logger       logger.Logger
}

func NewVouchHandler(uc *directory.VouchUseCase, r *Renderer, log logger.Logger) *VouchHandler {
	return &VouchHandler{vouchUseCase: uc, renderer: r, logger: log}
}

// Vouch endorses the posted vouchee with the caller as voucher, then sends
// the browser to the target's profile.
func (h *VouchHandler) Vouch(c *gin.Context) {
	var form VouchForm
	if err := c.ShouldBind(&form); err != nil {
		// A malformed vouch form is a forbidden action, not a validation
		// error; there is no page to re-render with field messages.
		c.String(http.StatusForbidden, translator(c).Translate(i18n.MsgVouchRequired))
		return
	}

	voucheeID, err := uuid.Parse(form.Vouchee)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid vouchee identifier", err))
		return
	}

	viewerID, ok := CurrentUserID(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user not found in context"))
		return
	}

	output, err := h.vouchUseCase.Execute(c.Request.Context(), directory.VouchInput{
		VoucheeID:     voucheeID,
		VoucherUserID: viewerID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.renderer.Flash(c, translator(c).Translate(i18n.MsgVouchSuccess))
	c.Redirect(http.StatusSeeOther, "/u/"+output.Vouchee.Username)
}
