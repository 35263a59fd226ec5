package http

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	accountUC "github.com/theafricanengineer/mozillians/internal/application/usecase/account"
	"github.com/theafricanengineer/mozillians/internal/domain/session"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
	"github.com/theafricanengineer/mozillians/pkg/i18n"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

type AccountHandler struct {
	editProfileUC   *accountUC.EditProfileUseCase
	deleteAccountUC *accountUC.DeleteAccountUseCase
	sessions        session.Store
	renderer        *Renderer
	logger          logger.Logger
}

func NewAccountHandler(
	editUC *accountUC.EditProfileUseCase,
	deleteUC *accountUC.DeleteAccountUseCase,
	sessions session.Store,
	r *Renderer,
	log logger.Logger,
) *AccountHandler {
	return &AccountHandler{
		editProfileUC:   editUC,
		deleteAccountUC: deleteUC,
		sessions:        sessions,
		renderer:        r,
		logger:          log,
	}
}

// EditProfile renders the edit page on GET and saves on POST. Validation
// failures re-render the page with status 400 so machine consumers can
// tell a failed submission from a fresh page.
func (h *AccountHandler) EditProfile(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user not found in context"))
		return
	}

	ec, err := h.editProfileUC.Load(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	if c.Request.Method != http.MethodPost {
		userForm := UserForm{Username: ec.User.Username, Email: ec.User.Email}
		profileForm := ProfileForm{
			FullName:  ec.Profile.FullName,
			Bio:       ec.Profile.Bio,
			Country:   ec.Profile.Country,
			Region:    ec.Profile.Region,
			City:      ec.Profile.City,
			Groups:    ec.UserGroups,
			Skills:    ec.UserSkills,
			Languages: ec.UserLanguages,
		}
		h.renderEdit(c, http.StatusOK, ec, userForm, profileForm, nil, nil)
		return
	}

	var userForm UserForm
	var profileForm ProfileForm
	userErrs := formErrors(c.ShouldBind(&userForm))
	profileErrs := formErrors(c.ShouldBind(&profileForm))

	if len(userErrs) > 0 || len(profileErrs) > 0 {
		h.renderEdit(c, http.StatusBadRequest, ec, userForm, profileForm, userErrs, profileErrs)
		return
	}

	input := accountUC.SaveInput{
		UserID:    userID,
		Username:  userForm.Username,
		Email:     userForm.Email,
		FullName:  profileForm.FullName,
		Bio:       profileForm.Bio,
		Country:   profileForm.Country,
		Region:    profileForm.Region,
		City:      profileForm.City,
		Groups:    profileForm.Groups,
		Skills:    profileForm.Skills,
		Languages: profileForm.Languages,
	}

	var photo multipart.File
	if fileHeader, err := c.FormFile("photo"); err == nil {
		photo, err = fileHeader.Open()
		if err != nil {
			c.Error(apperror.NewInternal("failed to open photo upload", err))
			return
		}
		defer photo.Close()
		input.Photo = photo
	}

	output, err := h.editProfileUC.Save(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	if output.UsernameChanged {
		h.renderer.Flash(c, translator(c).Translate(i18n.MsgUsernameChanged))
	}
	c.Redirect(http.StatusSeeOther, "/u/"+output.Username)
}

func (h *AccountHandler) renderEdit(
	c *gin.Context,
	status int,
	ec *accountUC.EditContext,
	userForm UserForm,
	profileForm ProfileForm,
	userErrs, profileErrs map[string]string,
) {
	h.renderer.HTML(c, status, "edit_profile.html", gin.H{
		"Mode":          "edit",
		"Profile":       ec.Profile,
		"UserForm":      userForm,
		"ProfileForm":   profileForm,
		"UserErrors":    userErrs,
		"ProfileErrors": profileErrs,
		"UserGroups":    ec.UserGroups,
		"MyVouches":     ec.MyVouches,
		"Apps":          ec.Apps,
	})
}

// ConfirmDelete shows the are-you-sure page. No side effects.
func (h *AccountHandler) ConfirmDelete(c *gin.Context) {
	h.renderer.HTML(c, http.StatusOK, "confirm_delete.html", gin.H{})
}

// Delete anonymizes the account, kills the session and sends the browser
// home.
func (h *AccountHandler) Delete(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user not found in context"))
		return
	}

	err := h.deleteAccountUC.Execute(c.Request.Context(), accountUC.DeleteAccountInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}

	if sid, ok := CurrentSessionID(c); ok {
		if err := h.sessions.Delete(c.Request.Context(), sid); err != nil {
			c.Error(err)
			return
		}
	}
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}
