package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SearchForm is bound from the search query string. A failed bind is not an
// error; the page degrades to an empty result set.
type SearchForm struct {
	Query             string `form:"q"`
	IncludeNonVouched bool   `form:"include_non_vouched"`
	Limit             int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// UserForm carries the account-level fields of the edit page.
type UserForm struct {
	Username string `form:"username" binding:"required,min=3,max=30"`
	Email    string `form:"email" binding:"required,email"`
}

// ProfileForm carries the profile-level fields of the edit page; the photo
// rides separately as a multipart file.
type ProfileForm struct {
	FullName  string `form:"full_name" binding:"required,max=255"`
	Bio       string `form:"bio" binding:"max=2048"`
	Country   string `form:"country" binding:"omitempty,len=2"`
	Region    string `form:"region" binding:"max=255"`
	City      string `form:"city" binding:"max=255"`
	Groups    string `form:"groups" binding:"max=1024"`
	Skills    string `form:"skills" binding:"max=1024"`
	Languages string `form:"languages" binding:"max=1024"`
}

type VouchForm struct {
	Vouchee string `form:"vouchee" binding:"required,uuid"`
}

type InviteForm struct {
	Recipient string `form:"recipient" binding:"required,email"`
}

// formErrors flattens a binding error into field → message for template
// rendering.
func formErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	out := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[strings.ToLower(fe.Field())] = fieldMessage(fe)
		}
		return out
	}

	out["__all__"] = "Invalid input."
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "uuid":
		return "Enter a valid identifier."
	case "min":
		return "Value is too short."
	case "max":
		return "Value is too long."
	case "len":
		return "Value has the wrong length."
	default:
		return "Invalid value."
	}
}
