package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theafricanengineer/mozillians/internal/domain/profile"
	"github.com/theafricanengineer/mozillians/internal/domain/session"
	"github.com/theafricanengineer/mozillians/pkg/auth"
	"github.com/theafricanengineer/mozillians/pkg/i18n"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

const (
	GinContextKeyUserID    = "userID"
	GinContextKeySessionID = "sessionID"
	GinContextKeyProfile   = "callerProfile"

	SessionCookieName = "directory_session"
)

func isAJAX(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

func translator(c *gin.Context) *i18n.Translator {
	return i18n.ForAcceptLanguage(c.GetHeader("Accept-Language"))
}

// resolveSession checks the signed cookie against the session store and
// returns the live session, if any.
func resolveSession(c *gin.Context, jwtSvc *auth.JWTService, sessions session.Store) (*session.Session, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie == "" {
		return nil, false
	}

	claims, err := jwtSvc.ValidateToken(cookie)
	if err != nil {
		return nil, false
	}

	sess, err := sessions.Get(c.Request.Context(), claims.SessionID)
	if err != nil {
		return nil, false
	}
	return sess, true
}

// MaybeAuth resolves the caller's identity when a valid session cookie is
// present but lets anonymous requests through. Used on the landing page.
func MaybeAuth(jwtSvc *auth.JWTService, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, ok := resolveSession(c, jwtSvc, sessions); ok {
			c.Set(GinContextKeyUserID, sess.UserID)
			c.Set(GinContextKeySessionID, sess.ID)
		}
		c.Next()
	}
}

// AuthRequired rejects requests without a live session. Browsers get a
// redirect to the login page, AJAX callers a 403.
func AuthRequired(jwtSvc *auth.JWTService, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := resolveSession(c, jwtSvc, sessions)
		if !ok {
			if isAJAX(c) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "authentication required"})
				return
			}
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(GinContextKeyUserID, sess.UserID)
		c.Set(GinContextKeySessionID, sess.ID)
		c.Next()
	}
}

// VouchRequired composes on AuthRequired: the caller's profile must carry
// the vouched flag, else the request ends here with a localized 403.
func VouchRequired(profiles profile.Repository, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		p, err := profiles.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		if !p.IsVouched {
			log.Warn("vouch gate forbidding access",
				zap.String("user_id", userID.String()), zap.String("path", c.Request.URL.Path))
			c.String(http.StatusForbidden, translator(c).Translate(i18n.MsgVouchRequired))
			c.Abort()
			return
		}

		c.Set(GinContextKeyProfile, p)
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(GinContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func CurrentSessionID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(GinContextKeySessionID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// CallerProfile returns the profile loaded by VouchRequired.
func CallerProfile(c *gin.Context) (*profile.Profile, bool) {
	v, ok := c.Get(GinContextKeyProfile)
	if !ok {
		return nil, false
	}
	p, ok := v.(*profile.Profile)
	return p, ok
}
