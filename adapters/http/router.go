package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/theafricanengineer/mozillians/internal/domain/profile"
	"github.com/theafricanengineer/mozillians/internal/domain/session"
	"github.com/theafricanengineer/mozillians/pkg/auth"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

const searchPluginMaxAge = 168 * time.Hour // 1 week

type RouterConfig struct {
	Home     *HomeHandler
	Profile  *ProfileHandler
	Account  *AccountHandler
	Auth     *AuthHandler
	Search   *SearchHandler
	Invite   *InviteHandler
	Vouch    *VouchHandler
	Location *LocationHandler
	Plugin   *PluginHandler

	JWTService *auth.JWTService
	Sessions   session.Store
	Profiles   profile.Repository
	Logger     logger.Logger

	// TemplatesGlob points at the html/template files; empty skips
	// loading (handler tests that never render provide their own).
	TemplatesGlob string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ErrorMiddleware(cfg.Logger))

	if cfg.TemplatesGlob != "" {
		router.LoadHTMLGlob(cfg.TemplatesGlob)
	}

	maybeAuth := MaybeAuth(cfg.JWTService, cfg.Sessions)
	authRequired := AuthRequired(cfg.JWTService, cfg.Sessions)
	vouchRequired := VouchRequired(cfg.Profiles, cfg.Logger)

	router.GET("/", NeverCache(), maybeAuth, cfg.Home.Home)

	router.GET("/login", NeverCache(), cfg.Auth.LoginPage)
	router.POST("/login", NeverCache(), cfg.Auth.Login)
	router.POST("/logout", NeverCache(), authRequired, cfg.Auth.Logout)

	router.GET("/u/:username", NeverCache(), authRequired, cfg.Profile.ViewProfile)

	router.GET("/user/edit", NeverCache(), authRequired, cfg.Account.EditProfile)
	router.POST("/user/edit", NeverCache(), authRequired, cfg.Account.EditProfile)
	router.GET("/user/delete/confirm", NeverCache(), authRequired, cfg.Account.ConfirmDelete)
	router.POST("/user/delete", NeverCache(), authRequired, cfg.Account.Delete)

	router.GET("/search", NeverCache(), authRequired, vouchRequired, cfg.Search.Search)
	router.GET("/search/plugin", CachePublic(searchPluginMaxAge), cfg.Plugin.SearchPlugin)

	router.GET("/invite", NeverCache(), authRequired, vouchRequired, cfg.Invite.Invite)
	router.POST("/invite", NeverCache(), authRequired, vouchRequired, cfg.Invite.Invite)

	router.POST("/vouch", NeverCache(), authRequired, vouchRequired, cfg.Vouch.Vouch)

	router.GET("/country/:country", NeverCache(), authRequired, vouchRequired, cfg.Location.ListCountry)

	return router
}
