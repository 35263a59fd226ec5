package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/theafricanengineer/mozillians/adapters/event"
	httpAdapter "github.com/theafricanengineer/mozillians/adapters/http"
	"github.com/theafricanengineer/mozillians/adapters/mailer"
	"github.com/theafricanengineer/mozillians/adapters/media_storage"
	"github.com/theafricanengineer/mozillians/adapters/persistence"
	accountUC "github.com/theafricanengineer/mozillians/internal/application/usecase/account"
	directoryUC "github.com/theafricanengineer/mozillians/internal/application/usecase/directory"
	inviteUC "github.com/theafricanengineer/mozillians/internal/application/usecase/invite"
	searchUC "github.com/theafricanengineer/mozillians/internal/application/usecase/search"
	"github.com/theafricanengineer/mozillians/internal/config"
	"github.com/theafricanengineer/mozillians/pkg/auth"
	"github.com/theafricanengineer/mozillians/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect to Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect to Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	groupRepo := persistence.NewPostgresGroupRepo(dbPool)
	inviteRepo := persistence.NewPostgresInviteRepo(dbPool)
	appRepo := persistence.NewPostgresAPIAppRepo(dbPool)
	sessions := persistence.NewRedisSessionStore(redisClient)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.SessionLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg)
	if err != nil {
		appLogger.Fatal("failed to initialize uploader", err)
	}
	inviteMailer := mailer.NewSMTPMailer(cfg)

	// Use cases
	loginUseCase := accountUC.NewLoginUseCase(userRepo, sessions, jwtSvc, appLogger)
	editProfileUseCase := accountUC.NewEditProfileUseCase(userRepo, profileRepo, groupRepo, appRepo, uploader, appLogger)
	deleteAccountUseCase := accountUC.NewDeleteAccountUseCase(userRepo, profileRepo, kafkaClient, appLogger)
	homeUseCase := directoryUC.NewHomeUseCase(profileRepo, groupRepo)
	viewProfileUseCase := directoryUC.NewViewProfileUseCase(userRepo, profileRepo, appLogger)
	vouchUseCase := directoryUC.NewVouchUseCase(profileRepo, appLogger)
	listCountryUseCase := directoryUC.NewListCountryUseCase(profileRepo)
	searchUseCase := searchUC.NewSearchUseCase(profileRepo, groupRepo, appLogger)
	sendInviteUseCase := inviteUC.NewInviteUseCase(inviteRepo, inviteMailer, appLogger)

	// HTTP handlers
	renderer := httpAdapter.NewRenderer(sessions, appLogger)
	routerCfg := httpAdapter.RouterConfig{
		Home:     httpAdapter.NewHomeHandler(homeUseCase, renderer, appLogger),
		Profile:  httpAdapter.NewProfileHandler(viewProfileUseCase, renderer, appLogger),
		Account:  httpAdapter.NewAccountHandler(editProfileUseCase, deleteAccountUseCase, sessions, renderer, appLogger),
		Auth:     httpAdapter.NewAuthHandler(loginUseCase, sessions, cfg.Auth.SessionLifespan, renderer, appLogger),
		Search:   httpAdapter.NewSearchHandler(searchUseCase, renderer, appLogger),
		Invite:   httpAdapter.NewInviteHandler(sendInviteUseCase, renderer, appLogger),
		Vouch:    httpAdapter.NewVouchHandler(vouchUseCase, renderer, appLogger),
		Location: httpAdapter.NewLocationHandler(listCountryUseCase, renderer, appLogger),
		Plugin:   httpAdapter.NewPluginHandler(cfg.App.BaseURL),

		JWTService:    jwtSvc,
		Sessions:      sessions,
		Profiles:      profileRepo,
		Logger:        appLogger,
		TemplatesGlob: "templates/*",
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(routerCfg)

	appLogger.Info("server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("cannot run server", err)
	}
}
