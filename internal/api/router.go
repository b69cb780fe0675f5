package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/vidtube/account-service/docs"
	"github.com/vidtube/account-service/internal/api/handler"
	"github.com/vidtube/account-service/internal/api/middleware"
	"github.com/vidtube/account-service/internal/core/service"
	"github.com/vidtube/account-service/internal/infrastructure/config"
	mongorepo "github.com/vidtube/account-service/internal/infrastructure/db/mongo"
	redisdb "github.com/vidtube/account-service/internal/infrastructure/db/redis"
	"github.com/vidtube/account-service/internal/infrastructure/media"
	"github.com/vidtube/account-service/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered, plus the
// history dispatcher the caller must Start and keep alive for the lifetime of
// the server.
func NewRouter(db *mongo.Database, rdb *redis.Client, store *media.S3Store, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.HistoryDispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	subRepo := mongorepo.NewSubscriptionRepository(db)
	videoRepo := mongorepo.NewVideoRepository(db)
	profileCache := redisdb.NewProfileCache(rdb, cfg.Redis.ProfileCacheTTL)

	tokenService := service.NewTokenService(service.TokenConfig{
		AccessSecret:  cfg.Token.AccessSecret,
		RefreshSecret: cfg.Token.RefreshSecret,
		AccessTTL:     cfg.Token.AccessTTL,
		RefreshTTL:    cfg.Token.RefreshTTL,
	})
	sessionService := service.NewSessionService(userRepo, tokenService, store, log)
	channelService := service.NewChannelService(userRepo, subRepo, videoRepo, profileCache, log)
	dispatcher := queue.NewHistoryDispatcher(cfg.History.Workers, channelService, log)

	accountHandler := handler.NewAccountHandler(sessionService, cfg.Token.AccessTTL, cfg.Token.RefreshTTL)
	channelHandler := handler.NewChannelHandler(channelService)
	watchHandler := handler.NewWatchHandler(dispatcher)

	auth := middleware.Auth(tokenService)
	optionalAuth := middleware.OptionalAuth(tokenService)

	// --- User routes ---
	users := e.Group("/api/v1/users")
	users.POST("/register", accountHandler.Register)
	users.POST("/login", accountHandler.Login)
	users.POST("/logout", accountHandler.Logout, auth)
	users.POST("/refresh-token", accountHandler.Refresh)
	users.GET("/me", accountHandler.Me, auth)
	users.PUT("/change-password", accountHandler.ChangePassword, auth)
	users.PATCH("/update", accountHandler.UpdateProfile, auth)
	users.GET("/channel/:username", channelHandler.GetChannelProfile, optionalAuth)
	users.GET("/history", channelHandler.GetWatchHistory, auth)

	// --- Video routes ---
	videos := e.Group("/api/v1/videos")
	videos.POST("/:id/watch", watchHandler.RecordWatch, auth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher
}
