package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/kudoshq/kudos-api/docs"
	"github.com/kudoshq/kudos-api/internal/api/handler"
	"github.com/kudoshq/kudos-api/internal/api/middleware"
	"github.com/kudoshq/kudos-api/internal/api/session"
	"github.com/kudoshq/kudos-api/internal/core/service"
	mongorepo "github.com/kudoshq/kudos-api/internal/infrastructure/db/mongo"
	"github.com/kudoshq/kudos-api/internal/infrastructure/queue"
)

// Options carries the dependencies and settings NewRouter needs.
type Options struct {
	DB         *mongo.Database
	Redis      *redis.Client
	Codec      *service.SessionCodec
	Cache      service.RecentCache
	Dispatcher *queue.Dispatcher
	Secure     bool
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("kudos"))
	e.Use(middleware.Session(opts.Codec))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(opts.DB)
	kudoRepo := mongorepo.NewKudoRepository(opts.DB, userRepo)

	hasher := service.NewPasswordHasher()
	authService := service.NewAuthService(userRepo, hasher, opts.Log)
	kudoService := service.NewKudoService(kudoRepo, userRepo, opts.Cache, opts.Dispatcher, opts.Log)

	authHandler := handler.NewAuthHandler(authService, userRepo, opts.Codec, opts.Secure)
	kudoHandler := handler.NewKudoHandler(kudoService)
	userHandler := handler.NewUserHandler(userRepo)

	// --- Auth routes (anonymous) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Me)
	e.GET(session.LoginPath, authHandler.LoginPage, middleware.RedirectIfAuthenticated(session.LandingPath))

	// --- Protected routes ---
	protected := e.Group("", middleware.RequireUser())
	protected.GET(session.LandingPath, kudoHandler.Feed)
	protected.GET(session.LandingPath+"/recent", kudoHandler.Recent)
	protected.POST("/kudos", kudoHandler.Create)
	protected.GET("/users", userHandler.List)
	protected.GET("/profile", userHandler.Profile)
	protected.PUT("/profile", userHandler.UpdateProfile)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.DB, opts.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
