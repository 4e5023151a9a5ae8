package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/coinboard/coinboard/internal/api/handler"
	"github.com/coinboard/coinboard/internal/api/middleware"
	"github.com/coinboard/coinboard/internal/core/ports"
	"github.com/coinboard/coinboard/internal/web"
)

// Deps carries everything the router wires together.
type Deps struct {
	Directory  ports.DirectoryService
	Pool       ports.PoolService
	Sessions   ports.SessionManager
	SessionTTL time.Duration
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = web.NewRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("coinboard"))
	e.Use(middleware.Session(deps.Sessions, deps.Directory))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Directory, deps.Pool, deps.Sessions, deps.SessionTTL)
	directoryHandler := handler.NewDirectoryHandler(deps.Directory)
	poolHandler := handler.NewPoolHandler(deps.Pool, deps.Directory, deps.Sessions, deps.SessionTTL)
	pagesHandler := handler.NewPagesHandler(deps.Directory, deps.Pool)
	healthHandler := handler.NewHealthHandler()

	requireUser := middleware.RequireUser()
	requireCEO := middleware.RequireCEO()

	// --- Public routes ---
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/progress", pagesHandler.Progress)
	e.GET("/attribute/:token", poolHandler.AttributePage)
	e.POST("/attribute/:token", poolHandler.Attribute)

	// --- Logged-in routes ---
	e.GET("/", pagesHandler.Dashboard, requireUser)
	e.POST("/generate", poolHandler.Generate, requireUser)

	// --- CEO routes (anonymous callers get 403, not a login redirect) ---
	e.POST("/add-user", directoryHandler.AddUser, requireCEO)
	e.POST("/remove-user", directoryHandler.RemoveUser, requireCEO)
	e.POST("/assign-role", directoryHandler.AssignRole, requireCEO)
	e.POST("/edit-balance", directoryHandler.EditBalance, requireCEO)

	// --- Probes ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
