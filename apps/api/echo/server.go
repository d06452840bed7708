package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/auth"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/course"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/lecture"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/professor"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/project"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/resource"
)

const homeBanner = "Cryptography Resource Manager API"

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		Auth           auth.Service
		RateLimitStore middleware.RateLimiterStore // defaults to an in-memory store
		DisableReqLogs bool

		ProfessorSvc *professor.Service
		ProjectSvc   *project.Service
		CourseSvc    *course.Service
		LectureSvc   *lecture.Service
		ResourceSvc  *resource.Service
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ http.Handler = (*Server)(nil)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Debug = conf.Debug
	s.app.Server.ReadTimeout = conf.Server.ReadTimeout
	s.app.Server.WriteTimeout = conf.Server.WriteTimeout
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.Secure())
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     allowedOrigins(conf.Server.ClientURL),
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderContentType, echo.HeaderAuthorization, headerAuthToken, echo.HeaderOrigin, echo.HeaderAccept,
		},
	}))
	s.app.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Skipper: isMultipart,
		Limit:   conf.Server.BodyLimit,
	}))
	s.app.Use(uploadBodyLimit(s.deps.LectureSvc.Policy().MaxSize, s.deps.ResourceSvc.Policy().MaxSize))

	s.app.Static("/uploads", conf.Uploads.Dir)
	s.app.GET("/", home)

	store := s.deps.RateLimitStore
	if store == nil {
		store = NewMemoryRateLimiterStore(conf.RateLimit)
	}
	api := s.app.Group("/api", rateLimiter(store, conf.RateLimit.Window))
	authed := authMiddleware(s.deps.Auth)

	api.GET("/health", health)
	registerAuthAPI(api, authed, s.deps.Auth)
	registerProfessorAPI(api, authed, s.deps.ProfessorSvc, s.deps.Validate)
	registerProjectAPI(api, authed, s.deps.ProjectSvc, s.deps.Validate)
	registerCourseAPI(api, authed, s.deps.CourseSvc, s.deps.LectureSvc, s.deps.Validate)
	registerLectureAPI(api, authed, s.deps.LectureSvc, s.deps.Validate)
	registerResourceAPI(api, authed, s.deps.ResourceSvc, s.deps.Validate)
}

func allowedOrigins(clientURL string) []string {
	origins := []string{"http://localhost:3000", "http://localhost:5001"}
	if clientURL != "" && clientURL != origins[0] && clientURL != origins[1] {
		origins = append(origins, clientURL)
	}
	return origins
}

// Start listens on the configured address. Failures are reported on Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address()); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already shutting down
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, homeBanner)
}

func health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok", "message": "Server is running"})
}
