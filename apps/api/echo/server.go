package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/educhain/educhain/core"
	"github.com/educhain/educhain/core/announcement"
	"github.com/educhain/educhain/core/course"
	"github.com/educhain/educhain/core/exam"
	"github.com/educhain/educhain/core/grade"
	"github.com/educhain/educhain/core/schedule"
	"github.com/educhain/educhain/core/user"
)

type (
	ServerDeps struct {
		Conf            *core.Config
		Logger          core.Logger
		UserSvc         user.Service
		CourseSvc       course.Service
		GradeSvc        grade.Service
		AnnouncementSvc announcement.Service
		ScheduleSvc     schedule.Service
		ExamSvc         exam.Service
		// DisableReqLogs turns off the per-request access log.
		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		jwtConf  middleware.JWTConfig
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.jwtConf = middleware.JWTConfig{
		SigningKey:    []byte(deps.Conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: conf.Server.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	if conf.FrontendDir != "" {
		if info, err := os.Stat(conf.FrontendDir); err == nil && info.IsDir() {
			s.app.Use(middleware.StaticWithConfig(middleware.StaticConfig{
				Root:    conf.FrontendDir,
				HTML5:   true,
				Skipper: isAPIRequest,
			}))
		}
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)
	s.app.Debug = conf.Debug

	api := s.app.Group("/api")
	jwtMw := middleware.JWTWithConfig(s.jwtConf)

	registerHealthAPI(api, conf)
	registerAuthAPI(api, jwtMw, s.deps.UserSvc, newTokenSigner(conf, s.jwtConf))
	registerUserAPI(api, s.deps.UserSvc)
	registerCourseAPI(api, s.deps.CourseSvc)
	registerGradeAPI(api, s.deps.GradeSvc)
	registerAnnouncementAPI(api, s.deps.AnnouncementSvc)
	registerScheduleAPI(api, s.deps.ScheduleSvc)
	registerExamAPI(api, s.deps.ExamSvc)
}

func isAPIRequest(ctx echo.Context) bool {
	p := ctx.Request().URL.Path
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

func (s *server) Start() {
	s.deps.Logger.Info("API listening on " + s.deps.Conf.Server.Address())
	if err := s.app.Start(s.deps.Conf.Server.Address()); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *server) Errors() <-chan error {
	return s.errors
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
