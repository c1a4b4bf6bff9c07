// Package web serves the JSON admin API.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	fiberrecover "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/rbac-admin/rbac-admin/internal/auth"
	fiberlog "github.com/rbac-admin/rbac-admin/internal/logger/adapter/fiber"
	"github.com/rbac-admin/rbac-admin/internal/web/handler"
	"github.com/rbac-admin/rbac-admin/internal/web/handler/admin/permission"
	"github.com/rbac-admin/rbac-admin/internal/web/handler/admin/role"
	"github.com/rbac-admin/rbac-admin/internal/web/handler/admin/user"
	"github.com/rbac-admin/rbac-admin/internal/web/handler/login"
	"github.com/rbac-admin/rbac-admin/internal/web/handler/logout"
	"github.com/rbac-admin/rbac-admin/internal/web/handler/profile"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = handler.RootPath + "checkalive"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = handler.RootPath + "metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	deps         *handler.Deps
	fastShutDown bool
	alive        atomic.Bool
}

// New creates a new web service. Routes registered before the session middleware are public.
func New(deps *handler.Deps) (*Service, error) {
	if deps == nil || deps.Config == nil {
		return nil, errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	cfg := deps.Config

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Immutable:      true,
			ErrorHandler:   ErrorHandler,
		},
	)

	service := &Service{
		App:          app,
		deps:         deps,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	app.Use(fiberlog.New(fiberlog.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	if !cfg.Webserver.DisableRecover {
		app.Use(fiberrecover.New())
	}

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	if err := new(login.Service).Init(app, deps); err != nil {
		return nil, err
	}

	app.Use(auth.RequireSession(deps.Sessions, deps.Resolver))

	handlers := []handler.Service{
		new(logout.Service),
		new(profile.Service),
		new(permission.Service),
		new(role.Service),
		new(user.Service),
	}

	for _, h := range handlers {
		if err := h.Init(app, deps); err != nil {
			return nil, err
		}
	}

	return service, nil
}

// Start listens on addr until the server is shut down.
func (s *Service) Start(addr string) error {
	err := s.App.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("fiber listen error: %w", err)
	}

	return nil
}

// WaitShutdown blocks until ctx is done and stops the server gracefully.
func (s *Service) WaitShutdown(ctx context.Context) error {
	<-ctx.Done()
	log.Info().Msg("shutdown request")

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.deps.Config.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.deps.Config.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	log.Info().Msg("http server was stopped ... good bye...")

	return nil
}

func (s *Service) checkAlive(c fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}
