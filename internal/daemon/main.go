// Package daemon wires the database, the session storage and the web service together.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/rbac-admin/rbac-admin/internal/auth"
	"github.com/rbac-admin/rbac-admin/internal/config"
	"github.com/rbac-admin/rbac-admin/internal/db"
	"github.com/rbac-admin/rbac-admin/internal/db/store"
	"github.com/rbac-admin/rbac-admin/internal/validation"
	"github.com/rbac-admin/rbac-admin/internal/web"
	"github.com/rbac-admin/rbac-admin/internal/web/handler"
	"github.com/rbac-admin/rbac-admin/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	conn       *gorm.DB
	storage    session.Storage
	webService *web.Service
}

// Prepare opens the database, migrates the schema and seeds it.
func Prepare(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(conn); err != nil {
		closeDB(conn)
		return nil, err
	}

	if err = Seed(ctx, store.New(conn), cfg.Seed); err != nil {
		closeDB(conn)
		return nil, err
	}

	return conn, nil
}

// New creates a new Daemon instance with the provided configuration.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	conn, err := Prepare(ctx, cfg)
	if err != nil {
		return nil, err
	}

	storage, err := session.NewStorage(cfg)
	if err != nil {
		closeDB(conn)
		return nil, err
	}

	s := store.New(conn)

	webService, err := web.New(&handler.Deps{
		Config:    cfg,
		Store:     s,
		Gate:      auth.NewGate(),
		Resolver:  auth.NewResolver(s),
		Validator: validation.New(),
		Sessions:  session.NewManager(storage, cfg.Webserver.Session.ExpiryTime, cfg.Webserver.Session.CookieSecure),
		Local:     auth.NewLocalProvider(s),
	})
	if err != nil {
		closeDB(conn)
		return nil, err
	}

	return &Daemon{cfg: cfg, conn: conn, storage: storage, webService: webService}, nil
}

// Start serves until SIGINT or SIGTERM and shuts down gracefully.
func (d *Daemon) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defer d.close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
		log.Info().Str("addr", addr).Str("url", d.cfg.Webserver.URL).Msg("starting http server")

		return d.webService.Start(addr)
	})

	g.Go(func() error {
		return d.webService.WaitShutdown(gctx)
	})

	return g.Wait()
}

func (d *Daemon) close() {
	if c, ok := d.storage.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close session storage")
		}
	}

	closeDB(d.conn)
}

func closeDB(conn *gorm.DB) {
	sqlDB, err := conn.DB()
	if err != nil {
		return
	}

	if err = sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}
}
