// Package server wires the usersvc components together and runs the HTTP API
// and the gRPC health listener until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"

	"github.com/vmtecnologia/usersvc/internal/logging"
	"github.com/vmtecnologia/usersvc/internal/server/auth"
	"github.com/vmtecnologia/usersvc/internal/server/config"
	"github.com/vmtecnologia/usersvc/internal/server/notify"
	"github.com/vmtecnologia/usersvc/internal/server/repositories/repomanager"
	"github.com/vmtecnologia/usersvc/internal/server/services"

	gs "github.com/vmtecnologia/usersvc/internal/server/grpc"
	hs "github.com/vmtecnologia/usersvc/internal/server/http"
)

const (
	dbPingRetries = 5
	dbPingBackoff = 500 * time.Millisecond
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	httpServer  *hs.Server
	health      *gs.HealthServer
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(c.LogFormat, c.LogLevel, os.Stdout)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	var notifier notify.Notifier = notify.Nop{}
	if c.SMTP.Host != "" {
		notifier = notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     c.SMTP.Host,
			Port:     c.SMTP.Port,
			Username: c.SMTP.Username,
			Password: c.SMTP.Password,
			From:     c.SMTP.From,
		}, logger.With("module", "notify"))
	}

	hasher := auth.NewBcryptHasher(c.BcryptCost)
	tokens := auth.NewTokenService(c.SecretKey, c.TokenExpiration)

	us := services.NewUserService(db, rm, hasher, notifier, logger.With("module", "users"))
	as := services.NewAuthService(us, hasher, tokens, logger.With("module", "auth"))
	gate := auth.NewGate(tokens, us, logger.With("module", "gate"))

	metrics := hs.NewMetrics()
	handler := hs.NewHandler(us, as, metrics, logger)
	router := hs.NewRouter(handler, hs.NewChain(gate, metrics, logger), metrics)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: rm,
		httpServer:  hs.NewServer(c.HTTPAddr, router, c.ShutdownTimeout, logger),
		health:      gs.NewHealthServer(c.GRPCHealthAddr, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// waitForDB pings the database with exponential backoff; postgres often comes
// up after the service in container setups.
func (app *App) waitForDB(ctx context.Context) error {
	b := retry.WithMaxRetries(dbPingRetries, retry.NewExponential(dbPingBackoff))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := app.db.PingContext(ctx); err != nil {
			app.logger.Warn(ctx, "database not ready", "err", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (app *App) prepare(ctx context.Context) error {
	if err := app.waitForDB(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	app.health.SetServing(true)
	return nil
}

func (app *App) serve(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, name+" stopped with error", "err", err)
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.prepare(ctx); err != nil {
		return err
	}

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.serve(ctx, cancelFunc, "grpc health server", app.health.Run)
	}()
	go func() {
		defer wg.Done()
		app.serve(ctx, cancelFunc, "http server", app.httpServer.Run)
	}()

	<-ctx.Done()
	app.health.SetServing(false)
	wg.Wait()

	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return nil
}
