package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/tasktab/internal/todo/http"
	"github.com/aussiebroadwan/tasktab/internal/todo/mail"
	"github.com/aussiebroadwan/tasktab/internal/todo/service"
	"github.com/aussiebroadwan/tasktab/internal/todo/store"
	"github.com/aussiebroadwan/tasktab/internal/todo/store/drivers/sqlite"
	"github.com/aussiebroadwan/tasktab/pkg/cryptox"
	"github.com/aussiebroadwan/tasktab/pkg/jwtx"
	"github.com/aussiebroadwan/tasktab/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer *jwtx.Signer
	mailer *mail.Dispatcher

	authService      *service.AuthService
	userService      *service.UserService
	adminService     *service.AdminService
	taskService      *service.TaskService
	resetService     *service.ResetService
	recoveryService  *service.RecoveryService
	dashboardService *service.DashboardService
	housekeeper      *service.Housekeeper

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized: database
// with migrations applied, seeded superadmin, mail dispatcher, services and
// the HTTP server.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "tasktab",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("TASKTAB_JWT_SECRET is required")
	}

	signer, err := jwtx.NewSigner([]byte(cfg.JWTSecret), cfg.Issuer, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("initialize token signer: %w", err)
	}
	app.signer = signer

	cryptox.SetPepperPath(cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := service.SeedSuperAdmin(
		slogx.WithContext(context.Background(), app.logger),
		app.db,
		cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPassword,
	); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initMail()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.mailer.Start()
	app.housekeeper.Start()

	app.logger.Info("tasktab starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully stops the HTTP server, background workers and the
// database, in that order.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down tasktab...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeeper.Stop()
	app.mailer.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("tasktab stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initMail() {
	smtpCfg := mail.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUser,
		Password: app.cfg.SMTPPass,
		From:     app.cfg.SMTPFrom,
	}

	var sender mail.Sender
	if smtpCfg.Configured() {
		sender = mail.NewSMTPSender(smtpCfg)
		app.logger.Info("smtp mail delivery enabled", "host", smtpCfg.Host)
	} else {
		sender = &mail.LogSender{Logger: app.logger}
		app.logger.Info("smtp not configured, mail goes to the log")
	}

	app.mailer = mail.NewDispatcher(sender, app.logger)
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{Store: app.db, Signer: app.signer}
	app.userService = &service.UserService{Store: app.db}
	app.adminService = &service.AdminService{Store: app.db}
	app.taskService = &service.TaskService{Store: app.db, Mail: app.mailer}
	app.resetService = &service.ResetService{
		Store:    app.db,
		Mail:     app.mailer,
		TokenTTL: app.cfg.ResetTokenTTL,
	}
	app.recoveryService = &service.RecoveryService{
		Store:  app.db,
		Secret: app.cfg.RecoverySecret,
	}
	app.dashboardService = &service.DashboardService{Store: app.db}

	app.housekeeper = &service.Housekeeper{
		Store:    app.db,
		Interval: app.cfg.HousekeepingInterval,
		Logger:   app.logger,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.AdminService = app.adminService
	router.TaskService = app.taskService
	router.ResetService = app.resetService
	router.RecoveryService = app.recoveryService
	router.DashboardService = app.dashboardService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
