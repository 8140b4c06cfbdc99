package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hosting-storefront/internal/auth"
	"hosting-storefront/internal/config"
	apphttp "hosting-storefront/internal/http"
	"hosting-storefront/internal/repository"
	"hosting-storefront/internal/repository/postgres"
	"hosting-storefront/internal/repository/sqlite"
	"hosting-storefront/internal/service"
)

type store struct {
	db    *sql.DB
	users repository.UserRepository
	plans repository.PlanRepository
	tx    repository.TransactionManager
}

func runServe(parent context.Context) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		logger.Errorf("open database: %v", err)
		return err
	}
	defer st.db.Close()

	if err := st.users.Init(ctx); err != nil {
		return fmt.Errorf("init user repository: %w", err)
	}
	if err := st.plans.Init(ctx); err != nil {
		return fmt.Errorf("init plan repository: %w", err)
	}

	userService := service.NewUserService(st.users, st.tx, auth.NewSaltedSHA256())
	planService := service.NewPlanService(st.plans)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, planService, logger, cfg.CORS.MaxAge)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
	return nil
}

func newLogger(cfg config.Config) (*logrus.Logger, error) {
	logger := logrus.New()
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)
	return logger, nil
}

func openStore(ctx context.Context, cfg config.Database, logger *logrus.Logger) (*store, error) {
	connectCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	switch cfg.Driver() {
	case config.DriverPostgres:
		db, err := postgres.Open(connectCtx, cfg.DSN(), cfg.MaxOpenConns)
		if err != nil {
			return nil, err
		}
		tables := postgres.NewTables(cfg.Schema)
		logger.Infof("using postgres (users table %s, plans table %s)", tables.Users, tables.Plans)
		return &store{
			db:    db,
			users: postgres.NewUserRepository(db, tables),
			plans: postgres.NewPlanRepository(db, tables),
			tx:    postgres.NewTransactionManager(db, tables),
		}, nil
	default:
		db, err := sqlite.Open(connectCtx, cfg.DSN())
		if err != nil {
			return nil, err
		}
		logger.Infof("using sqlite database %s", cfg.DSN())
		return &store{
			db:    db,
			users: sqlite.NewUserRepository(db),
			plans: sqlite.NewPlanRepository(db),
			tx:    sqlite.NewTransactionManager(db),
		}, nil
	}
}
