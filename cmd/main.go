package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	httpctx "github.com/dtroode/pawconnect-server/internal/api/http/context"
	"github.com/dtroode/pawconnect-server/internal/api/http/middleware"
	"github.com/dtroode/pawconnect-server/internal/api/http/router"
	httpserver "github.com/dtroode/pawconnect-server/internal/api/http/server"
	"github.com/dtroode/pawconnect-server/internal/config"
	"github.com/dtroode/pawconnect-server/internal/logger"
	"github.com/dtroode/pawconnect-server/internal/model"
	"github.com/dtroode/pawconnect-server/internal/notification"
	"github.com/dtroode/pawconnect-server/internal/ratelimit"
	"github.com/dtroode/pawconnect-server/internal/repository/memory"
	"github.com/dtroode/pawconnect-server/internal/repository/postgres"
	"github.com/dtroode/pawconnect-server/internal/server"
	"github.com/dtroode/pawconnect-server/internal/service"
	storage "github.com/dtroode/pawconnect-server/internal/storage/minio"
	"github.com/dtroode/pawconnect-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

// persistence is the storage backend selected by configuration.
type persistence struct {
	stores model.Stores
	txm    model.TxManager
	pinger model.Pinger
	close  func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	logAppVersion()

	db, err := openPersistence(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.close()

	var objectStorage model.Storage
	if cfg.Storage.Enabled {
		storageClient, err := storage.NewFromConfig(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize object storage", "error", err)
		}
		objectStorage = storageClient
	} else {
		logger.Info("object storage disabled, profile image uploads are unavailable")
	}

	var limiter middleware.Limiter
	if cfg.Redis.Addr != "" {
		redisClient, err := ratelimit.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		limiter = ratelimit.NewLimiter(redisClient, "pawconnect:ratelimit", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	} else {
		logger.Info("redis address not set, rate limiting disabled")
	}

	dispatcher, err := newDispatcher(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize notifications", "error", err)
	}

	sessions := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)
	hasher := service.NewBcryptHasher(cfg.Password.BcryptCost)
	tokenService := service.NewTokenService(db.stores.Tokens, cfg.Token.TTL, logger)
	authService := service.NewAuth(db.stores.Users, db.txm, tokenService, sessions, hasher, dispatcher, cfg.Site.BaseURL, logger)
	avatarService := service.NewAvatar(authService, objectStorage, logger)

	if cfg.Seed.Enabled {
		if _, err := service.NewSeeder(db.txm, hasher, logger).WithAdminPassword(cfg.Seed.AdminPassword).Seed(ctx); err != nil {
			logger.Fatal("failed to seed database", "error", err)
		}
	}

	app := router.New(authService, avatarService, sessions, limiter, db.pinger, httpctx.NewManager(), cfg.HTTP, logger).Register()
	httpServer := httpserver.NewHTTPServer(app, fmt.Sprintf(":%s", cfg.HTTP.Port))

	// Background work outlives the signal so that requests still in flight
	// during shutdown can enqueue their notifications.
	workCtx, stopWork := context.WithCancel(context.Background())
	defer stopWork()

	g, workCtx := errgroup.WithContext(workCtx)
	g.Go(func() error {
		return dispatcher.Run(workCtx)
	})
	g.Go(func() error {
		return tokenService.RunSweeper(workCtx, cfg.Token.SweepInterval)
	})

	serveErr := make(chan error, 1)
	go func(s model.Server) {
		logger.Info("Starting server on", "address", s.Address())
		serveErr <- s.Start(server.NewSecurityLayer(cfg.HTTP))
	}(httpServer)

	select {
	case <-ctx.Done():
		logger.Info("received interruption signal, shutting down")
	case err := <-serveErr:
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	stopWork()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("background worker failed", "error", err)
	}

	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func openPersistence(ctx context.Context, cfg config.Database, logger *logger.Logger) (*persistence, error) {
	if cfg.InMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &persistence{
			stores: store.Stores(),
			txm:    store,
			pinger: store,
			close:  func() error { return nil },
		}, nil
	}

	conn, err := postgres.NewConnection(ctx, cfg.DSN)
	if err != nil {
		return nil, err
	}
	return &persistence{
		stores: postgres.NewStores(conn.DB),
		txm:    postgres.NewTxManager(conn.DB),
		pinger: conn,
		close:  conn.Close,
	}, nil
}

func newDispatcher(cfg *config.Config, logger *logger.Logger) (*notification.Dispatcher, error) {
	renderer, err := notification.NewRenderer(cfg.Token.TTL)
	if err != nil {
		return nil, err
	}

	var sender notification.Sender
	if cfg.SMTP.Host != "" {
		smtpSender, err := notification.NewSMTPSender(cfg.SMTP)
		if err != nil {
			return nil, err
		}
		sender = smtpSender
	} else {
		logger.Warn("SMTP host not set, notifications are written to the log")
		sender = notification.NewLogSender(logger)
	}

	return notification.NewDispatcher(renderer, sender, cfg.Notification, logger), nil
}
