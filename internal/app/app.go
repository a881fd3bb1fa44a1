package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gigmarket/escrowd/internal/config"
	"github.com/gigmarket/escrowd/internal/events"
	"github.com/gigmarket/escrowd/internal/handlers"
	"github.com/gigmarket/escrowd/internal/notify"
	"github.com/gigmarket/escrowd/internal/payout"
	"github.com/gigmarket/escrowd/internal/pg"
	"github.com/gigmarket/escrowd/internal/repo"
	"github.com/gigmarket/escrowd/internal/service"
	"github.com/gigmarket/escrowd/internal/sweep"
	"github.com/gigmarket/escrowd/pkg/auth"
	"github.com/gigmarket/escrowd/pkg/clients"
	"github.com/gigmarket/escrowd/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg       *config.Config
	api       *handlers.Handlers
	srv       *service.Services
	repo      *repo.Repositories
	publisher *events.Publisher
	payout    *payout.Service
	sweep     *sweep.Service

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)
	conn := pg.New(pool)

	a.cfg = cfg
	a.publisher = events.NewPublisher(kafkaBrokers(cfg), cfg.KafkaTopic)
	notifier := notify.New(cfg.NotifyAddress, clients.NewHTTPClient())

	a.repo = repo.New(conn)
	a.srv = service.New(cfg, a.repo, txManager, notifier, a.publisher)
	a.api = handlers.New(a.srv, auth.NewJWTService(cfg.JWTSecret))
	a.payout = payout.New(cfg, a.repo.Withdrawal, a.repo.Ledger, clients.NewHTTPClient())
	a.sweep = sweep.New(a.srv.OrderService, redisClient(cfg))

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startWorkers(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func kafkaBrokers(cfg *config.Config) []string {
	if cfg.KafkaBrokers == "" {
		return nil
	}
	return strings.Split(cfg.KafkaBrokers, ",")
}

func redisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddress == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startWorkers(ctx context.Context) {
	a.payout.Start(ctx)
	a.sweep.Start(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		if err := a.publisher.Close(); err != nil {
			zap.L().Warn("failed to close event publisher", zap.Error(err))
		}
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
