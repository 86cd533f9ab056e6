// Package elitefitness собирает приложение: подключения к хранилищам,
// сервисы, маршруты и HTTP-сервер с мягкой остановкой.
package elitefitness

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/vinhyan/elite-fitness/internal/cache"
	"github.com/vinhyan/elite-fitness/internal/config"
	"github.com/vinhyan/elite-fitness/internal/lib/rabbitmq"
	"github.com/vinhyan/elite-fitness/internal/lib/sl"
	"github.com/vinhyan/elite-fitness/internal/migrations"
	authservice "github.com/vinhyan/elite-fitness/internal/services/auth"
	cartservice "github.com/vinhyan/elite-fitness/internal/services/cart"
	catalogservice "github.com/vinhyan/elite-fitness/internal/services/catalog"
	paymentservice "github.com/vinhyan/elite-fitness/internal/services/payment"
	"github.com/vinhyan/elite-fitness/internal/session"
	"github.com/vinhyan/elite-fitness/internal/storage/repository"
)

// App контейнер приложения.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	cache      *cache.Cache
	rabbitConn *amqp.Connection
	rabbitCh   *amqp.Channel
}

// New инициализирует подключения, сервисы и маршруты приложения.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}
	sessions := session.NewStore(cacheRedis.Db, cfg.SessionTTL)

	rabbitConn, err := rabbitmq.Connect(cfg.AddressRabbitMQ, cfg.RetriesRabbitMQ, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn)
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(rabbitCh)

	authService := authservice.New(db, publisher, cfg.MonthlyPlanPrice, logger)
	catalogService := catalogservice.New(db, db, cacheRedis, logger)
	cartService := cartservice.New(db, publisher, cfg.TaxRate, logger)
	paymentService := paymentservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, db, sessions,
		authService, catalogService, cartService, paymentService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		cache:      cacheRedis,
		rabbitConn: rabbitConn,
		rabbitCh:   rabbitCh,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.rabbitCh.Close(); closeErr != nil {
			a.logger.Error("failed to close RabbitMQ channel", sl.Err(closeErr))
		}
		if closeErr := a.rabbitConn.Close(); closeErr != nil {
			a.logger.Error("failed to close RabbitMQ connection", sl.Err(closeErr))
		}
		if closeErr := a.cache.Db.Close(); closeErr != nil {
			a.logger.Error("failed to close redis client", sl.Err(closeErr))
		}
		a.db.DB.Close()
		return err
	}
}
