// Package loyaltyclub собирает и запускает HTTP-сервис клуба лояльности.
package loyaltyclub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/clube49/loyalty-club/internal/cache"
	"github.com/clube49/loyalty-club/internal/config"
	"github.com/clube49/loyalty-club/internal/lib/jwt"
	"github.com/clube49/loyalty-club/internal/lib/rabbitmq"
	"github.com/clube49/loyalty-club/internal/migrations"
	"github.com/clube49/loyalty-club/internal/paymentprovider"
	authservice "github.com/clube49/loyalty-club/internal/services/auth"
	billingservice "github.com/clube49/loyalty-club/internal/services/billing"
	catalogservice "github.com/clube49/loyalty-club/internal/services/catalog"
	ledgerservice "github.com/clube49/loyalty-club/internal/services/ledger"
	profileservice "github.com/clube49/loyalty-club/internal/services/profile"
	"github.com/clube49/loyalty-club/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	rabbitConn *amqp.Connection
	rabbitCh   *amqp.Channel
}

// New собирает приложение: хранилище, миграции, кеш, брокер, платёжный
// провайдер, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitConnectionString, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn, rabbitmq.GetNotificationQueues())
	if err != nil {
		rabbitConn.Close()
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(rabbitCh)

	// Провайдер выбирается конфигом. Заглушка нужна для локальной
	// разработки и тестов, в бою всегда simulate=false.
	var provider paymentprovider.Provider
	if cfg.Billing.Simulate {
		provider = paymentprovider.NewSimulator()
	} else {
		provider = paymentprovider.NewClient(cfg.Billing.APIKey, cfg.Billing.BaseURL)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authSrv := authservice.New(db, jwtMaker)
	ledgerSrv := ledgerservice.New(db, cacheRedis, publisher, logger)
	catalogSrv := catalogservice.New(db, cacheRedis, logger)
	profileSrv := profileservice.New(db, cacheRedis, logger)
	billingSrv := billingservice.New(provider, db, ledgerSrv, cfg.Billing.MembershipFee, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, authSrv, ledgerSrv, catalogSrv, profileSrv, billingSrv)

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
		rabbitConn: rabbitConn,
		rabbitCh:   rabbitCh,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его по отмене контекста.
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
			a.logger.Error("failed to close rabbitmq channel", slog.Any("err", closeErr))
		}
		if closeErr := a.rabbitConn.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq connection", slog.Any("err", closeErr))
		}
		a.db.DB.Close()
		return err
	}
}
