// Package app собирает зависимости бэк-офиса и управляет их жизненным циклом.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/odyostore/backoffice/internal/auth"
	"github.com/odyostore/backoffice/internal/domain"
	healthcheck "github.com/odyostore/backoffice/internal/health"
	"github.com/odyostore/backoffice/internal/messaging/kafka"
	"github.com/odyostore/backoffice/internal/metrics"
	"github.com/odyostore/backoffice/internal/notify"
	catalogsvc "github.com/odyostore/backoffice/internal/service/catalog"
	franchisesvc "github.com/odyostore/backoffice/internal/service/franchise"
	"github.com/odyostore/backoffice/internal/service/httpapi"
	ordersvc "github.com/odyostore/backoffice/internal/service/order"
	usersvc "github.com/odyostore/backoffice/internal/service/user"
	"github.com/odyostore/backoffice/internal/version"
)

const shutdownTimeout = 5 * time.Second

// Run запускает приложение и блокируется до отмены контекста либо
// фатальной ошибки HTTP-сервера.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	if cfg.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required (BACKOFFICE_JWT_SECRET)")
	}
	tokens, err := auth.NewManager(cfg.JWTSecret)
	if err != nil {
		return err
	}

	repos, store, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("failed to close postgres store")
			}
		}()
	}

	// Kafka опционален: без брокеров события просто не публикуются.
	producer := initKafka(cfg, logger)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				logger.WithError(err).Warn("failed to close kafka producer")
			}
		}()
	}

	apiMetrics := metrics.NewAPIMetrics()
	hub := notify.NewHub(logger.WithField("component", "notify-hub"), apiMetrics)

	users := usersvc.NewService(repos.users, tokens, logger.WithField("component", "user-service"))
	if err := users.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seed admin account: %w", err)
	}

	// Типизированный nil в интерфейсе обошёл бы проверку publisher == nil.
	var publisher domain.EventPublisher
	if producer != nil {
		publisher = producer
	}
	orders := ordersvc.NewService(
		repos.orders, repos.products, repos.users,
		hub, publisher, apiMetrics,
		logger.WithField("component", "order-service"),
	)
	catalog := catalogsvc.NewService(repos.products, logger.WithField("component", "catalog-service"))
	franchise := franchisesvc.NewService(repos.franchise, repos.users, logger.WithField("component", "franchise-service"))

	server := httpapi.NewServer(
		orders, users, catalog, franchise,
		tokens, hub, apiMetrics,
		logger.WithField("component", "http-api"),
	)

	healthHandler := healthcheck.NewHandler(version.String())
	if store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return store.Ping(checkCtx)
		}))
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		// Закрытие hub освобождает долгоживущие SSE-соединения, иначе
		// graceful shutdown ждёт их до таймаута.
		hub.Close()
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		hub.Close()
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// initKafka создаёт producer, если заданы брокеры. Недоступность брокеров
// не фатальна: приложение продолжает работу без публикации событий.
func initKafka(cfg Config, logger *log.Entry) *kafka.Producer {
	if cfg.KafkaBrokers == "" {
		return nil
	}

	brokers := strings.Split(cfg.KafkaBrokers, ",")
	producer, err := kafka.NewProducer(brokers, logger.WithField("component", "kafka-producer"))
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil
	}

	logger.WithField("brokers", brokers).Info("kafka producer initialized")
	return producer
}

// startMetricsServer поднимает служебный HTTP-сервер с метриками и пробами.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/readyz, %s/livez", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
