package main

import (
	"context"
	"net/http"

	"github.com/KALU56/E-Self/internal/api"
	v1 "github.com/KALU56/E-Self/internal/api/v1"
	apivalidator "github.com/KALU56/E-Self/internal/api/validator"
	"github.com/KALU56/E-Self/internal/config"
	apierrors "github.com/KALU56/E-Self/internal/errors"
	"github.com/KALU56/E-Self/internal/metrics"
	"github.com/KALU56/E-Self/internal/repository"
	"github.com/KALU56/E-Self/internal/service"
	"github.com/KALU56/E-Self/pkg/chapa"
	"github.com/KALU56/E-Self/pkg/httpclient"
	"github.com/KALU56/E-Self/pkg/mysql"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			metrics.NewMetrics,

			NewConnectionDB,
			NewChapaGateway,
			NewFiberApp,
			NewValidator,

			repository.NewPaymentRepository,
			repository.NewPaymentEventRepository,
			repository.NewEnrollmentRepository,
			repository.NewCourseRepository,
			repository.NewUserRepository,
			repository.NewTransactionManager,

			service.NewEnrollmentService,
			service.NewPaymentService,

			v1.NewHandler,
		),
		fx.Invoke(startServer, startMetricsServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, m *metrics.Metrics,
	logger *zap.Logger, lc fx.Lifecycle) {
	app.Use(metrics.HealthCheckMiddleware())
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))

	api.SetupRoutes(app, handler, cfg)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go app.Listen(cfg.API.Port)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

func startMetricsServer(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: cfg.API.MetricsPort, Handler: mux}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("metrics server exited", zap.Error(err))
				}
			}()
			logger.Info("metrics server started", zap.String("addr", cfg.API.MetricsPort))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewChapaGateway(cfg *config.Config) chapa.Gateway {
	client := httpclient.NewHTTPClient(cfg.Chapa.Timeout)
	return chapa.NewGateway(cfg.Chapa, client)
}

func NewFiberApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: apierrors.ErrorHandler()})
}

func NewValidator(m *metrics.Metrics) apivalidator.IXValidator {
	return apivalidator.NewXValidator(validator.New(), m)
}
