package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/benchmark-hub/internal/application/auth"
	"github.com/jhoicas/benchmark-hub/internal/application/dataset"
	"github.com/jhoicas/benchmark-hub/internal/application/ports"
	"github.com/jhoicas/benchmark-hub/internal/application/report"
	"github.com/jhoicas/benchmark-hub/internal/application/support"
	"github.com/jhoicas/benchmark-hub/internal/application/usecase"
	infrapdf "github.com/jhoicas/benchmark-hub/internal/infrastructure/pdf"
	"github.com/jhoicas/benchmark-hub/internal/infrastructure/postgres"
	"github.com/jhoicas/benchmark-hub/internal/infrastructure/supportsvc"
	"github.com/jhoicas/benchmark-hub/internal/infrastructure/web"
	httpRouter "github.com/jhoicas/benchmark-hub/internal/interfaces/http"
	"github.com/jhoicas/benchmark-hub/pkg/config"
	"github.com/jhoicas/benchmark-hub/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("support_services", cfg.Support.Enabled()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	benchmarkRepo := postgres.NewBenchmarkRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	clientUC := usecase.NewClientUseCase(clientRepo, benchmarkRepo)
	benchmarkUC := usecase.NewBenchmarkUseCase(benchmarkRepo, clientRepo)
	companyUC := dataset.NewCompanyUseCase(companyRepo, benchmarkRepo, txRunner, nil)

	// Support services: sin SUPPORT_BASE_URL los sitios se validan con la sonda local
	// y la búsqueda web / mapeo de columnas responden 503.
	var backend ports.SupportServices
	if cfg.Support.Enabled() {
		backend = supportsvc.NewClient(cfg.Support.BaseURL, cfg.Support.APIKey, cfg.Support.Timeout)
	}
	supportUC := support.NewUseCase(
		companyRepo, benchmarkRepo, backend, web.NewProbe(cfg.Support.Timeout), companyUC.Engine(),
		support.Config{Timeout: cfg.Support.Timeout, Concurrency: cfg.Support.Concurrency},
		log,
	)

	// PDF: reporte de progreso por categoría
	reportUC := report.NewUseCase(companyUC, infrapdf.NewMarotoProgressGenerator(), cfg.App.ReportTitle)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024, // imports de hasta 5000 filas
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Benchmark Hub API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name, "db": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ClientUC:    clientUC,
		BenchmarkUC: benchmarkUC,
		CompanyUC:   companyUC,
		SupportUC:   supportUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
