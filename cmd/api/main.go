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
	"github.com/incassopro/incasso-api/internal/application/auth"
	"github.com/incassopro/incasso-api/internal/application/debtor"
	"github.com/incassopro/incasso-api/internal/application/enrichment"
	"github.com/incassopro/incasso-api/internal/application/usecase"
	"github.com/incassopro/incasso-api/internal/infrastructure/bizzy"
	infrapdf "github.com/incassopro/incasso-api/internal/infrastructure/pdf"
	"github.com/incassopro/incasso-api/internal/infrastructure/postgres"
	httpRouter "github.com/incassopro/incasso-api/internal/interfaces/http"
	"github.com/incassopro/incasso-api/pkg/config"
	"github.com/incassopro/incasso-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	// Enrichment cannot run without provider credentials; refuse to start
	// half-working.
	if cfg.Bizzy.APIKey == "" {
		log.Fatal().Msg("BIZZY_API_KEY is not set")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	caseRepo := postgres.NewCaseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	bizzyClient := bizzy.NewClient(cfg.Bizzy)
	enrichUC := enrichment.NewUseCase(bizzyClient, companyRepo)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	debtorUC := debtor.NewUseCase(txRunner, batchRepo, caseRepo, enrichUC)
	pdfUC := debtor.NewPDFUseCase(debtorUC, infrapdf.NewMarotoPDFGenerator())

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // bulk imports wait on provider calls
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Incasso API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CompanyUC: companyUC,
		EnrichUC:  enrichUC,
		DebtorUC:  debtorUC,
		PDFUC:     pdfUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
