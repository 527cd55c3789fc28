package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/incassopro/incasso-api/internal/application/auth"
	"github.com/incassopro/incasso-api/internal/application/debtor"
	"github.com/incassopro/incasso-api/internal/application/enrichment"
	"github.com/incassopro/incasso-api/internal/application/usecase"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	CompanyUC *usecase.CompanyUseCase
	EnrichUC  *enrichment.UseCase
	DebtorUC  *debtor.UseCase
	PDFUC     *debtor.PDFUseCase
	JWTSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Delete("/auth/account", authHandler.DeleteAccount)

	// Companies
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.EnrichUC)
	companies.Get("/", companyHandler.Search)
	companies.Post("/lookup", companyHandler.Lookup)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Get("/:id/score", companyHandler.Score)

	// Standalone debtors and cases
	debtorHandler := NewDebtorHandler(deps.DebtorUC)
	debtors := protected.Group("/debtors")
	debtors.Get("/", debtorHandler.List)
	debtors.Post("/", debtorHandler.Add)
	protected.Delete("/cases/:id", debtorHandler.DeleteCase)

	// Batches
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.DebtorUC, deps.PDFUC)
	batches.Get("/", batchHandler.List)
	batches.Post("/import", batchHandler.Import)
	batches.Get("/:id", batchHandler.Get)
	batches.Delete("/:id", batchHandler.Delete)
	batches.Get("/:id/pdf", batchHandler.VisitListPDF)
}
