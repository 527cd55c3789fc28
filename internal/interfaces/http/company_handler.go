package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/incassopro/incasso-api/internal/application/dto"
	"github.com/incassopro/incasso-api/internal/application/enrichment"
	"github.com/incassopro/incasso-api/internal/application/usecase"
	"github.com/incassopro/incasso-api/internal/domain/vat"
)

// CompanyHandler handles company search, detail, scoring and enrichment.
type CompanyHandler struct {
	uc     *usecase.CompanyUseCase
	enrich *enrichment.UseCase
}

// NewCompanyHandler builds the handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase, enrich *enrichment.UseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc, enrich: enrich}
}

// Search godoc
// @Summary      Search companies by name or VAT number
// @Description  VAT-shaped queries trigger a provider fetch and return a
// @Description  single-item list; anything else is a name substring search.
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  true   "Name fragment or VAT number"
// @Param        limit  query  int     false  "Max results"  default(20)
// @Success      200    {object}  dto.CompanyListResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      502    {object}  dto.ErrorResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "q is required"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid paging parameters"})
	}
	page.DefaultPage()

	if vat.IsVATQuery(query) {
		company, err := h.enrich.FetchAndUpsert(c.UserContext(), query)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.CompanyListResponse{Items: []dto.CompanyResponse{*dto.NewCompanyResponse(company)}})
	}

	out, err := h.uc.Search(c.UserContext(), query, page.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Lookup godoc
// @Summary      Fetch company data by VAT number
// @Description  Calls the provider, stores or refreshes the snapshot and
// @Description  returns it.
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LookupRequest  true  "vat_number"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/companies/lookup [post]
func (h *CompanyHandler) Lookup(c *fiber.Ctx) error {
	var in dto.LookupRequest
	if resp := parseBody(c, &in); resp != nil {
		return resp
	}
	company, err := h.enrich.FetchAndUpsert(c.UserContext(), in.VATNumber)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewCompanyResponse(company))
}

// GetByID godoc
// @Summary      Get a company by ID
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Company ID"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "company not found"})
	}
	return c.JSON(out)
}

// Score godoc
// @Summary      Weighted solvency score of a company
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Company ID"
// @Success      200  {object}  dto.ScoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/score [get]
func (h *CompanyHandler) Score(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.Score(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "company not found"})
	}
	return c.JSON(out)
}
