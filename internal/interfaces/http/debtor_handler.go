package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/incassopro/incasso-api/internal/application/debtor"
	"github.com/incassopro/incasso-api/internal/application/dto"
)

// DebtorHandler handles standalone debtor cases.
type DebtorHandler struct {
	uc *debtor.UseCase
}

// NewDebtorHandler builds the handler.
func NewDebtorHandler(uc *debtor.UseCase) *DebtorHandler {
	return &DebtorHandler{uc: uc}
}

// List godoc
// @Summary      List standalone debtors, ranked by liquidity risk
// @Tags         debtors
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CaseListResponse
// @Router       /api/debtors [get]
func (h *DebtorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListDebtors(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Track a company as a case
// @Description  Adds the case to an existing batch, to a new batch, or as a
// @Description  standalone debtor, depending on the body.
// @Tags         debtors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCaseRequest  true  "company_id plus optional batch target"
// @Success      201   {object}  dto.CaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/debtors [post]
func (h *DebtorHandler) Add(c *fiber.Ctx) error {
	var in dto.AddCaseRequest
	if resp := parseBody(c, &in); resp != nil {
		return resp
	}
	out, err := h.uc.AddSingle(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteCase godoc
// @Summary      Delete a case
// @Tags         debtors
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Case ID"
// @Success      200  {object}  dto.DeleteCaseResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cases/{id} [delete]
func (h *DebtorHandler) DeleteCase(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id must be an integer"})
	}
	out, err := h.uc.DeleteCase(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
