package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/incassopro/incasso-api/internal/application/debtor"
	"github.com/incassopro/incasso-api/internal/application/dto"
)

// BatchHandler handles debtor batches: listing, detail, bulk import,
// deletion and the printable visit list.
type BatchHandler struct {
	uc  *debtor.UseCase
	pdf *debtor.PDFUseCase
}

// NewBatchHandler builds the handler.
func NewBatchHandler(uc *debtor.UseCase, pdf *debtor.PDFUseCase) *BatchHandler {
	return &BatchHandler{uc: uc, pdf: pdf}
}

// List godoc
// @Summary      List the user's batches
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BatchListResponse
// @Router       /api/batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListBatches(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Get a batch with its cases ranked by liquidity risk
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Batch ID"
// @Success      200  {object}  dto.BatchDetailResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) Get(c *fiber.Ctx) error {
	id, resp := batchID(c)
	if resp != nil {
		return resp
	}
	out, err := h.uc.GetBatch(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Bulk import VAT numbers into a new batch
// @Description  Creates the batch, enriches every identifier concurrently and
// @Description  returns a per-identifier report. Failures never abort the run.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkImportRequest  true  "batch_name and delimited content"
// @Success      200   {object}  dto.ImportReport
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/batches/import [post]
func (h *BatchHandler) Import(c *fiber.Ctx) error {
	var in dto.BulkImportRequest
	if resp := parseBody(c, &in); resp != nil {
		return resp
	}
	out, err := h.uc.BulkImport(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a batch and its cases
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Batch ID"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [delete]
func (h *BatchHandler) Delete(c *fiber.Ctx) error {
	id, resp := batchID(c)
	if resp != nil {
		return resp
	}
	if err := h.uc.DeleteBatch(c.UserContext(), id, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// VisitListPDF godoc
// @Summary      Download the ranked visit list as PDF
// @Tags         batches
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "Batch ID"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/pdf [get]
func (h *BatchHandler) VisitListPDF(c *fiber.Ctx) error {
	id, resp := batchID(c)
	if resp != nil {
		return resp
	}
	doc, err := h.pdf.BatchVisitList(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="visit-list-%d.pdf"`, id))
	return c.Send(doc)
}

// batchID parses the :id path parameter.
func batchID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id must be an integer"})
	}
	return id, nil
}
