package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/benchmark-hub/internal/application/dto"
	"github.com/jhoicas/benchmark-hub/internal/application/support"
)

// SupportHandler operaciones de support services sobre el dataset.
type SupportHandler struct {
	uc *support.UseCase
}

// NewSupportHandler construye el handler.
func NewSupportHandler(uc *support.UseCase) *SupportHandler {
	return &SupportHandler{uc: uc}
}

// SuggestColumnMapping godoc
// @Summary      Sugerir mapeo de columnas
// @Tags         support
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ColumnMappingRequest  true  "headers y sample_rows"
// @Success      200   {object}  dto.ColumnMappingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/support/column-mapping [post]
func (h *SupportHandler) SuggestColumnMapping(c *fiber.Ctx) error {
	var in dto.ColumnMappingRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.SuggestColumnMapping(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ValidateWebsite godoc
// @Summary      Validar el website de una empresa
// @Description  Una falla del validador se guarda como status=failed y responde 200.
// @Tags         support
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID del benchmark"
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200        {object}  entity.WebsiteValidation
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/support/benchmarks/{id}/companies/{companyId}/validate-website [post]
func (h *SupportHandler) ValidateWebsite(c *fiber.Ctx) error {
	benchmarkID, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	companyID, ok, err := paramID(c, "companyId")
	if !ok {
		return err
	}
	out, err := h.uc.ValidateWebsite(c.UserContext(), benchmarkID, companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// WebSearch godoc
// @Summary      Búsqueda web de una empresa
// @Tags         support
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string                true   "ID del benchmark"
// @Param        companyId  path  string                true   "ID de la empresa"
// @Param        body       body  dto.WebSearchRequest  false  "query opcional"
// @Success      200        {object}  entity.SearchedCompanyData
// @Failure      404        {object}  dto.ErrorResponse
// @Failure      503        {object}  dto.ErrorResponse
// @Router       /api/support/benchmarks/{id}/companies/{companyId}/web-search [post]
func (h *SupportHandler) WebSearch(c *fiber.Ctx) error {
	benchmarkID, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	companyID, ok, err := paramID(c, "companyId")
	if !ok {
		return err
	}
	var in dto.WebSearchRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
	}
	out, err := h.uc.WebSearch(c.UserContext(), benchmarkID, companyID, in.Query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ValidateWebsites godoc
// @Summary      Validar en lote los websites pendientes
// @Tags         support
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del benchmark"
// @Success      200  {object}  dto.BatchRunResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/support/benchmarks/{id}/validate-websites [post]
func (h *SupportHandler) ValidateWebsites(c *fiber.Ctx) error {
	benchmarkID, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	out, err := h.uc.ValidateWebsites(c.UserContext(), benchmarkID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
