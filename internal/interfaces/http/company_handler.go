package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/benchmark-hub/internal/application/dataset"
	"github.com/jhoicas/benchmark-hub/internal/application/dto"
)

// CompanyHandler dataset de empresas de un benchmark (protegido).
type CompanyHandler struct {
	uc *dataset.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *dataset.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create godoc
// @Summary      Agregar empresa al dataset
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del benchmark"
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/benchmarks/{id}/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	benchmarkID, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	var in dto.CreateCompanyRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), benchmarkID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar dataset categorizado
// @Description  Cada filter es una clave DIMENSION.CODE (ej. SOURCE_USED.FAILED); admite varios, uno por dimensión. country filtra por país de la empresa.
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del benchmark"
// @Param        filter   query  string  false  "Claves de categoría, repetidas o separadas por coma"
// @Param        country  query  string  false  "Países, repetidos o separados por coma"
// @Success      200     {object}  dto.CompanyListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/benchmarks/{id}/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	benchmarkID, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), benchmarkID, dto.CompanyListQuery{
		Filters:   multiQuery(c, "filter"),
		Countries: multiQuery(c, "country"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener empresa del dataset
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID del benchmark"
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200        {object}  dto.CompanyResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/benchmarks/{id}/companies/{companyId} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	benchmarkID, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	companyID, ok, err := paramID(c, "companyId")
	if !ok {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), benchmarkID, companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empresa
// @Description  Cambiar el website descarta la validación y la búsqueda previas.
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string                    true  "ID del benchmark"
// @Param        companyId  path  string                    true  "ID de la empresa"
// @Param        body       body  dto.UpdateCompanyRequest  true  "Campos a actualizar"
// @Success      200        {object}  dto.CompanyResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/benchmarks/{id}/companies/{companyId} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	benchmarkID, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	companyID, ok, err := paramID(c, "companyId")
	if !ok {
		return err
	}
	var in dto.UpdateCompanyRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), benchmarkID, companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar empresa del dataset
// @Tags         companies
// @Security     Bearer
// @Param        id         path  string  true  "ID del benchmark"
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/benchmarks/{id}/companies/{companyId} [delete]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	benchmarkID, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	companyID, ok, err := paramID(c, "companyId")
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), benchmarkID, companyID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      Importar filas al dataset
// @Description  Todo o nada: filas sin nombre o duplicadas se omiten y se reportan.
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del benchmark"
// @Param        body  body  dto.ImportCompaniesRequest  true  "mapping y rows"
// @Success      201   {object}  dto.ImportCompaniesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/benchmarks/{id}/companies/import [post]
func (h *CompanyHandler) Import(c *fiber.Ctx) error {
	benchmarkID, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	var in dto.ImportCompaniesRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Import(c.UserContext(), benchmarkID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Progress godoc
// @Summary      Progreso del benchmark por categoría
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id         path   string  true   "ID del benchmark"
// @Param        dimension  query  string  false  "INPUT | WEBSITE | WEBSEARCH | SOURCE_USED (vacío = todas)"
// @Success      200        {object}  dto.ProgressResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/benchmarks/{id}/progress [get]
func (h *CompanyHandler) Progress(c *fiber.Ctx) error {
	benchmarkID, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	out, err := h.uc.Progress(c.UserContext(), benchmarkID, c.Query("dimension"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Taxonomía de categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TaxonomyDimensionDTO
// @Router       /api/categories [get]
func (h *CompanyHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(h.uc.Taxonomy())
}

// multiQuery junta ?name=A&name=B y ?name=A,B.
func multiQuery(c *fiber.Ctx, name string) []string {
	out := make([]string, 0)
	for _, raw := range c.Context().QueryArgs().PeekMulti(name) {
		for _, part := range strings.Split(string(raw), ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
