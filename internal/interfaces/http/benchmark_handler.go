package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/benchmark-hub/internal/application/dto"
	"github.com/jhoicas/benchmark-hub/internal/application/usecase"
)

// BenchmarkHandler maneja las peticiones HTTP para Benchmark (protegido).
type BenchmarkHandler struct {
	uc *usecase.BenchmarkUseCase
}

// NewBenchmarkHandler construye el handler.
func NewBenchmarkHandler(uc *usecase.BenchmarkUseCase) *BenchmarkHandler {
	return &BenchmarkHandler{uc: uc}
}

// Create godoc
// @Summary      Crear benchmark
// @Tags         benchmarks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBenchmarkRequest  true  "Datos del benchmark"
// @Success      201   {object}  dto.BenchmarkResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/benchmarks [post]
func (h *BenchmarkHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBenchmarkRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener benchmark por ID
// @Tags         benchmarks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del benchmark"
// @Success      200  {object}  dto.BenchmarkResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/benchmarks/{id} [get]
func (h *BenchmarkHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar benchmarks
// @Tags         benchmarks
// @Security     Bearer
// @Produce      json
// @Param        client_id  query  string  false  "Filtrar por cliente"
// @Param        status     query  string  false  "draft | active | completed | archived"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {object}  dto.BenchmarkListResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/benchmarks [get]
func (h *BenchmarkHandler) List(c *fiber.Ctx) error {
	in := dto.BenchmarkListRequest{
		PageRequest: pageFromQuery(c),
		ClientID:    c.Query("client_id"),
		Status:      c.Query("status"),
	}
	if ok, err := validateStruct(c, &in); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar benchmark
// @Tags         benchmarks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del benchmark"
// @Param        body  body  dto.UpdateBenchmarkRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BenchmarkResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/benchmarks/{id} [put]
func (h *BenchmarkHandler) Update(c *fiber.Ctx) error {
	id, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	var in dto.UpdateBenchmarkRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar benchmark y su dataset
// @Tags         benchmarks
// @Security     Bearer
// @Param        id   path  string  true  "ID del benchmark"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/benchmarks/{id} [delete]
func (h *BenchmarkHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
