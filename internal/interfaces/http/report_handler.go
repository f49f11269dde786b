package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/benchmark-hub/internal/application/report"
)

// ReportHandler descarga de reportes.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ProgressPDF godoc
// @Summary      Reporte PDF de progreso
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del benchmark"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/benchmarks/{id}/report.pdf [get]
func (h *ReportHandler) ProgressPDF(c *fiber.Ctx) error {
	benchmarkID, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	pdf, filename, err := h.uc.DownloadProgressPDF(c.UserContext(), benchmarkID)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
