// Package report genera el reporte PDF de progreso de un benchmark.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/benchmark-hub/internal/domain/category"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
)

// ProgressData datos del reporte.
type ProgressData struct {
	Title       string
	Benchmark   *entity.Benchmark
	Summaries   []category.Summary
	GeneratedAt time.Time
}

// ProgressPDFGenerator puerto de salida: renderiza el reporte (implementación en infrastructure/pdf).
type ProgressPDFGenerator interface {
	GenerateProgressPDF(ctx context.Context, data ProgressData) ([]byte, error)
}

// SummarySource fuente de los resúmenes por dimensión (dataset.CompanyUseCase).
type SummarySource interface {
	Summaries(ctx context.Context, benchmarkID string, dims ...category.Dimension) (*entity.Benchmark, []category.Summary, error)
}

// UseCase arma los datos del reporte y delega el render.
type UseCase struct {
	source    SummarySource
	generator ProgressPDFGenerator
	title     string
	now       func() time.Time
}

// NewUseCase construye el caso de uso. title es el encabezado del documento.
func NewUseCase(source SummarySource, generator ProgressPDFGenerator, title string) *UseCase {
	if title == "" {
		title = "Benchmark progress"
	}
	return &UseCase{source: source, generator: generator, title: title, now: time.Now}
}

// DownloadProgressPDF devuelve el PDF y el nombre de archivo sugerido.
// Benchmark inexistente -> domain.ErrNotFound (propagado desde source).
func (uc *UseCase) DownloadProgressPDF(ctx context.Context, benchmarkID string) (pdfBytes []byte, filename string, err error) {
	b, summaries, err := uc.source.Summaries(ctx, benchmarkID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateProgressPDF(ctx, ProgressData{
		Title:       uc.title,
		Benchmark:   b,
		Summaries:   summaries,
		GeneratedAt: uc.now(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, Filename(b), nil
}

// Filename nombre de archivo estable a partir del nombre del benchmark.
func Filename(b *entity.Benchmark) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '_'
	}, strings.TrimSpace(b.Name))
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = b.ID
	}
	return fmt.Sprintf("progreso_%s.pdf", slug)
}
