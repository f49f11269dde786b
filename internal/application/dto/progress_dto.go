package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/benchmark-hub/internal/domain/category"
)

// ProgressGroupDTO cantidad de empresas en una categoría.
type ProgressGroupDTO struct {
	Key        category.Key    `json:"category_key"`
	Label      string          `json:"label"`
	Color      category.Color  `json:"color"`
	Status     category.Status `json:"status,omitempty"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ProgressDTO resumen de una dimensión en un benchmark.
type ProgressDTO struct {
	Dimension        category.Dimension `json:"dimension"`
	Total            int                `json:"total"`
	Groups           []ProgressGroupDTO `json:"groups"`
	Uncategorized    int                `json:"uncategorized"`
	UncategorizedPct decimal.Decimal    `json:"uncategorized_percentage"`
}

// ProgressResponse respuesta de GET /api/benchmarks/:id/progress.
type ProgressResponse struct {
	BenchmarkID string        `json:"benchmark_id"`
	Dimensions  []ProgressDTO `json:"dimensions"`
}

// TaxonomyDimensionDTO categorías de una dimensión, en orden de presentación.
type TaxonomyDimensionDTO struct {
	Dimension  category.Dimension    `json:"dimension"`
	Column     string                `json:"column"`
	Categories []category.Definition `json:"categories"`
}
