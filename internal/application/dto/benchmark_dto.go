package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBenchmarkRequest entrada para crear un benchmark.
type CreateBenchmarkRequest struct {
	ClientID    string          `json:"client_id" validate:"required,uuid"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"omitempty,max=4000"`
	ModelName   string          `json:"model_name" validate:"omitempty,max=120"`
	Status      string          `json:"status" validate:"omitempty,oneof=draft active completed archived"`
	TargetScore decimal.Decimal `json:"target_score"`
}

// UpdateBenchmarkRequest entrada para actualizar un benchmark (campos opcionales).
type UpdateBenchmarkRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=4000"`
	ModelName   *string          `json:"model_name" validate:"omitempty,max=120"`
	Status      *string          `json:"status" validate:"omitempty,oneof=draft active completed archived"`
	TargetScore *decimal.Decimal `json:"target_score"`
}

// BenchmarkListRequest filtros del listado.
type BenchmarkListRequest struct {
	PageRequest
	ClientID string `query:"client_id" validate:"omitempty,uuid"`
	Status   string `query:"status" validate:"omitempty,oneof=draft active completed archived"`
}

// BenchmarkResponse salida de un benchmark.
type BenchmarkResponse struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ModelName   string          `json:"model_name"`
	Status      string          `json:"status"`
	TargetScore decimal.Decimal `json:"target_score"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BenchmarkListResponse lista paginada de benchmarks.
type BenchmarkListResponse struct {
	Items []BenchmarkResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
