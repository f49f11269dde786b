package dto

import (
	"time"

	"github.com/jhoicas/benchmark-hub/internal/domain/category"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
)

// CreateCompanyRequest entrada para crear una fila del dataset.
type CreateCompanyRequest struct {
	Name        string            `json:"name" validate:"required,min=1,max=300"`
	Website     string            `json:"website" validate:"omitempty,max=500"`
	Description string            `json:"description" validate:"omitempty,max=8000"`
	Country     string            `json:"country" validate:"omitempty,max=80"`
	RawData     map[string]string `json:"raw_data"`
}

// UpdateCompanyRequest entrada para actualizar una fila (campos opcionales).
// Cambiar el website invalida la validación previa.
type UpdateCompanyRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=300"`
	Website     *string `json:"website" validate:"omitempty,max=500"`
	Description *string `json:"description" validate:"omitempty,max=8000"`
	Country     *string `json:"country" validate:"omitempty,max=80"`
}

// CompanyResponse salida de una empresa con sus categorías derivadas.
type CompanyResponse struct {
	ID                string                         `json:"id"`
	BenchmarkID       string                         `json:"benchmark_id"`
	Name              string                         `json:"name"`
	Website           string                         `json:"website"`
	Description       string                         `json:"description"`
	Country           string                         `json:"country"`
	RawData           map[string]string              `json:"raw_data,omitempty"`
	WebsiteValidation *entity.WebsiteValidation      `json:"website_validation,omitempty"`
	SearchedData      *entity.SearchedCompanyData    `json:"searched_company_data,omitempty"`
	Categories        map[string]category.Badge      `json:"categories"`
	Icons             map[string]category.IconButton `json:"icons"` // versión compacta de Categories
	CreatedAt         time.Time                      `json:"created_at"`
	UpdatedAt         time.Time                      `json:"updated_at"`
}

// CompanyListQuery filtros del listado del dataset.
type CompanyListQuery struct {
	Filters   []string // claves DIMENSION.CODE, una por dimensión
	Countries []string // país de la empresa; basta con coincidir con uno
}

// CompanyListResponse dataset categorizado, con los filtros aplicados.
type CompanyListResponse struct {
	Items    []CompanyResponse    `json:"items"`
	Total    int                  `json:"total"`    // filas del dataset
	Filtered int                  `json:"filtered"` // filas que cumplen los filtros
	Filters  []category.Condition `json:"filters"`
}

// ColumnMapping campo destino -> encabezado del archivo origen.
// Campos destino: name, website, description, country.
type ColumnMapping map[string]string

// ImportCompaniesRequest filas crudas (encabezado -> valor) y su mapeo de columnas.
type ImportCompaniesRequest struct {
	Mapping ColumnMapping       `json:"mapping" validate:"required"`
	Rows    []map[string]string `json:"rows" validate:"required,min=1,max=5000"`
}

// SkippedRow fila no importada y su motivo.
type SkippedRow struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ImportCompaniesResponse resultado del import.
type ImportCompaniesResponse struct {
	Created int          `json:"created"`
	Skipped []SkippedRow `json:"skipped"`
}
