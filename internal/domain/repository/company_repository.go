package repository

import (
	"context"

	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para las filas del dataset de empresas.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByBenchmarkAndName(ctx context.Context, benchmarkID, name string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	// UpdateWebsiteValidation y UpdateSearchedData reemplazan solo el estado anidado.
	UpdateWebsiteValidation(ctx context.Context, id string, v *entity.WebsiteValidation) error
	UpdateSearchedData(ctx context.Context, id string, d *entity.SearchedCompanyData) error
	// ListByBenchmark devuelve el dataset completo; la categorización se hace en memoria.
	ListByBenchmark(ctx context.Context, benchmarkID string) ([]*entity.Company, error)
	Delete(ctx context.Context, id string) error
}
