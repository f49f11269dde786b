package ports

import (
	"context"

	"github.com/jhoicas/benchmark-hub/internal/application/dto"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
)

// SupportServices puerto de salida hacia el backend externo de "support services".
// Cada llamada debe recibir un contexto con timeout; el adaptador no reintenta.
type SupportServices interface {
	// ValidateWebsite comprueba que el sitio responde y pertenece a una empresa real.
	ValidateWebsite(ctx context.Context, website string) (*entity.WebsiteValidation, error)

	// SuggestColumnMapping propone, con IA, qué encabezado del archivo corresponde
	// a cada campo del dataset.
	SuggestColumnMapping(ctx context.Context, headers []string, sampleRows [][]string) (*dto.ColumnMappingResponse, error)

	// SearchCompany analiza la empresa por búsqueda web y reporta el método usado
	// (WEBSITE, DATABASE o BOTH) y si la información alcanzó.
	SearchCompany(ctx context.Context, company *entity.Company, query string) (*entity.SearchedCompanyData, error)
}

// WebsiteProbe validación local del sitio (modo dev, sin support services).
type WebsiteProbe interface {
	Probe(ctx context.Context, website string) (*entity.WebsiteValidation, error)
}
