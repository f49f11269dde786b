package dataset

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/benchmark-hub/internal/application/dto"
	"github.com/jhoicas/benchmark-hub/internal/domain"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
	"github.com/jhoicas/benchmark-hub/internal/domain/repository"
)

// Campos destino del mapeo de columnas.
const (
	FieldName        = "name"
	FieldWebsite     = "website"
	FieldDescription = "description"
	FieldCountry     = "country"
)

// Motivos de filas omitidas en el import.
const (
	SkipMissingName   = "missing name"
	SkipDuplicateFile = "duplicate in file"
	SkipAlreadyExists = "already exists"
)

var targetFields = map[string]bool{
	FieldName:        true,
	FieldWebsite:     true,
	FieldDescription: true,
	FieldCountry:     true,
}

// TargetFields campos destino admitidos, ordenados.
func TargetFields() []string {
	out := make([]string, 0, len(targetFields))
	for f := range targetFields {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ValidateMapping exige el campo name y rechaza campos destino desconocidos.
func ValidateMapping(m dto.ColumnMapping) error {
	for field, header := range m {
		if !targetFields[field] {
			return fmt.Errorf("%w: campo destino desconocido %q", domain.ErrInvalidInput, field)
		}
		if strings.TrimSpace(header) == "" {
			return fmt.Errorf("%w: encabezado vacío para %q", domain.ErrInvalidInput, field)
		}
	}
	if _, ok := m[FieldName]; !ok {
		return fmt.Errorf("%w: el mapeo debe incluir %q", domain.ErrInvalidInput, FieldName)
	}
	return nil
}

// Import crea las filas del archivo en una sola transacción. Las filas sin nombre
// o repetidas (en el archivo o en el dataset) se omiten y se reportan; cualquier
// otro error revierte el import completo.
func (uc *CompanyUseCase) Import(ctx context.Context, benchmarkID string, in dto.ImportCompaniesRequest) (*dto.ImportCompaniesResponse, error) {
	if _, err := uc.requireBenchmark(ctx, benchmarkID); err != nil {
		return nil, err
	}
	if err := ValidateMapping(in.Mapping); err != nil {
		return nil, err
	}

	out := &dto.ImportCompaniesResponse{Skipped: make([]dto.SkippedRow, 0)}
	err := uc.tx.RunInTx(ctx, func(companies repository.CompanyRepository) error {
		out.Created = 0
		out.Skipped = out.Skipped[:0]
		seen := make(map[string]bool, len(in.Rows))
		now := uc.now()

		for i, row := range in.Rows {
			c := CompanyFromRow(in.Mapping, row)
			if c.Name == "" {
				out.Skipped = append(out.Skipped, dto.SkippedRow{Index: i, Reason: SkipMissingName})
				continue
			}
			norm := strings.ToLower(c.Name)
			if seen[norm] {
				out.Skipped = append(out.Skipped, dto.SkippedRow{Index: i, Name: c.Name, Reason: SkipDuplicateFile})
				continue
			}
			seen[norm] = true

			existing, err := companies.GetByBenchmarkAndName(ctx, benchmarkID, c.Name)
			if err != nil {
				return err
			}
			if existing != nil {
				out.Skipped = append(out.Skipped, dto.SkippedRow{Index: i, Name: c.Name, Reason: SkipAlreadyExists})
				continue
			}

			c.ID = uuid.New().String()
			c.BenchmarkID = benchmarkID
			c.CreatedAt = now
			c.UpdatedAt = now
			if err := companies.Create(ctx, c); err != nil {
				return fmt.Errorf("fila %d: %w", i, err)
			}
			out.Created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CompanyFromRow arma la empresa de una fila cruda según el mapeo; conserva la fila en RawData.
func CompanyFromRow(m dto.ColumnMapping, row map[string]string) *entity.Company {
	get := func(field string) string {
		header, ok := m[field]
		if !ok {
			return ""
		}
		return strings.TrimSpace(row[header])
	}
	raw := make(map[string]string, len(row))
	for k, v := range row {
		raw[k] = v
	}
	return &entity.Company{
		Name:        get(FieldName),
		Website:     get(FieldWebsite),
		Description: get(FieldDescription),
		Country:     get(FieldCountry),
		RawData:     raw,
	}
}
