package dataset_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/benchmark-hub/internal/application/dataset"
	"github.com/jhoicas/benchmark-hub/internal/application/dto"
	"github.com/jhoicas/benchmark-hub/internal/domain"
)

func TestValidateMapping(t *testing.T) {
	assert.NoError(t, dataset.ValidateMapping(dto.ColumnMapping{"name": "Empresa", "website": "Sitio"}))
	assert.ErrorIs(t, dataset.ValidateMapping(dto.ColumnMapping{"website": "Sitio"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, dataset.ValidateMapping(dto.ColumnMapping{"name": "Empresa", "revenue": "Ventas"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, dataset.ValidateMapping(dto.ColumnMapping{"name": " "}), domain.ErrInvalidInput)
	assert.Equal(t, []string{"country", "description", "name", "website"}, dataset.TargetFields())
}

func TestImport_OmiteDuplicadosYSinNombre(t *testing.T) {
	f := newFixture(t)
	f.add(t, "Existente", "")

	resp, err := f.uc.Import(context.Background(), benchID, dto.ImportCompaniesRequest{
		Mapping: dto.ColumnMapping{"name": "Empresa", "website": "Sitio", "country": "País"},
		Rows: []map[string]string{
			{"Empresa": "Alpha", "Sitio": "https://alpha.example", "País": "CO", "Empleados": "40"},
			{"Empresa": "  ", "Sitio": "https://x.example"},
			{"Empresa": "alpha"},
			{"Empresa": "existente"},
			{"Empresa": "Beta"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Created)
	require.Len(t, resp.Skipped, 3)
	assert.Equal(t, dto.SkippedRow{Index: 1, Reason: dataset.SkipMissingName}, resp.Skipped[0])
	assert.Equal(t, dataset.SkipDuplicateFile, resp.Skipped[1].Reason)
	assert.Equal(t, dataset.SkipAlreadyExists, resp.Skipped[2].Reason)

	list, err := f.uc.List(context.Background(), benchID, dto.CompanyListQuery{})
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	alpha := list.Items[1]
	assert.Equal(t, "Alpha", alpha.Name)
	assert.Equal(t, "CO", alpha.Country)
	assert.Equal(t, "40", alpha.RawData["Empleados"], "las columnas originales se conservan")
}

func TestImport_MapeoInvalidoNoCreaNada(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Import(context.Background(), benchID, dto.ImportCompaniesRequest{
		Mapping: dto.ColumnMapping{"website": "Sitio"},
		Rows:    []map[string]string{{"Sitio": "https://a.example"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := f.companies.ListByBenchmark(context.Background(), benchID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
