package category_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/benchmark-hub/internal/domain/category"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
)

func sampleViews(engine *category.Engine) []category.View {
	return engine.CategorizeAll([]*entity.Company{
		{ID: "1", Name: "Sin búsqueda", Website: "https://a.example"},
		searched(entity.AnalysisWebsite, boolPtr(true)),
		searched(entity.AnalysisDatabase, boolPtr(false)),
		searched(entity.AnalysisWebsite, boolPtr(false)),
		searched("MANUAL", boolPtr(true)),
	})
}

func TestFilterToggle_AplicarYRetirarRestauraEstado(t *testing.T) {
	engine := category.NewDefaultEngine()
	views := sampleViews(engine)
	failed := engine.Taxonomy().MustLookup(category.KeySourceFailed)
	column := category.DimensionSourceUsed.Column()

	state := category.NewFilterState()
	require.NoError(t, state.AddCondition(category.Condition{Column: column, Operator: category.OperatorContainsAny, Values: []string{"Website"}}))
	before := state.Conditions(column)

	toggle := category.CreateFilterToggle(views, category.DimensionSourceUsed, failed)

	toggle(state)
	assert.True(t, state.IsFiltered(category.DimensionSourceUsed))
	require.Len(t, state.Conditions(column), 2)
	assert.Equal(t, []string{"Failed"}, state.Conditions(column)[1].Values)

	toggle(state)
	assert.False(t, state.IsFiltered(category.DimensionSourceUsed))
	assert.Equal(t, before, state.Conditions(column), "retirar debe restaurar las condiciones previas")
}

func TestFilterToggle_SinCondicionesPreviasEliminaColumna(t *testing.T) {
	engine := category.NewDefaultEngine()
	views := sampleViews(engine)
	toggle := category.CreateFilterToggle(views, category.DimensionSourceUsed, engine.Taxonomy().MustLookup(category.KeySourceWebsite))

	state := category.NewFilterState()
	toggle(state)
	toggle(state)

	assert.Empty(t, state.Columns())
	assert.False(t, state.IsFiltered(category.DimensionSourceUsed))
}

func TestFilterState_Match(t *testing.T) {
	engine := category.NewDefaultEngine()
	views := sampleViews(engine)
	toggle := category.CreateFilterToggle(views, category.DimensionSourceUsed, engine.Taxonomy().MustLookup(category.KeySourceFailed))

	state := category.NewFilterState()
	toggle(state)
	got := state.Filter(views)

	require.Len(t, got, 2)
	for _, v := range got {
		val, ok := v.Value(category.DimensionSourceUsed)
		require.True(t, ok)
		assert.Equal(t, category.KeySourceFailed, val.Key)
	}
}

func TestFilterState_CondicionSobreCampoDeEmpresa(t *testing.T) {
	engine := category.NewDefaultEngine()
	views := engine.CategorizeAll([]*entity.Company{
		{ID: "1", Name: "Sin país"},
		{ID: "2", Name: "Andina", Country: "CO", RawData: map[string]string{"Sector": "Retail"}},
		{ID: "3", Name: "Austral", Country: "cl", RawData: map[string]string{"Sector": "Minería"}},
	})

	state := category.NewFilterState()
	require.NoError(t, state.AddCondition(category.Condition{Column: category.ColumnCountry, Values: []string{"CO", "CL"}}))
	assert.Equal(t, []string{category.ColumnCountry}, state.Columns())
	assert.False(t, state.Match(views[0]), "celda vacía no cumple la condición")

	got := state.Filter(views)
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].Company.ID)
	assert.Equal(t, "3", got[1].Company.ID, "comparación sin mayúsculas")

	require.NoError(t, state.AddCondition(category.Condition{Column: "Sector", Values: []string{"retail"}}))
	got = state.Filter(views)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].Company.ID)
}

func TestFilterState_CondicionInvalidaSeRechaza(t *testing.T) {
	state := category.NewFilterState()

	err := state.AddCondition(category.Condition{Column: category.ColumnCountry, Operator: "equals", Values: []string{"CO"}})
	assert.ErrorIs(t, err, category.ErrInvalidCondition)
	err = state.AddCondition(category.Condition{Column: "  ", Values: []string{"CO"}})
	assert.ErrorIs(t, err, category.ErrInvalidCondition)
	assert.Empty(t, state.Columns())

	require.NoError(t, state.AddCondition(category.Condition{Column: category.ColumnCountry, Values: []string{"CO"}}))
	assert.Equal(t, category.OperatorContainsAny, state.Conditions(category.ColumnCountry)[0].Operator)
}

func TestCellValue(t *testing.T) {
	engine := category.NewDefaultEngine()
	v := engine.Categorize(&entity.Company{Name: "Acme", Website: "https://acme.example", RawData: map[string]string{"NIT": "900"}})

	assert.Equal(t, "Acme", category.CellValue(v, category.ColumnName))
	assert.Equal(t, "https://acme.example", category.CellValue(v, category.ColumnWebsite))
	assert.Equal(t, "900", category.CellValue(v, "NIT"))
	assert.Equal(t, "", category.CellValue(v, "inexistente"))
	input, ok := v.Value(category.DimensionInput)
	require.True(t, ok)
	assert.Equal(t, input.Label, category.CellValue(v, category.DimensionInput.Column()))
}

func TestProjector_BadgeEnfatizadoSegunFiltro(t *testing.T) {
	engine := category.NewDefaultEngine()
	views := sampleViews(engine)
	proj := category.NewProjector(views)
	state := category.NewFilterState()

	target := views[2] // DATABASE fallido
	badge, ok := proj.Badge(target, category.DimensionSourceUsed, state)
	require.True(t, ok)
	assert.Equal(t, category.VariantDefault, badge.Variant)
	assert.Equal(t, category.ColorRed, badge.Color)
	assert.Equal(t, category.DescDescriptionInsufficient, badge.Description)

	badge.Toggle(state)
	badge, _ = proj.Badge(target, category.DimensionSourceUsed, state)
	assert.Equal(t, category.VariantEmphasized, badge.Variant)
	assert.True(t, badge.Filtered)

	_, ok = proj.Badge(views[4], category.DimensionSourceUsed, state)
	assert.False(t, ok, "vista sin valor no tiene badge")
}

func TestIconButton(t *testing.T) {
	def := category.MustNewTaxonomy(category.DefaultEntries).MustLookup(category.KeyWebsiteValid)
	btn := def.CreateIconButton("company-1")
	assert.Equal(t, category.IconGlobe, btn.Icon)
	assert.Equal(t, "Valid website", btn.Tooltip)
	assert.Equal(t, "company-1", btn.EntityID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Summary
// ──────────────────────────────────────────────────────────────────────────────

func TestSummarize_ParticionCompleta(t *testing.T) {
	engine := category.NewDefaultEngine()
	views := sampleViews(engine)

	sum := category.Summarize(engine.Taxonomy(), views, category.DimensionSourceUsed)

	counted := 0
	for _, g := range sum.Groups {
		counted += g.Count
	}
	assert.Equal(t, len(views), sum.Total)
	assert.Equal(t, 1, sum.Uncategorized, "MANUAL no tiene fuente")
	assert.Equal(t, sum.Total, counted+sum.Uncategorized)

	byKey := map[category.Key]category.Group{}
	for _, g := range sum.Groups {
		byKey[g.Definition.Key] = g
	}
	assert.Equal(t, 2, byKey[category.KeySourceFailed].Count)
	assert.True(t, decimal.NewFromInt(40).Equal(byKey[category.KeySourceFailed].Percentage))
	assert.True(t, decimal.NewFromInt(20).Equal(sum.UncategorizedPct))
}

func TestSummarize_ColeccionVacia(t *testing.T) {
	tax := category.MustNewTaxonomy(category.DefaultEntries)
	sum := category.Summarize(tax, nil, category.DimensionInput)
	assert.Equal(t, 0, sum.Total)
	assert.Len(t, sum.Groups, 3)
	assert.True(t, sum.UncategorizedPct.IsZero())
}

func TestSummarize_ClaveAjenaALaTaxonomiaFallaRapido(t *testing.T) {
	tax := category.MustNewTaxonomy(category.DefaultEntries)
	other := category.MustNewTaxonomy([]category.Entry{
		{Dimension: category.DimensionInput, Code: "LEGACY", Label: "Legacy", Color: category.ColorGray},
	})
	legacy := other.MustLookup(category.NewKey(category.DimensionInput, "LEGACY"))

	views := []category.View{{
		Company: &entity.Company{ID: "1"},
		Values:  map[category.Dimension]category.Value{category.DimensionInput: legacy.ToValue()},
	}}
	assert.Panics(t, func() { category.Summarize(tax, views, category.DimensionInput) })

	misplaced := []category.View{{
		Company: &entity.Company{ID: "2"},
		Values: map[category.Dimension]category.Value{
			category.DimensionInput: tax.MustLookup(category.KeySourceFailed).ToValue(),
		},
	}}
	assert.Panics(t, func() { category.Summarize(tax, misplaced, category.DimensionInput) }, "clave de otra dimensión")
}

// ──────────────────────────────────────────────────────────────────────────────
// Taxonomy
// ──────────────────────────────────────────────────────────────────────────────

func TestTaxonomy_LookupDesconocido(t *testing.T) {
	tax := category.MustNewTaxonomy(category.DefaultEntries)

	_, err := tax.Lookup("SOURCE_USED.NOPE")
	assert.ErrorIs(t, err, category.ErrUnknownCategory)
	assert.Panics(t, func() { tax.MustLookup("INPUT.NOPE") })

	key, err := tax.ParseKey(" source_used.failed ")
	require.NoError(t, err)
	assert.Equal(t, category.KeySourceFailed, key)
	assert.Equal(t, category.DimensionSourceUsed, key.Dimension())
	assert.Equal(t, "FAILED", key.Code())
}

func TestTaxonomy_ValidaAlCargar(t *testing.T) {
	_, err := category.NewTaxonomy([]category.Entry{
		{Dimension: category.DimensionInput, Code: "NEW", Label: "New", Color: category.ColorBlue},
		{Dimension: category.DimensionInput, Code: "NEW", Label: "Otra", Color: category.ColorRed},
	})
	assert.Error(t, err, "clave duplicada")

	_, err = category.NewTaxonomy([]category.Entry{
		{Dimension: category.DimensionInput, Code: "NEW", Label: "New", Color: "cyan"},
	})
	assert.Error(t, err, "color fuera de la paleta")

	_, err = category.NewTaxonomy([]category.Entry{
		{Dimension: "OTHER", Code: "X", Label: "X", Color: category.ColorBlue},
	})
	assert.Error(t, err, "dimensión desconocida")
}

func TestEngine_ReglaConClaveInexistenteFallaRapido(t *testing.T) {
	tax := category.MustNewTaxonomy([]category.Entry{
		{Dimension: category.DimensionInput, Code: "NEW", Label: "New", Color: category.ColorBlue},
	})
	assert.Panics(t, func() { category.DefaultCategorizers(tax) })
}
