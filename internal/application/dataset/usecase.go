// Package dataset casos de uso del dataset de empresas de un benchmark: CRUD,
// import masivo, listado categorizado con filtros y resúmenes de progreso.
package dataset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/benchmark-hub/internal/application/dto"
	"github.com/jhoicas/benchmark-hub/internal/domain"
	"github.com/jhoicas/benchmark-hub/internal/domain/category"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
	"github.com/jhoicas/benchmark-hub/internal/domain/repository"
)

// CompanyUseCase casos de uso del dataset. Las categorías nunca se persisten: se
// derivan con el engine en cada lectura.
type CompanyUseCase struct {
	companies  repository.CompanyRepository
	benchmarks repository.BenchmarkRepository
	tx         TxRunner
	engine     *category.Engine
	now        func() time.Time
}

// NewCompanyUseCase construye el caso de uso. engine nil usa category.NewDefaultEngine.
func NewCompanyUseCase(
	companies repository.CompanyRepository,
	benchmarks repository.BenchmarkRepository,
	tx TxRunner,
	engine *category.Engine,
) *CompanyUseCase {
	if engine == nil {
		engine = category.NewDefaultEngine()
	}
	return &CompanyUseCase{
		companies:  companies,
		benchmarks: benchmarks,
		tx:         tx,
		engine:     engine,
		now:        time.Now,
	}
}

// Engine motor de categorización usado por el caso de uso.
func (uc *CompanyUseCase) Engine() *category.Engine { return uc.engine }

// Create agrega una empresa al dataset. Nombre repetido en el benchmark -> domain.ErrDuplicate.
func (uc *CompanyUseCase) Create(ctx context.Context, benchmarkID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if _, err := uc.requireBenchmark(ctx, benchmarkID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	existing, err := uc.companies.GetByBenchmarkAndName(ctx, benchmarkID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.now()
	c := &entity.Company{
		ID:          uuid.New().String(),
		BenchmarkID: benchmarkID,
		Name:        name,
		Website:     strings.TrimSpace(in.Website),
		Description: strings.TrimSpace(in.Description),
		Country:     strings.TrimSpace(in.Country),
		RawData:     in.RawData,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.companies.Create(ctx, c); err != nil {
		return nil, err
	}
	return uc.single(c), nil
}

// GetByID obtiene una empresa del benchmark con sus categorías.
func (uc *CompanyUseCase) GetByID(ctx context.Context, benchmarkID, id string) (*dto.CompanyResponse, error) {
	c, err := uc.load(ctx, benchmarkID, id)
	if err != nil {
		return nil, err
	}
	return uc.single(c), nil
}

// Update actualiza los campos presentes. Cambiar el website descarta la
// validación y la búsqueda previas, que quedan sin ejecutar.
func (uc *CompanyUseCase) Update(ctx context.Context, benchmarkID, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	c, err := uc.load(ctx, benchmarkID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
		}
		if !strings.EqualFold(name, c.Name) {
			other, err := uc.companies.GetByBenchmarkAndName(ctx, benchmarkID, name)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != c.ID {
				return nil, domain.ErrDuplicate
			}
		}
		c.Name = name
	}
	websiteChanged := false
	if in.Website != nil {
		website := strings.TrimSpace(*in.Website)
		websiteChanged = website != c.Website
		c.Website = website
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.Country != nil {
		c.Country = strings.TrimSpace(*in.Country)
	}
	c.UpdatedAt = uc.now()
	err = uc.tx.RunInTx(ctx, func(companies repository.CompanyRepository) error {
		if err := companies.Update(ctx, c); err != nil {
			return err
		}
		if !websiteChanged {
			return nil
		}
		if err := companies.UpdateWebsiteValidation(ctx, c.ID, nil); err != nil {
			return err
		}
		return companies.UpdateSearchedData(ctx, c.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	if websiteChanged {
		c.WebsiteValidation = nil
		c.SearchedData = nil
	}
	return uc.single(c), nil
}

// Delete quita una empresa del dataset.
func (uc *CompanyUseCase) Delete(ctx context.Context, benchmarkID, id string) error {
	if _, err := uc.load(ctx, benchmarkID, id); err != nil {
		return err
	}
	return uc.companies.Delete(ctx, id)
}

// List devuelve el dataset categorizado. Cada clave de q.Filters aplica el toggle
// de esa categoría; se admite una sola clave por dimensión. q.Countries agrega
// una condición sobre la columna country.
func (uc *CompanyUseCase) List(ctx context.Context, benchmarkID string, q dto.CompanyListQuery) (*dto.CompanyListResponse, error) {
	if _, err := uc.requireBenchmark(ctx, benchmarkID); err != nil {
		return nil, err
	}
	companies, err := uc.companies.ListByBenchmark(ctx, benchmarkID)
	if err != nil {
		return nil, err
	}
	views := uc.engine.CategorizeAll(companies)
	proj := category.NewProjector(views)

	state, err := uc.filterState(proj, q.Filters)
	if err != nil {
		return nil, err
	}
	if len(q.Countries) > 0 {
		cond := category.Condition{Column: category.ColumnCountry, Operator: category.OperatorContainsAny, Values: q.Countries}
		if err := state.AddCondition(cond); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	matched := state.Filter(views)

	items := make([]dto.CompanyResponse, 0, len(matched))
	for _, v := range matched {
		items = append(items, *toCompanyResponse(v, proj, state))
	}
	conditions := make([]category.Condition, 0)
	for _, col := range state.Columns() {
		conditions = append(conditions, state.Conditions(col)...)
	}
	return &dto.CompanyListResponse{
		Items:    items,
		Total:    len(views),
		Filtered: len(matched),
		Filters:  conditions,
	}, nil
}

func (uc *CompanyUseCase) filterState(proj *category.Projector, filters []string) (*category.FilterState, error) {
	tax := uc.engine.Taxonomy()
	state := category.NewFilterState()
	seen := make(map[category.Dimension]category.Key, len(filters))
	for _, raw := range filters {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		key, err := tax.ParseKey(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		d := key.Dimension()
		if prev, dup := seen[d]; dup {
			if prev == key {
				continue
			}
			return nil, fmt.Errorf("%w: una sola categoría por dimensión (%s)", domain.ErrInvalidInput, d)
		}
		seen[d] = key
		proj.Toggle(d, tax.MustLookup(key))(state)
	}
	return state, nil
}

// Progress resumen por categoría. dimension vacío = todas las dimensiones.
func (uc *CompanyUseCase) Progress(ctx context.Context, benchmarkID, dimension string) (*dto.ProgressResponse, error) {
	var dims []category.Dimension
	if strings.TrimSpace(dimension) != "" {
		d, err := category.ParseDimension(dimension)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		dims = []category.Dimension{d}
	} else {
		dims = category.Dimensions()
	}

	_, summaries, err := uc.Summaries(ctx, benchmarkID, dims...)
	if err != nil {
		return nil, err
	}
	out := &dto.ProgressResponse{BenchmarkID: benchmarkID, Dimensions: make([]dto.ProgressDTO, 0, len(summaries))}
	for _, s := range summaries {
		out.Dimensions = append(out.Dimensions, toProgressDTO(s))
	}
	return out, nil
}

// Summaries benchmark y resúmenes de las dimensiones pedidas (todas si no se indica ninguna).
func (uc *CompanyUseCase) Summaries(ctx context.Context, benchmarkID string, dims ...category.Dimension) (*entity.Benchmark, []category.Summary, error) {
	b, err := uc.requireBenchmark(ctx, benchmarkID)
	if err != nil {
		return nil, nil, err
	}
	companies, err := uc.companies.ListByBenchmark(ctx, benchmarkID)
	if err != nil {
		return nil, nil, err
	}
	views := uc.engine.CategorizeAll(companies)
	if len(dims) == 0 {
		return b, category.SummarizeAll(uc.engine.Taxonomy(), views), nil
	}
	out := make([]category.Summary, 0, len(dims))
	for _, d := range dims {
		out = append(out, category.Summarize(uc.engine.Taxonomy(), views, d))
	}
	return b, out, nil
}

// Taxonomy todas las categorías por dimensión, para el frontend.
func (uc *CompanyUseCase) Taxonomy() []dto.TaxonomyDimensionDTO {
	tax := uc.engine.Taxonomy()
	out := make([]dto.TaxonomyDimensionDTO, 0, len(category.Dimensions()))
	for _, d := range category.Dimensions() {
		out = append(out, dto.TaxonomyDimensionDTO{
			Dimension:  d,
			Column:     d.Column(),
			Categories: tax.Definitions(d),
		})
	}
	return out
}

func (uc *CompanyUseCase) requireBenchmark(ctx context.Context, id string) (*entity.Benchmark, error) {
	b, err := uc.benchmarks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// load empresa del benchmark; si pertenece a otro benchmark responde como inexistente.
func (uc *CompanyUseCase) load(ctx context.Context, benchmarkID, id string) (*entity.Company, error) {
	c, err := uc.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.BenchmarkID != benchmarkID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *CompanyUseCase) single(c *entity.Company) *dto.CompanyResponse {
	v := uc.engine.Categorize(c)
	return toCompanyResponse(v, category.NewProjector([]category.View{v}), nil)
}

func toCompanyResponse(v category.View, proj *category.Projector, state *category.FilterState) *dto.CompanyResponse {
	c := v.Company
	badges := proj.Badges(v, state)
	cats := make(map[string]category.Badge, len(badges))
	for d, b := range badges {
		cats[string(d)] = b
	}
	icons := make(map[string]category.IconButton, len(v.Values))
	for d, val := range v.Values {
		icons[string(d)] = val.Category.CreateIconButton(c.ID)
	}
	return &dto.CompanyResponse{
		ID:                c.ID,
		BenchmarkID:       c.BenchmarkID,
		Name:              c.Name,
		Website:           c.Website,
		Description:       c.Description,
		Country:           c.Country,
		RawData:           c.RawData,
		WebsiteValidation: c.WebsiteValidation,
		SearchedData:      c.SearchedData,
		Categories:        cats,
		Icons:             icons,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func toProgressDTO(s category.Summary) dto.ProgressDTO {
	groups := make([]dto.ProgressGroupDTO, 0, len(s.Groups))
	for _, g := range s.Groups {
		groups = append(groups, dto.ProgressGroupDTO{
			Key:        g.Definition.Key,
			Label:      g.Definition.Label,
			Color:      g.Definition.Color,
			Status:     g.Definition.Status,
			Count:      g.Count,
			Percentage: g.Percentage,
		})
	}
	return dto.ProgressDTO{
		Dimension:        s.Dimension,
		Total:            s.Total,
		Groups:           groups,
		Uncategorized:    s.Uncategorized,
		UncategorizedPct: s.UncategorizedPct,
	}
}
