// Package support orquesta las llamadas al backend externo de support services
// (validación de sitios, búsqueda web, mapeo de columnas) y persiste su estado
// anidado en cada empresa.
package support

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/benchmark-hub/internal/application/dataset"
	"github.com/jhoicas/benchmark-hub/internal/application/dto"
	"github.com/jhoicas/benchmark-hub/internal/application/ports"
	"github.com/jhoicas/benchmark-hub/internal/domain"
	"github.com/jhoicas/benchmark-hub/internal/domain/category"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
	"github.com/jhoicas/benchmark-hub/internal/domain/repository"
	"github.com/jhoicas/benchmark-hub/pkg/logger"
)

// Config límites de las llamadas al backend.
type Config struct {
	Timeout     time.Duration // por llamada
	Concurrency int           // llamadas simultáneas en corridas por lote
}

// UseCase casos de uso de support services.
type UseCase struct {
	companies  repository.CompanyRepository
	benchmarks repository.BenchmarkRepository
	backend    ports.SupportServices // nil = sin backend configurado
	probe      ports.WebsiteProbe
	engine     *category.Engine
	cfg        Config
	log        *logger.Logger
	now        func() time.Time
}

// NewUseCase construye el caso de uso. Con backend nil la validación de sitios usa
// probe y el resto de operaciones devuelve domain.ErrSupportUnavailable.
func NewUseCase(
	companies repository.CompanyRepository,
	benchmarks repository.BenchmarkRepository,
	backend ports.SupportServices,
	probe ports.WebsiteProbe,
	engine *category.Engine,
	cfg Config,
	log *logger.Logger,
) *UseCase {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if engine == nil {
		engine = category.NewDefaultEngine()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		companies:  companies,
		benchmarks: benchmarks,
		backend:    backend,
		probe:      probe,
		engine:     engine,
		cfg:        cfg,
		log:        log.Component("support"),
		now:        time.Now,
	}
}

// SuggestColumnMapping propone el mapeo de columnas del archivo. Los campos destino
// desconocidos que devuelva el backend se descartan.
func (uc *UseCase) SuggestColumnMapping(ctx context.Context, in dto.ColumnMappingRequest) (*dto.ColumnMappingResponse, error) {
	if uc.backend == nil {
		return nil, domain.ErrSupportUnavailable
	}
	if len(in.Headers) == 0 {
		return nil, fmt.Errorf("%w: headers es obligatorio", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	resp, err := uc.backend.SuggestColumnMapping(ctx, in.Headers, in.SampleRows)
	if err != nil {
		return nil, fmt.Errorf("support: column mapping: %w", err)
	}
	known := make(map[string]bool)
	for _, f := range dataset.TargetFields() {
		known[f] = true
	}
	headers := make(map[string]bool, len(in.Headers))
	for _, h := range in.Headers {
		headers[h] = true
	}
	mapping := make(dto.ColumnMapping, len(resp.Mapping))
	used := make(map[string]bool)
	for field, header := range resp.Mapping {
		if known[field] && headers[header] {
			mapping[field] = header
			used[header] = true
		}
	}
	unmapped := make([]string, 0)
	for _, h := range in.Headers {
		if !used[h] {
			unmapped = append(unmapped, h)
		}
	}
	return &dto.ColumnMappingResponse{Mapping: mapping, Confidence: resp.Confidence, Unmapped: unmapped}, nil
}

// ValidateWebsite valida el sitio de una empresa y persiste el resultado. Una falla
// del validador queda registrada como status=failed y no se devuelve como error.
func (uc *UseCase) ValidateWebsite(ctx context.Context, benchmarkID, companyID string) (*entity.WebsiteValidation, error) {
	c, err := uc.load(ctx, benchmarkID, companyID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.Website) == "" {
		return nil, fmt.Errorf("%w: la empresa no tiene website", domain.ErrInvalidInput)
	}
	return uc.validate(ctx, c)
}

func (uc *UseCase) validate(ctx context.Context, c *entity.Company) (*entity.WebsiteValidation, error) {
	if err := uc.companies.UpdateWebsiteValidation(ctx, c.ID, &entity.WebsiteValidation{
		Status: entity.RunInProgress, CheckedAt: uc.now(),
	}); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	result, callErr := uc.callValidator(callCtx, c.Website)
	cancel()

	if callErr != nil {
		uc.log.Warn().Err(callErr).Str("company_id", c.ID).Str("website", c.Website).Msg("validación de sitio fallida")
		result = &entity.WebsiteValidation{Status: entity.RunFailed, Reason: callErr.Error()}
	} else {
		result.Status = entity.RunCompleted
	}
	result.CheckedAt = uc.now()

	// ctx original: el timeout de la llamada no debe impedir registrar la falla.
	if err := uc.companies.UpdateWebsiteValidation(ctx, c.ID, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *UseCase) callValidator(ctx context.Context, website string) (*entity.WebsiteValidation, error) {
	if uc.backend != nil {
		return uc.backend.ValidateWebsite(ctx, website)
	}
	if uc.probe == nil {
		return nil, domain.ErrSupportUnavailable
	}
	return uc.probe.Probe(ctx, website)
}

// WebSearch analiza la empresa por búsqueda web y persiste el resultado.
func (uc *UseCase) WebSearch(ctx context.Context, benchmarkID, companyID, query string) (*entity.SearchedCompanyData, error) {
	if uc.backend == nil {
		return nil, domain.ErrSupportUnavailable
	}
	c, err := uc.load(ctx, benchmarkID, companyID)
	if err != nil {
		return nil, err
	}
	if err := uc.companies.UpdateSearchedData(ctx, c.ID, &entity.SearchedCompanyData{
		Status: entity.RunInProgress, SearchedAt: uc.now(),
	}); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	result, callErr := uc.backend.SearchCompany(callCtx, c, strings.TrimSpace(query))
	cancel()

	if callErr != nil {
		uc.log.Warn().Err(callErr).Str("company_id", c.ID).Msg("búsqueda web fallida")
		result = &entity.SearchedCompanyData{Status: entity.RunFailed, Summary: callErr.Error()}
	} else {
		result.Status = entity.RunCompleted
		result.AnalysisMethod = strings.ToUpper(strings.TrimSpace(result.AnalysisMethod))
	}
	result.SearchedAt = uc.now()

	if err := uc.companies.UpdateSearchedData(ctx, c.ID, result); err != nil {
		return nil, err
	}
	return result, nil
}

// ValidateWebsites valida en lote los sitios aún sin validar del benchmark, con a
// lo sumo Config.Concurrency llamadas simultáneas. Las fallas por empresa quedan
// registradas y no cortan el lote; solo un error de persistencia lo aborta.
func (uc *UseCase) ValidateWebsites(ctx context.Context, benchmarkID string) (*dto.BatchRunResponse, error) {
	b, err := uc.benchmarks.GetByID(ctx, benchmarkID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	companies, err := uc.companies.ListByBenchmark(ctx, benchmarkID)
	if err != nil {
		return nil, err
	}

	targets := make([]*entity.Company, 0)
	for _, view := range uc.engine.CategorizeAll(companies) {
		v, ok := view.Value(category.DimensionWebsite)
		if ok && v.Key == category.KeyWebsiteNotValidated && strings.TrimSpace(view.Company.Website) != "" {
			targets = append(targets, view.Company)
		}
	}

	out := &dto.BatchRunResponse{FailedIDs: make([]string, 0)}
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.Concurrency)
	for _, c := range targets {
		c := c
		g.Go(func() error {
			res, err := uc.validate(gCtx, c)
			if err != nil {
				return fmt.Errorf("empresa %s: %w", c.ID, err)
			}
			mu.Lock()
			defer mu.Unlock()
			out.Processed++
			if res.Status == entity.RunFailed {
				out.Failed++
				out.FailedIDs = append(out.FailedIDs, c.ID)
			} else {
				out.Succeeded++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	uc.log.Info().Str("benchmark_id", benchmarkID).Int("processed", out.Processed).Int("failed", out.Failed).Msg("validación por lote terminada")
	return out, nil
}

func (uc *UseCase) load(ctx context.Context, benchmarkID, id string) (*entity.Company, error) {
	c, err := uc.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.BenchmarkID != benchmarkID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}
