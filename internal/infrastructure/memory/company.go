package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/benchmark-hub/internal/domain"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
	"github.com/jhoicas/benchmark-hub/internal/domain/repository"
)

// CompanyRepo dataset de empresas en memoria. Las copias devueltas no comparten
// los punteros anidados con el almacenamiento.
type CompanyRepo struct {
	mu    sync.RWMutex
	items map[string]entity.Company
	order []string
}

// NewCompanyRepo repo vacío.
func NewCompanyRepo() *CompanyRepo {
	return &CompanyRepo{items: make(map[string]entity.Company)}
}

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.BenchmarkID == c.BenchmarkID && strings.EqualFold(existing.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	r.items[c.ID] = clone(*c)
	r.order = append(r.order, c.ID)
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	out := clone(c)
	return &out, nil
}

func (r *CompanyRepo) GetByBenchmarkAndName(_ context.Context, benchmarkID, name string) (*entity.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if c.BenchmarkID == benchmarkID && strings.EqualFold(c.Name, name) {
			out := clone(c)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.items[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	current.Name = c.Name
	current.Website = c.Website
	current.Description = c.Description
	current.Country = c.Country
	current.RawData = c.RawData
	current.UpdatedAt = c.UpdatedAt
	r.items[c.ID] = clone(current)
	return nil
}

func (r *CompanyRepo) UpdateWebsiteValidation(_ context.Context, id string, v *entity.WebsiteValidation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.WebsiteValidation = v
	c.UpdatedAt = time.Now()
	r.items[id] = clone(c)
	return nil
}

func (r *CompanyRepo) UpdateSearchedData(_ context.Context, id string, d *entity.SearchedCompanyData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.SearchedData = d
	c.UpdatedAt = time.Now()
	r.items[id] = clone(c)
	return nil
}

func (r *CompanyRepo) ListByBenchmark(_ context.Context, benchmarkID string) ([]*entity.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Company, 0)
	for _, id := range r.order {
		c, ok := r.items[id]
		if !ok || c.BenchmarkID != benchmarkID {
			continue
		}
		cp := clone(c)
		out = append(out, &cp)
	}
	return out, nil
}

func (r *CompanyRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// TxRunner ejecuta fn contra el mismo CompanyRepo; si fn falla restaura el
// contenido previo a la llamada. Las llamadas no se aíslan entre sí.
type TxRunner struct {
	Companies *CompanyRepo
}

// RunInTx ver postgres.TxRunner.RunInTx.
func (t *TxRunner) RunInTx(ctx context.Context, fn func(companies repository.CompanyRepository) error) error {
	t.Companies.mu.RLock()
	items := make(map[string]entity.Company, len(t.Companies.items))
	for id, c := range t.Companies.items {
		items[id] = clone(c)
	}
	order := append([]string(nil), t.Companies.order...)
	t.Companies.mu.RUnlock()

	if err := fn(t.Companies); err != nil {
		t.Companies.mu.Lock()
		t.Companies.items = items
		t.Companies.order = order
		t.Companies.mu.Unlock()
		return err
	}
	return nil
}

func clone(c entity.Company) entity.Company {
	if c.RawData != nil {
		raw := make(map[string]string, len(c.RawData))
		for k, v := range c.RawData {
			raw[k] = v
		}
		c.RawData = raw
	}
	if c.WebsiteValidation != nil {
		v := *c.WebsiteValidation
		c.WebsiteValidation = &v
	}
	if c.SearchedData != nil {
		d := *c.SearchedData
		if d.Passed != nil {
			p := *d.Passed
			d.Passed = &p
		}
		d.Sources = append([]string(nil), d.Sources...)
		c.SearchedData = &d
	}
	return c
}
