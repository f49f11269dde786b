// Package memory implementa los puertos de repository en memoria. Lo usan los
// tests de casos de uso y handlers en lugar de PostgreSQL.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/benchmark-hub/internal/domain"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
	"github.com/jhoicas/benchmark-hub/internal/domain/repository"
)

var (
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.ClientRepository    = (*ClientRepo)(nil)
	_ repository.BenchmarkRepository = (*BenchmarkRepo)(nil)
	_ repository.CompanyRepository   = (*CompanyRepo)(nil)
)

// ──────────────────────────────────────────────────────────────────────────────
// Users
// ──────────────────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria.
type UserRepo struct {
	mu    sync.RWMutex
	items map[string]entity.User
	order []string
}

// NewUserRepo repo vacío.
func NewUserRepo() *UserRepo {
	return &UserRepo{items: make(map[string]entity.User)}
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.items[u.ID] = *u
	r.order = append(r.order, u.ID)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.items {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[u.ID] = *u
	return nil
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0)
	for _, id := range page(r.order, limit, offset) {
		u := r.items[id]
		out = append(out, &u)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Clients
// ──────────────────────────────────────────────────────────────────────────────

// ClientRepo clientes en memoria.
type ClientRepo struct {
	mu    sync.RWMutex
	items map[string]entity.Client
}

// NewClientRepo repo vacío.
func NewClientRepo() *ClientRepo {
	return &ClientRepo{items: make(map[string]entity.Client)}
}

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if strings.EqualFold(existing.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	r.items[c.ID] = *c
	return nil
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ClientRepo) GetByName(_ context.Context, name string) (*entity.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if strings.EqualFold(c.Name, name) {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[c.ID] = *c
	return nil
}

func (r *ClientRepo) List(_ context.Context, limit, offset int) ([]*entity.Client, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return r.items[ids[i]].Name < r.items[ids[j]].Name })
	out := make([]*entity.Client, 0)
	for _, id := range page(ids, limit, offset) {
		c := r.items[id]
		out = append(out, &c)
	}
	return out, len(ids), nil
}

func (r *ClientRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Benchmarks
// ──────────────────────────────────────────────────────────────────────────────

// BenchmarkRepo benchmarks en memoria.
type BenchmarkRepo struct {
	mu    sync.RWMutex
	items map[string]entity.Benchmark
	order []string
}

// NewBenchmarkRepo repo vacío.
func NewBenchmarkRepo() *BenchmarkRepo {
	return &BenchmarkRepo{items: make(map[string]entity.Benchmark)}
}

func (r *BenchmarkRepo) Create(_ context.Context, b *entity.Benchmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[b.ID] = *b
	r.order = append(r.order, b.ID)
	return nil
}

func (r *BenchmarkRepo) GetByID(_ context.Context, id string) (*entity.Benchmark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *BenchmarkRepo) Update(_ context.Context, b *entity.Benchmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[b.ID] = *b
	return nil
}

func (r *BenchmarkRepo) List(_ context.Context, f repository.BenchmarkFilter) ([]*entity.Benchmark, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0)
	for _, id := range r.order {
		b, ok := r.items[id]
		if !ok {
			continue
		}
		if f.ClientID != "" && b.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		ids = append(ids, id)
	}
	out := make([]*entity.Benchmark, 0)
	for _, id := range page(ids, f.Limit, f.Offset) {
		b := r.items[id]
		out = append(out, &b)
	}
	return out, len(ids), nil
}

func (r *BenchmarkRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *BenchmarkRepo) CountByClient(_ context.Context, clientID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, b := range r.items {
		if b.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

func page(ids []string, limit, offset int) []string {
	if offset >= len(ids) {
		return nil
	}
	end := len(ids)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return ids[offset:end]
}
