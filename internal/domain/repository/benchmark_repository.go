package repository

import (
	"context"

	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
)

// BenchmarkFilter filtros opcionales del listado de benchmarks (vacío = sin filtro).
type BenchmarkFilter struct {
	ClientID string
	Status   string
	Limit    int
	Offset   int
}

// BenchmarkRepository define el puerto de persistencia para Benchmark (DIP).
type BenchmarkRepository interface {
	Create(ctx context.Context, benchmark *entity.Benchmark) error
	GetByID(ctx context.Context, id string) (*entity.Benchmark, error)
	Update(ctx context.Context, benchmark *entity.Benchmark) error
	List(ctx context.Context, filter BenchmarkFilter) ([]*entity.Benchmark, int, error)
	Delete(ctx context.Context, id string) error
	// CountByClient cuántos benchmarks tiene un cliente (para bloquear su borrado).
	CountByClient(ctx context.Context, clientID string) (int, error)
}
