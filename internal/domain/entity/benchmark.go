package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de un benchmark.
const (
	BenchmarkDraft     = "draft"
	BenchmarkActive    = "active"
	BenchmarkCompleted = "completed"
	BenchmarkArchived  = "archived"
)

// Benchmark representa un proyecto de evaluación de un modelo de IA para un cliente.
// Cada benchmark tiene su propio dataset de empresas.
type Benchmark struct {
	ID          string
	ClientID    string
	Name        string
	Description string
	ModelName   string          // modelo evaluado, ej. "gpt-4o"
	Status      string          // draft, active, completed, archived
	TargetScore decimal.Decimal // puntaje objetivo 0..100
	CreatedBy   string          // user_id del creador
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
