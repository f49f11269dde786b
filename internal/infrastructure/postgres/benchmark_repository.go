package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/benchmark-hub/internal/domain"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
	"github.com/jhoicas/benchmark-hub/internal/domain/repository"
)

var _ repository.BenchmarkRepository = (*BenchmarkRepo)(nil)

const benchmarkInsertColumns = `id, client_id, name, description, model_name, status, target_score, created_by, created_at, updated_at`

// created_by queda NULL al borrarse el usuario (ON DELETE SET NULL); se lee como "".
const benchmarkColumns = `id, client_id, name, description, model_name, status, target_score, COALESCE(created_by::text, ''), created_at, updated_at`

// BenchmarkRepo implementación del puerto BenchmarkRepository sobre PostgreSQL.
type BenchmarkRepo struct {
	db Querier
}

// NewBenchmarkRepository construye el adaptador de persistencia para benchmarks.
func NewBenchmarkRepository(db Querier) *BenchmarkRepo {
	return &BenchmarkRepo{db: db}
}

// Create persiste un nuevo benchmark. Cliente inexistente -> domain.ErrInvalidInput.
func (r *BenchmarkRepo) Create(ctx context.Context, b *entity.Benchmark) error {
	query := `INSERT INTO benchmarks (` + benchmarkInsertColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, '')::uuid, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		b.ID, b.ClientID, b.Name, b.Description, b.ModelName, b.Status, b.TargetScore,
		b.CreatedBy, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert benchmark: %w", err)
	}
	return nil
}

// GetByID obtiene un benchmark por ID.
func (r *BenchmarkRepo) GetByID(ctx context.Context, id string) (*entity.Benchmark, error) {
	var b entity.Benchmark
	err := r.db.QueryRow(ctx, `SELECT `+benchmarkColumns+` FROM benchmarks WHERE id = $1`, id).Scan(
		&b.ID, &b.ClientID, &b.Name, &b.Description, &b.ModelName, &b.Status, &b.TargetScore,
		&b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get benchmark: %w", err)
	}
	return &b, nil
}

// Update actualiza un benchmark existente.
func (r *BenchmarkRepo) Update(ctx context.Context, b *entity.Benchmark) error {
	query := `
		UPDATE benchmarks SET client_id = $2, name = $3, description = $4, model_name = $5,
			status = $6, target_score = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query,
		b.ID, b.ClientID, b.Name, b.Description, b.ModelName, b.Status, b.TargetScore, b.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update benchmark: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra por cliente y estado (opcionales) y devuelve el total sin paginar.
func (r *BenchmarkRepo) List(ctx context.Context, f repository.BenchmarkFilter) ([]*entity.Benchmark, int, error) {
	var (
		where []string
		args  []any
	)
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		where = append(where, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM benchmarks`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count benchmarks: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM benchmarks%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		benchmarkColumns, clause, len(args)-1, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list benchmarks: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Benchmark, 0)
	for rows.Next() {
		var b entity.Benchmark
		if err := rows.Scan(&b.ID, &b.ClientID, &b.Name, &b.Description, &b.ModelName, &b.Status,
			&b.TargetScore, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan benchmark: %w", err)
		}
		list = append(list, &b)
	}
	return list, total, rows.Err()
}

// Delete elimina el benchmark y, por cascada, su dataset.
func (r *BenchmarkRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM benchmarks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete benchmark: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByClient cuenta benchmarks del cliente.
func (r *BenchmarkRepo) CountByClient(ctx context.Context, clientID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM benchmarks WHERE client_id = $1`, clientID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count benchmarks by client: %w", err)
	}
	return n, nil
}
