package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
)

// recordingQuerier guarda el SQL recibido; no hay BD detrás.
type recordingQuerier struct {
	sql  []string
	args [][]any
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.sql = append(q.sql, sql)
	q.args = append(q.args, args)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (q *recordingQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sql = append(q.sql, sql)
	q.args = append(q.args, args)
	return nil, errors.New("sin BD")
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.sql = append(q.sql, sql)
	q.args = append(q.args, args)
	return noRow{}
}

type noRow struct{}

func (noRow) Scan(...any) error { return pgx.ErrNoRows }

func TestBenchmarkRepo_CreadorBorradoSeLeeVacio(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewBenchmarkRepository(q)

	b, err := repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000001")
	require.NoError(t, err)
	assert.Nil(t, b)
	require.Len(t, q.sql, 1)
	assert.Contains(t, q.sql[0], "COALESCE(created_by::text, '')")
}

func TestBenchmarkRepo_CreateSinCreadorGuardaNull(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewBenchmarkRepository(q)
	now := time.Now()

	err := repo.Create(context.Background(), &entity.Benchmark{
		ID: "00000000-0000-0000-0000-000000000002", ClientID: "00000000-0000-0000-0000-000000000003",
		Name: "Q3", Status: entity.BenchmarkDraft, TargetScore: decimal.Zero, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	require.Len(t, q.sql, 1)
	assert.Contains(t, q.sql[0], "NULLIF($8, '')::uuid")
	assert.Equal(t, "", q.args[0][7])
}
