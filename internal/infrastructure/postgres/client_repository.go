package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/benchmark-hub/internal/domain"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
	"github.com/jhoicas/benchmark-hub/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, name, contact_name, contact_email, website, notes, created_at, updated_at`

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	db Querier
}

// NewClientRepository construye el adaptador de persistencia para clientes.
func NewClientRepository(db Querier) *ClientRepo {
	return &ClientRepo{db: db}
}

// Create persiste un nuevo cliente. Nombre repetido -> domain.ErrDuplicate.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.ContactName, c.ContactEmail, c.Website, c.Notes, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.findOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
}

// GetByName búsqueda exacta, sin distinguir mayúsculas.
func (r *ClientRepo) GetByName(ctx context.Context, name string) (*entity.Client, error) {
	return r.findOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE lower(name) = lower($1)`, name)
}

func (r *ClientRepo) findOne(ctx context.Context, query, arg string) (*entity.Client, error) {
	var c entity.Client
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.ContactName, &c.ContactEmail, &c.Website, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// Update actualiza un cliente existente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, contact_name = $3, contact_email = $4, website = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, c.ID, c.Name, c.ContactName, c.ContactEmail, c.Website, c.Notes, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve clientes por nombre con paginación y el total.
func (r *ClientRepo) List(ctx context.Context, limit, offset int) ([]*entity.Client, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM clients`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Client, 0)
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.ContactName, &c.ContactEmail, &c.Website, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

// Delete elimina un cliente por ID.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
