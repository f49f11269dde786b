package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/benchmark-hub/internal/domain"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
	"github.com/jhoicas/benchmark-hub/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, benchmark_id, name, website, description, country, raw_data,
	website_validation, searched_data, created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
// raw_data, website_validation y searched_data son columnas jsonb.
type CompanyRepo struct {
	db Querier
}

// NewCompanyRepository construye el adaptador de persistencia para el dataset de empresas.
func NewCompanyRepository(db Querier) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// Create persiste una nueva empresa. Nombre repetido dentro del benchmark -> domain.ErrDuplicate.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	raw, validation, searched, err := encodeCompanyJSON(c)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.db.Exec(ctx, query,
		c.ID, c.BenchmarkID, c.Name, c.Website, c.Description, c.Country,
		raw, validation, searched, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetByBenchmarkAndName busca por nombre dentro del benchmark (sin distinguir mayúsculas).
func (r *CompanyRepo) GetByBenchmarkAndName(ctx context.Context, benchmarkID, name string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE benchmark_id = $1 AND lower(name) = lower($2)`
	c, err := scanCompany(r.db.QueryRow(ctx, query, benchmarkID, name))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by name: %w", err)
	}
	return c, nil
}

// Update actualiza los datos de entrada de la empresa (no toca el estado de support services).
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	raw, err := marshalNullable(c.RawData, c.RawData == nil)
	if err != nil {
		return err
	}
	query := `
		UPDATE companies SET name = $2, website = $3, description = $4, country = $5, raw_data = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Website, c.Description, c.Country, raw, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateWebsiteValidation reemplaza el resultado de validación del sitio.
func (r *CompanyRepo) UpdateWebsiteValidation(ctx context.Context, id string, v *entity.WebsiteValidation) error {
	payload, err := marshalNullable(v, v == nil)
	if err != nil {
		return err
	}
	return r.updateJSON(ctx, "website_validation", id, payload)
}

// UpdateSearchedData reemplaza el resultado de la búsqueda web.
func (r *CompanyRepo) UpdateSearchedData(ctx context.Context, id string, d *entity.SearchedCompanyData) error {
	payload, err := marshalNullable(d, d == nil)
	if err != nil {
		return err
	}
	return r.updateJSON(ctx, "searched_data", id, payload)
}

// column viene de las constantes de arriba, nunca del request.
func (r *CompanyRepo) updateJSON(ctx context.Context, column, id string, payload []byte) error {
	query := fmt.Sprintf(`UPDATE companies SET %s = $2, updated_at = now() WHERE id = $1`, column)
	cmd, err := r.db.Exec(ctx, query, id, payload)
	if err != nil {
		return fmt.Errorf("update company %s: %w", column, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByBenchmark devuelve todas las empresas del benchmark en orden de carga.
func (r *CompanyRepo) ListByBenchmark(ctx context.Context, benchmarkID string) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE benchmark_id = $1 ORDER BY created_at, name`
	rows, err := r.db.Query(ctx, query, benchmarkID)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete elimina una empresa por ID.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (*entity.Company, error) {
	var (
		c                         entity.Company
		raw, validation, searched []byte
	)
	if err := row.Scan(&c.ID, &c.BenchmarkID, &c.Name, &c.Website, &c.Description, &c.Country,
		&raw, &validation, &searched, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &c.RawData); err != nil {
			return nil, fmt.Errorf("decode raw_data: %w", err)
		}
	}
	if len(validation) > 0 {
		c.WebsiteValidation = &entity.WebsiteValidation{}
		if err := json.Unmarshal(validation, c.WebsiteValidation); err != nil {
			return nil, fmt.Errorf("decode website_validation: %w", err)
		}
	}
	if len(searched) > 0 {
		c.SearchedData = &entity.SearchedCompanyData{}
		if err := json.Unmarshal(searched, c.SearchedData); err != nil {
			return nil, fmt.Errorf("decode searched_data: %w", err)
		}
	}
	return &c, nil
}

func encodeCompanyJSON(c *entity.Company) (raw, validation, searched []byte, err error) {
	if raw, err = marshalNullable(c.RawData, c.RawData == nil); err != nil {
		return nil, nil, nil, err
	}
	if validation, err = marshalNullable(c.WebsiteValidation, c.WebsiteValidation == nil); err != nil {
		return nil, nil, nil, err
	}
	if searched, err = marshalNullable(c.SearchedData, c.SearchedData == nil); err != nil {
		return nil, nil, nil, err
	}
	return raw, validation, searched, nil
}

// marshalNullable nil -> NULL en la columna jsonb.
func marshalNullable(v any, isNil bool) ([]byte, error) {
	if isNil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode jsonb: %w", err)
	}
	return b, nil
}
