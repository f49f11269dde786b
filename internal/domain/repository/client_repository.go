package repository

import (
	"context"

	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client (DIP).
// La implementación vive en infrastructure.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByName(ctx context.Context, name string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	List(ctx context.Context, limit, offset int) ([]*entity.Client, int, error)
	Delete(ctx context.Context, id string) error
}
