package dataset

import (
	"context"

	"github.com/jhoicas/benchmark-hub/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando el repo de
// empresas atado a esa tx. Si fn devuelve error no queda ningún cambio aplicado.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(companies repository.CompanyRepository) error) error
}
