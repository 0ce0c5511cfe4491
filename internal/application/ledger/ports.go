package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/FlotaStock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el
// repositorio de eventos atado a esa tx. La relectura del libro y el append
// del evento nuevo ocurren bajo la misma transacción: ningún guard valida
// contra un saldo que otro escritor pudo haber cambiado.
type TxRunner interface {
	Run(ctx context.Context, fn func(eventRepo repository.MovementEventRepository) error) error
}

// Clock abstrae time.Now para los tests del caso de uso.
type Clock func() time.Time
