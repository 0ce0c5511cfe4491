package repository

import (
	"time"

	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
)

// CountSnapshotRepository define el puerto de persistencia para conteos
// físicos (DIP). Los conteos son inmutables una vez registrados.
type CountSnapshotRepository interface {
	Create(count *entity.CountSnapshot) error
	ListByCompany(companyID string, from, to *time.Time, limit, offset int) ([]*entity.CountSnapshot, error)
	ListByCode(companyID, code string, limit, offset int) ([]*entity.CountSnapshot, error)
}
