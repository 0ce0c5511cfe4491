package repository

import (
	"time"

	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
)

// EventFilter acota un listado de eventos. Los campos en cero no filtran.
type EventFilter struct {
	Code   string
	JobID  string
	Types  []string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// MovementEventRepository define el puerto de persistencia para el libro de
// movimientos (DIP). El libro es append-only: no hay Update ni Delete por ID;
// la única eliminación permitida es el barrido administrativo por tipo.
type MovementEventRepository interface {
	Create(event *entity.MovementEvent) error
	GetByID(id string) (*entity.MovementEvent, error)
	ListByCompany(companyID string, filter EventFilter) ([]*entity.MovementEvent, error)
	ListByCode(companyID, code string) ([]*entity.MovementEvent, error)
	CountByCompany(companyID string, filter EventFilter) (int64, error)
	DeleteByType(companyID, movementType string) (int64, error)
}
