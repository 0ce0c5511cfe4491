package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
)

// Etiquetas por defecto cuando un evento referencia un ítem u obra eliminados.
const (
	UnknownItemName = "Desconocido"
	GeneralJobName  = "General"
)

// Snapshot es el contexto inmutable de una corrida de reconciliación:
// catálogo de ítems y estado de obras congelados al momento de la consulta.
// Se construye una vez por request y se pasa explícitamente; las funciones
// del paquete no guardan estado entre llamadas.
type Snapshot struct {
	Now         time.Time
	itemsByCode map[string]*entity.Item
	closedJobs  map[string]struct{}
}

// NewSnapshot congela catálogo y obras. items y jobs pueden ser nil.
func NewSnapshot(now time.Time, items []*entity.Item, jobs []*entity.Job) *Snapshot {
	s := &Snapshot{
		Now:         now,
		itemsByCode: make(map[string]*entity.Item, len(items)),
		closedJobs:  make(map[string]struct{}),
	}
	for _, it := range items {
		if it != nil && it.Code != "" {
			s.itemsByCode[it.Code] = it
		}
	}
	for _, j := range jobs {
		if j == nil {
			continue
		}
		if code := NormalizeJobID(j.Code); code != "" && j.Closed() {
			s.closedJobs[code] = struct{}{}
		}
	}
	return s
}

// Item devuelve el ítem del catálogo o nil si fue eliminado.
func (s *Snapshot) Item(code string) *entity.Item {
	return s.itemsByCode[code]
}

// ItemName resuelve el nombre del ítem; "Desconocido" si no existe.
func (s *Snapshot) ItemName(code string) string {
	if it := s.itemsByCode[code]; it != nil {
		return it.Name
	}
	return UnknownItemName
}

// UnitPrice devuelve el costo unitario del ítem; cero si no existe.
func (s *Snapshot) UnitPrice(code string) decimal.Decimal {
	if it := s.itemsByCode[code]; it != nil {
		return it.UnitPrice
	}
	return decimal.Zero
}

// JobClosed indica si la obra (ya normalizada) pertenece a la familia cerrada.
// Una obra ausente del catálogo se trata como abierta.
func (s *Snapshot) JobClosed(jobID string) bool {
	_, ok := s.closedJobs[jobID]
	return ok
}
