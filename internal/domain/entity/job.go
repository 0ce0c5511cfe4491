package entity

import (
	"strings"
	"time"
)

// Estados de una obra/trabajo.
const (
	JobStatusOpen   = "open"
	JobStatusActive = "active"
	JobStatusPaused = "paused"
	JobStatusClosed = "closed"
)

// closedJobStatuses familia de estados "cerrados": las asignaciones de una
// obra cerrada dejan de contar como activas en la agregación por obra.
var closedJobStatuses = map[string]struct{}{
	"closed":     {},
	"finalizada": {},
	"cancelled":  {},
	"done":       {},
	"completed":  {},
}

// IsClosedJobStatus indica si el estado pertenece a la familia cerrada.
// Un estado desconocido se trata como abierto.
func IsClosedJobStatus(status string) bool {
	_, ok := closedJobStatuses[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// Job representa una obra o trabajo al que se asigna stock.
// Registro de referencia mutable, independiente del historial de eventos.
type Job struct {
	ID        string
	CompanyID string
	Code      string // único por empresa
	Name      string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Closed indica si la obra está en un estado de la familia cerrada.
func (j *Job) Closed() bool {
	return IsClosedJobStatus(j.Status)
}
