// Package ledger implementa la reconciliación pura del libro de inventario:
// plegado de eventos a saldos por ítem/obra, detección de vencidos, cruce de
// órdenes contra recepciones y el motor de KPIs operativos.
//
// Todas las funciones son totales y deterministas sobre un snapshot en
// memoria: nunca retornan error ni mutan estado; datos malformados degradan
// a cero/vacío en lugar de fallar.
package ledger

import (
	"strconv"
	"strings"
	"time"
)

// jobSentinels valores de job_id que significan "sin obra" (pool general).
var jobSentinels = map[string]struct{}{
	"":                  {},
	"general":           {},
	"general inventory": {},
	"none":              {},
	"unassigned":        {},
}

// NormalizeJobID colapsa los valores centinela de "sin obra" a cadena vacía.
// Es el único punto de normalización de obra de todo el sistema.
func NormalizeJobID(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if _, ok := jobSentinels[strings.ToLower(trimmed)]; ok {
		return ""
	}
	return trimmed
}

// Formatos de fecha aceptados en ingesta, en orden de preferencia.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseWhen interpreta un timestamp de entrada: epoch en milisegundos o una
// fecha parseable. Un valor no parseable se trata como ausente (ok=false),
// nunca como "ahora".
func ParseWhen(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if millis, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(millis).UTC(), true
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
