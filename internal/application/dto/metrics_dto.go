package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SlowMoverDTO ítem con poca rotación en la ventana.
type SlowMoverDTO struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Moves     int             `json:"moves"`
	Available decimal.Decimal `json:"available"`
}

// MetricsResponse tablero de KPIs operativos. Las razones con denominador
// potencialmente cero son punteros: null en JSON significa "sin datos para
// medir", nunca un cero fabricado.
type MetricsResponse struct {
	WindowDays int       `json:"window_days"`
	AsOf       time.Time `json:"as_of"`

	Accuracy         *decimal.Decimal `json:"accuracy"`
	DiscrepancyValue decimal.Decimal  `json:"discrepancy_value"`
	AdjustmentRate   *decimal.Decimal `json:"adjustment_rate"`

	InventoryValue decimal.Decimal  `json:"inventory_value"`
	ValueTrend7d   *decimal.Decimal `json:"value_trend_7d"`

	Turnover   *decimal.Decimal `json:"turnover"`
	DaysOnHand *decimal.Decimal `json:"days_on_hand"`

	FillRate   *decimal.Decimal `json:"fill_rate"`
	OnTimeRate *decimal.Decimal `json:"on_time_rate"`

	SlowMovers      []SlowMoverDTO   `json:"slow_movers"`
	Concentration80 *decimal.Decimal `json:"concentration_80"`
}
