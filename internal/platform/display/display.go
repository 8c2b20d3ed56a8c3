// Package display formatea los resultados con precisión fija para la UI,
// la API y el CLI.
package display

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"pk-dosing-form/internal/domain/pk"
)

// Placeholder se muestra cuando un valor no está definido.
const Placeholder = "-"

// Precisiones por tipo de magnitud.
const (
	RatePlaces     = 4
	QuantityPlaces = 2 // vida media, AUC, Cmax, Tmax
	DosePlaces     = 1
)

// Fixed redondea (half away from zero) a places decimales sobre el valor
// binario exacto del float: 2.675 (= 2.67499999...) queda en "2.67".
func Fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	exact := new(big.Rat).SetFloat64(v)
	num := decimal.NewFromBigInt(exact.Num(), 0)
	den := decimal.NewFromBigInt(exact.Denom(), 0)
	return num.DivRound(den, places).StringFixed(places)
}

// Optional es Fixed para valores opcionales: nil -> Placeholder.
func Optional(v *float64, places int32) string {
	if v == nil {
		return Placeholder
	}
	return Fixed(*v, places)
}

// Result es la vista formateada de un pk.Result.
type Result struct {
	KFromHalfLife      string `json:"k_from_half_life"`
	KFromClearance     string `json:"k_from_clearance"`
	KFromTerminalSlope string `json:"k_from_terminal_slope"`
	KSelected          string `json:"k_selected"`
	KSource            string `json:"k_source"`
	TerminalRSquared   string `json:"terminal_r_squared"`

	HalfLife string `json:"half_life"`
	AUC      string `json:"auc"`
	AUCInf   string `json:"auc_inf"`
	Cmax     string `json:"cmax"`
	Tmax     string `json:"tmax"`

	LoadingDose     string `json:"loading_dose"`
	MaintenanceRate string `json:"maintenance_rate"`
	MaintenanceDose string `json:"maintenance_dose"`
}

func FromResult(r pk.Result) Result {
	source := string(r.Rates.Source)
	if source == "" {
		source = Placeholder
	}

	return Result{
		KFromHalfLife:      Optional(r.Rates.FromHalfLife, RatePlaces),
		KFromClearance:     Optional(r.Rates.FromClearance, RatePlaces),
		KFromTerminalSlope: Optional(r.Rates.FromTerminalSlope, RatePlaces),
		KSelected:          Optional(r.Rates.Selected, RatePlaces),
		KSource:            source,
		TerminalRSquared:   Optional(r.Rates.TerminalRSquared, RatePlaces),

		HalfLife: Optional(r.HalfLife, QuantityPlaces),
		AUC:      Fixed(r.AUC, QuantityPlaces),
		AUCInf:   Optional(r.AUCInf, QuantityPlaces),
		Cmax:     Fixed(r.Cmax, QuantityPlaces),
		Tmax:     Fixed(r.Tmax, QuantityPlaces),

		LoadingDose:     Fixed(r.LoadingDose, DosePlaces),
		MaintenanceRate: Fixed(r.MaintenanceRate, DosePlaces),
		MaintenanceDose: Fixed(r.MaintenanceDose, DosePlaces),
	}
}
