package pk

import (
	"encoding/json"
	"math"
)

// resultJSON es la forma serializada de Result: cada magnitud puede ser null.
type resultJSON struct {
	Samples []Sample     `json:"samples"`
	AUC     *float64     `json:"auc"`
	Rates   RateEstimate `json:"rates"`

	HalfLife        *float64 `json:"half_life"`
	AUCInf          *float64 `json:"auc_inf"`
	Cmax            *float64 `json:"cmax"`
	Tmax            *float64 `json:"tmax"`
	LoadingDose     *float64 `json:"loading_dose"`
	MaintenanceRate *float64 `json:"maintenance_rate"`
	MaintenanceDose *float64 `json:"maintenance_dose"`
}

// MarshalJSON escribe null donde el cálculo desbordó (NaN, ±Inf), ya que
// encoding/json no los acepta. Al decodificar, null deja el valor en cero.
func (r Result) MarshalJSON() ([]byte, error) {
	rates := r.Rates
	rates.FromHalfLife = finitePtr(rates.FromHalfLife)
	rates.FromClearance = finitePtr(rates.FromClearance)
	rates.FromTerminalSlope = finitePtr(rates.FromTerminalSlope)
	rates.Selected = finitePtr(rates.Selected)
	rates.TerminalRSquared = finitePtr(rates.TerminalRSquared)

	return json.Marshal(resultJSON{
		Samples: r.Samples,
		AUC:     finite(r.AUC),
		Rates:   rates,

		HalfLife:        finitePtr(r.HalfLife),
		AUCInf:          finitePtr(r.AUCInf),
		Cmax:            finite(r.Cmax),
		Tmax:            finite(r.Tmax),
		LoadingDose:     finite(r.LoadingDose),
		MaintenanceRate: finite(r.MaintenanceRate),
		MaintenanceDose: finite(r.MaintenanceDose),
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func finitePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return finite(*v)
}
