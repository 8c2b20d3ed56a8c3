package pk

// Route define la vía de administración.
// @Enum oral, iv_bolus
type Route string

const (
	RouteOral    Route = "oral"
	RouteIVBolus Route = "iv_bolus"
)

// Valid acepta vacío (se trata como oral).
func (r Route) Valid() bool {
	switch r {
	case "", RouteOral, RouteIVBolus:
		return true
	default:
		return false
	}
}

// Sample es una medición de concentración (mass/volume) a un tiempo (h).
type Sample struct {
	Time          float64 `json:"time"`
	Concentration float64 `json:"concentration"`
}

// Params son los parámetros del paciente/fármaco tal como los ingresa el usuario.
// No hay validación cruzada entre campos.
type Params struct {
	Dose      float64 `json:"dose"`
	Route     Route   `json:"route"`
	F         float64 `json:"f"`
	Vd        float64 `json:"vd"`
	Cl        float64 `json:"cl"`
	HalfLife  float64 `json:"t_half"`
	Ka        float64 `json:"ka"` // se conserva, no se usa en los cálculos
	Tau       float64 `json:"tau"`
	CssTarget float64 `json:"css_target"`
}

// Input es el registro de entrada del motor.
type Input struct {
	Params
	Points string `json:"points"`
}

// RateSource indica qué candidato de k fue elegido.
type RateSource string

const (
	RateSourceNone          RateSource = ""
	RateSourceTerminalSlope RateSource = "terminal_slope"
	RateSourceClearance     RateSource = "clearance"
	RateSourceHalfLife      RateSource = "half_life"
)

// RateEstimate agrupa los candidatos de constante de eliminación.
// nil = no definido.
type RateEstimate struct {
	FromHalfLife      *float64   `json:"from_half_life"`
	FromClearance     *float64   `json:"from_clearance"`
	FromTerminalSlope *float64   `json:"from_terminal_slope"`
	Selected          *float64   `json:"selected"`
	Source            RateSource `json:"source"`

	// Ventana usada en la regresión terminal (0 si no hubo ajuste).
	TerminalPoints   int      `json:"terminal_points"`
	TerminalRSquared *float64 `json:"terminal_r_squared"`
}

// Doses son las cantidades derivadas de k y los parámetros.
type Doses struct {
	HalfLife        *float64 `json:"half_life"`
	AUCInf          *float64 `json:"auc_inf"`
	Cmax            float64  `json:"cmax"`
	Tmax            float64  `json:"tmax"`
	LoadingDose     float64  `json:"loading_dose"`
	MaintenanceRate float64  `json:"maintenance_rate"`
	MaintenanceDose float64  `json:"maintenance_dose"`
}

// Result es la foto inmutable de un cálculo.
type Result struct {
	Samples []Sample     `json:"samples"`
	AUC     float64      `json:"auc"`
	Rates   RateEstimate `json:"rates"`
	Doses
}
