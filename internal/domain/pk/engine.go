// Package pk implementa el motor farmacocinético de la calculadora:
// parser de puntos, AUC por trapecios, estimación de k y cálculo de dosis.
// Todas las funciones son puras y síncronas.
package pk

// Calculate corre el pipeline completo: parser -> AUC -> k -> dosis.
func Calculate(in Input) Result {
	samples := ParsePoints(in.Points)
	auc := TrapezoidAUC(samples)
	rates := EstimateRate(samples, in.Params)

	return Result{
		Samples: samples,
		AUC:     auc,
		Rates:   rates,
		Doses:   CalculateDoses(rates.Selected, samples, in.Params, auc),
	}
}

// DefaultPoints son las mediciones de ejemplo del formulario.
const DefaultPoints = "0:0,1:2.1,2:3.5,4:2.2,6:1.1,8:0.6"

// DefaultInput devuelve los valores iniciales del formulario.
func DefaultInput() Input {
	return Input{
		Params: Params{
			Dose:      500,
			Route:     RouteOral,
			F:         0.6,
			Vd:        40,
			Cl:        4,
			HalfLife:  8,
			Ka:        1.2,
			Tau:       12,
			CssTarget: 2,
		},
		Points: DefaultPoints,
	}
}
