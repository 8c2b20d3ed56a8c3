package pk

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Ln2 es la aproximación de ln(2) que usan las fórmulas de la calculadora.
// Se mantiene en 0.693 (no math.Ln2) para que los resultados coincidan con
// los valores de referencia.
const Ln2 = 0.693

// TerminalWindow es la cantidad máxima de puntos de la fase terminal.
const TerminalWindow = 4

// EstimateRate calcula los tres candidatos de k y elige uno por prioridad:
// pendiente terminal, luego Cl/Vd, luego vida media.
func EstimateRate(samples []Sample, p Params) RateEstimate {
	var est RateEstimate

	if provided(p.HalfLife) {
		est.FromHalfLife = ptr(Ln2 / p.HalfLife)
	}
	if provided(p.Cl) && provided(p.Vd) {
		est.FromClearance = ptr(p.Cl / p.Vd)
	}

	fit := fitTerminalSlope(samples)
	est.FromTerminalSlope = fit.k
	est.TerminalPoints = fit.points
	est.TerminalRSquared = fit.rSquared

	switch {
	case est.FromTerminalSlope != nil:
		est.Selected, est.Source = est.FromTerminalSlope, RateSourceTerminalSlope
	case est.FromClearance != nil:
		est.Selected, est.Source = est.FromClearance, RateSourceClearance
	case est.FromHalfLife != nil:
		est.Selected, est.Source = est.FromHalfLife, RateSourceHalfLife
	}
	return est
}

type terminalFit struct {
	k        *float64
	points   int
	rSquared *float64
}

// fitTerminalSlope ajusta ln(c) vs t por mínimos cuadrados sobre los últimos
// (hasta 4) puntos con concentración positiva.
func fitTerminalSlope(samples []Sample) terminalFit {
	positive := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if s.Concentration > 0 {
			positive = append(positive, s)
		}
	}
	if len(positive) < 2 {
		return terminalFit{}
	}

	window := positive
	if len(window) > TerminalWindow {
		window = window[len(window)-TerminalWindow:]
	}

	xs := make([]float64, len(window))
	ys := make([]float64, len(window))
	for i, s := range window {
		xs[i] = s.Time
		ys[i] = math.Log(s.Concentration)
	}

	// Denominador (varianza de t) nulo: todos los tiempos iguales.
	if allEqual(xs) {
		return terminalFit{}
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)
	k := -slope
	if math.IsNaN(k) || k <= 0 {
		return terminalFit{}
	}

	fit := terminalFit{k: ptr(k), points: len(window)}
	if r, err := stats.Correlation(xs, ys); err == nil && !math.IsNaN(r) {
		fit.rSquared = ptr(r * r)
	}
	return fit
}

func allEqual(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

func ptr(v float64) *float64 { return &v }

// provided: 0 y NaN cuentan como parámetro no ingresado.
func provided(v float64) bool {
	return v != 0 && !math.IsNaN(v)
}
