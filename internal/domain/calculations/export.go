package calculations

import (
	"fmt"
	"io"
	"math"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"pk-dosing-form/internal/domain/pk"
)

type sampleRow struct {
	Time          float64 `csv:"time_h"`
	Concentration float64 `csv:"concentration"`
}

// WriteSamplesCSV escribe las muestras parseadas como time_h,concentration.
func WriteSamplesCSV(w io.Writer, samples []pk.Sample) error {
	rows := make([]*sampleRow, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, &sampleRow{Time: s.Time, Concentration: s.Concentration})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("marshal samples csv: %w", err)
	}
	return nil
}

const (
	chartWidth  = 6 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// WriteCurvePNG dibuja la curva concentración-tiempo y, si hubo ajuste
// terminal, la recta log-lineal extrapolada desde el último punto.
func WriteCurvePNG(w io.Writer, res pk.Result) error {
	p := plot.New()
	p.Title.Text = "Concentration-time curve"
	p.X.Label.Text = "Time (h)"
	p.Y.Label.Text = "Concentration"
	p.Y.Min = 0

	if len(res.Samples) > 0 {
		observed := make(plotter.XYs, len(res.Samples))
		for i, s := range res.Samples {
			observed[i].X = s.Time
			observed[i].Y = s.Concentration
		}

		lines := []interface{}{"Observed", observed}
		if fit := terminalProjection(res); len(fit) > 0 {
			lines = append(lines, "Terminal elimination", fit)
		}
		if err := plotutil.AddLinePoints(p, lines...); err != nil {
			return fmt.Errorf("plot samples: %w", err)
		}
	}

	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

// terminalProjection proyecta C(t) = Clast * exp(-k (t - tlast)) durante
// dos vidas medias a partir de la última muestra.
func terminalProjection(res pk.Result) plotter.XYs {
	if res.Rates.Source != pk.RateSourceTerminalSlope || res.Rates.Selected == nil || res.HalfLife == nil {
		return nil
	}
	last := res.Samples[len(res.Samples)-1]
	if last.Concentration <= 0 {
		return nil
	}

	const steps = 8
	k := *res.Rates.Selected
	span := 2 * *res.HalfLife
	if math.IsInf(span, 0) || math.IsNaN(span) {
		return nil
	}
	out := make(plotter.XYs, 0, steps+1)
	for i := 0; i <= steps; i++ {
		dt := span * float64(i) / steps
		out = append(out, plotter.XY{
			X: last.Time + dt,
			Y: last.Concentration * math.Exp(-k*dt),
		})
	}
	return out
}
