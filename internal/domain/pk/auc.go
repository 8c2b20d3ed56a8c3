package pk

// TrapezoidAUC integra la curva con la regla del trapecio lineal.
// No reordena: deltas de tiempo negativos suman áreas negativas.
func TrapezoidAUC(samples []Sample) float64 {
	var auc float64
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		auc += (cur.Concentration + prev.Concentration) / 2 * (cur.Time - prev.Time)
	}
	return auc
}
