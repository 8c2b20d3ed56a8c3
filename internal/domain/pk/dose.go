package pk

// CalculateDoses deriva vida media, AUC extrapolada, pico y dosis.
// Nunca falla: cada división sustituye su denominador nulo por 1 y los
// valores que dependen de k quedan en nil cuando k no está definida.
func CalculateDoses(k *float64, samples []Sample, p Params, auc float64) Doses {
	var d Doses

	if k != nil {
		d.HalfLife = ptr(Ln2 / *k)

		var last float64
		if len(samples) > 0 {
			last = samples[len(samples)-1].Concentration
		}
		d.AUCInf = ptr(auc + last / *k)
	}

	d.Cmax, d.Tmax = peak(samples)

	f := orOne(p.F)
	d.LoadingDose = p.CssTarget * p.Vd / f

	switch {
	case provided(p.Cl):
		d.MaintenanceRate = p.CssTarget * p.Cl
	case k != nil && provided(p.Vd):
		d.MaintenanceRate = p.CssTarget * *k * p.Vd
	}

	d.MaintenanceDose = d.MaintenanceRate * orOne(p.Tau) / f
	return d
}

// peak devuelve (Cmax, Tmax). Con empate gana la primera ocurrencia.
func peak(samples []Sample) (float64, float64) {
	var cmax, tmax float64
	for _, s := range samples {
		if s.Concentration > cmax {
			cmax, tmax = s.Concentration, s.Time
		}
	}
	return cmax, tmax
}

func orOne(v float64) float64 {
	if !provided(v) {
		return 1
	}
	return v
}
