package pk

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// ParsePoints convierte "t:c,t:c,..." en muestras ordenadas por tiempo.
// Si algún segmento es inválido devuelve una secuencia vacía (no error):
// las etapas siguientes toleran la lista vacía.
func ParsePoints(raw string) []Sample {
	segments := strings.Split(raw, ",")
	out := make([]Sample, 0, len(segments))

	for _, seg := range segments {
		s, ok := parseSegment(seg)
		if !ok {
			return []Sample{}
		}
		out = append(out, s)
	}

	// Orden estable: tiempos duplicados se conservan en el orden de entrada.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out
}

func parseSegment(seg string) (Sample, bool) {
	parts := strings.SplitN(seg, ":", 2)
	if len(parts) != 2 {
		return Sample{}, false
	}

	t, ok := parseNumber(parts[0])
	if !ok {
		return Sample{}, false
	}
	c, ok := parseNumber(parts[1])
	if !ok {
		return Sample{}, false
	}
	return Sample{Time: t, Concentration: c}, true
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
