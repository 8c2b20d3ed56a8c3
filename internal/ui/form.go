package ui

import (
	"math"
	"strconv"
	"strings"

	"pk-dosing-form/internal/domain/pk"
)

// formState guarda los campos tal como los escribió el usuario, para volver
// a pintarlos después del submit.
type formState struct {
	Route     string
	Dose      string
	F         string
	Vd        string
	Cl        string
	HalfLife  string
	Ka        string
	Tau       string
	CssTarget string
	Points    string
}

func defaultFormState() formState {
	in := pk.DefaultInput()
	return formState{
		Route:     string(in.Route),
		Dose:      formatField(in.Dose),
		F:         formatField(in.F),
		Vd:        formatField(in.Vd),
		Cl:        formatField(in.Cl),
		HalfLife:  formatField(in.HalfLife),
		Ka:        formatField(in.Ka),
		Tau:       formatField(in.Tau),
		CssTarget: formatField(in.CssTarget),
		Points:    in.Points,
	}
}

// formStateFrom lee los campos del form. get suele ser r.PostForm.Get.
func formStateFrom(get func(string) string) formState {
	return formState{
		Route:     strings.TrimSpace(get("route")),
		Dose:      get("dose"),
		F:         get("f"),
		Vd:        get("vd"),
		Cl:        get("cl"),
		HalfLife:  get("t_half"),
		Ka:        get("ka"),
		Tau:       get("tau"),
		CssTarget: get("css_target"),
		Points:    get("points"),
	}
}

// toInput convierte el form en pk.Input. Un campo vacío, no numérico o no
// finito (NaN, Inf) vale 0: el motor ya trata 0 como "no definido".
func (f formState) toInput() pk.Input {
	return pk.Input{
		Params: pk.Params{
			Dose:      parseField(f.Dose),
			Route:     pk.Route(f.Route),
			F:         parseField(f.F),
			Vd:        parseField(f.Vd),
			Cl:        parseField(f.Cl),
			HalfLife:  parseField(f.HalfLife),
			Ka:        parseField(f.Ka),
			Tau:       parseField(f.Tau),
			CssTarget: parseField(f.CssTarget),
		},
		Points: f.Points,
	}
}

func parseField(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func formatField(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
