package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"pk-dosing-form/internal/router"

	"github.com/go-chi/chi/v5"
)

func TestHTTP_EndToEnd_CalculationLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Crear cálculo con los valores por defecto del formulario
	st, body := doReq(t, ts.URL, "POST", "/calculations", map[string]any{
		"route":      "oral",
		"dose":       500,
		"f":          0.6,
		"vd":         40,
		"cl":         4,
		"t_half":     8,
		"ka":         1.2,
		"tau":        12,
		"css_target": 2,
		"points":     "0:0,1:2.1,2:3.5,4:2.2,6:1.1,8:0.6",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create calculation, got %d body=%s", st, string(body))
	}

	var created struct {
		ID     string `json:"id"`
		Result struct {
			Samples []struct {
				Time          float64 `json:"time"`
				Concentration float64 `json:"concentration"`
			} `json:"samples"`
			LoadingDose     float64 `json:"loading_dose"`
			MaintenanceDose float64 `json:"maintenance_dose"`
			Rates           struct {
				Source string `json:"source"`
			} `json:"rates"`
		} `json:"result"`
		Display struct {
			LoadingDose     string `json:"loading_dose"`
			MaintenanceDose string `json:"maintenance_dose"`
			KFromHalfLife   string `json:"k_from_half_life"`
			KFromClearance  string `json:"k_from_clearance"`
		} `json:"display"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode create: %v body=%s", err, string(body))
	}
	if created.ID == "" {
		t.Fatalf("create calculation: missing id body=%s", string(body))
	}
	if len(created.Result.Samples) != 6 {
		t.Fatalf("expected 6 samples, got %d", len(created.Result.Samples))
	}
	if created.Result.Rates.Source != "terminal_slope" {
		t.Fatalf("expected terminal_slope selection, got %q", created.Result.Rates.Source)
	}
	if created.Display.LoadingDose != "133.3" || created.Display.MaintenanceDose != "160.0" {
		t.Fatalf("unexpected doses: %+v", created.Display)
	}
	if created.Display.KFromHalfLife != "0.0866" || created.Display.KFromClearance != "0.1000" {
		t.Fatalf("unexpected rate candidates: %+v", created.Display)
	}

	// 2) Obtenerlo por id
	{
		st, body := doReq(t, ts.URL, "GET", "/calculations/"+created.ID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get calculation, got %d body=%s", st, string(body))
		}
	}

	// 3) Aparece en el historial
	{
		st, body := doReq(t, ts.URL, "GET", "/calculations?limit=5", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		var items []struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 || items[0].ID != created.ID {
			t.Fatalf("unexpected history: %s", string(body))
		}
	}

	// 4) CSV
	{
		st, body := doReq(t, ts.URL, "GET", "/calculations/"+created.ID+"/samples.csv", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 csv, got %d body=%s", st, string(body))
		}
		if !strings.HasPrefix(string(body), "time_h,concentration") {
			t.Fatalf("unexpected csv: %s", string(body))
		}
	}

	// 5) PNG
	{
		st, body := doReq(t, ts.URL, "GET", "/calculations/"+created.ID+"/curve.png", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 png, got %d", st)
		}
		if !bytes.HasPrefix(body, []byte("\x89PNG")) {
			t.Fatalf("expected png signature")
		}
	}
}

func TestHTTP_CreateCalculation_MalformedPointsIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/calculations", map[string]any{
		"cl":     4,
		"vd":     40,
		"points": "abc",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	var resp struct {
		Result struct {
			Samples []any `json:"samples"`
			AUC     float64
		} `json:"result"`
		Display struct {
			KFromTerminalSlope string `json:"k_from_terminal_slope"`
			KSelected          string `json:"k_selected"`
			HalfLife           string `json:"half_life"`
		} `json:"display"`
	}
	_ = json.Unmarshal(body, &resp)
	if len(resp.Result.Samples) != 0 {
		t.Fatalf("expected no samples, got %d", len(resp.Result.Samples))
	}
	if resp.Display.KFromTerminalSlope != "-" {
		t.Fatalf("expected placeholder for terminal slope, got %q", resp.Display.KFromTerminalSlope)
	}
	if resp.Display.KSelected != "0.1000" {
		t.Fatalf("expected clearance rate to be selected, got %q", resp.Display.KSelected)
	}
}

func TestHTTP_CreateCalculation_RejectsBadRequests(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// route inválida => 400
	st, _ := doReq(t, ts.URL, "POST", "/calculations", map[string]any{
		"route":  "subcutaneous",
		"points": "0:1",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown route, got %d", st)
	}

	// json inválido => 400
	req, _ := http.NewRequest("POST", ts.URL+"/calculations", strings.NewReader("{"))
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid json, got %d", res.StatusCode)
	}
}

func TestHTTP_FormWithNaNFieldIsStoredAndReadable(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	res, err := http.PostForm(ts.URL+"/", url.Values{
		"t_half": {"NaN"},
		"cl":     {"0"},
		"vd":     {"40"},
		"points": {"abc"},
	})
	if err != nil {
		t.Fatalf("post form: %v", err)
	}
	page, _ := io.ReadAll(res.Body)
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 form, got %d", res.StatusCode)
	}

	m := regexp.MustCompile(`/calculations/([0-9a-f-]{36})/samples\.csv`).FindStringSubmatch(string(page))
	if m == nil {
		t.Fatalf("calculation id not found in page")
	}

	st, body := doReq(t, ts.URL, "GET", "/calculations/"+m[1], nil)
	if st != http.StatusOK || len(body) == 0 {
		t.Fatalf("expected 200 with body, got %d body=%q", st, string(body))
	}

	var got struct {
		Input struct {
			HalfLife float64 `json:"t_half"`
		} `json:"input"`
		Result struct {
			Rates struct {
				Selected *float64 `json:"selected"`
			} `json:"rates"`
		} `json:"result"`
		Display struct {
			KSelected string `json:"k_selected"`
		} `json:"display"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v body=%s", err, string(body))
	}
	if got.Input.HalfLife != 0 || got.Result.Rates.Selected != nil || got.Display.KSelected != "-" {
		t.Fatalf("NaN half-life should count as not provided: %s", string(body))
	}
}

func TestHTTP_UnknownCalculationIs404(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	for _, path := range []string{
		"/calculations/6f1c3b8e-5a6e-4a8e-9a53-1f0a8f1e2c11",
		"/calculations/not-a-uuid",
		"/calculations/6f1c3b8e-5a6e-4a8e-9a53-1f0a8f1e2c11/samples.csv",
		"/calculations/6f1c3b8e-5a6e-4a8e-9a53-1f0a8f1e2c11/curve.png",
	} {
		st, _ := doReq(t, ts.URL, "GET", path, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for %s, got %d", path, st)
		}
	}
}

func TestHTTP_HealthFormAndDocs(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health: %d %s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "<form") {
		t.Fatalf("expected form page, got %d", st)
	}

	st, body = doReq(t, ts.URL, "GET", "/swagger/doc.json", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 swagger doc, got %d", st)
	}
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("swagger doc is not json: %v", err)
	}
	if _, ok := doc["paths"].(map[string]any)["/calculations"]; !ok {
		t.Fatalf("swagger doc missing /calculations")
	}
}

func TestSwaggerDocCoversCalculationRoutes(t *testing.T) {
	h := router.NewRouter(router.Options{})
	ts := httptest.NewServer(h)
	defer ts.Close()

	_, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", nil)
	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("swagger doc is not json: %v", err)
	}

	routes, ok := h.(chi.Routes)
	if !ok {
		t.Fatalf("router is not a chi.Routes")
	}
	seen := 0
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if !strings.HasPrefix(route, "/calculations") {
			return nil
		}
		seen++
		path := strings.TrimSuffix(route, "/")
		if _, ok := doc.Paths[path][strings.ToLower(method)]; !ok {
			t.Errorf("swagger doc missing %s %s", method, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk routes: %v", err)
	}
	if seen != 5 {
		t.Fatalf("expected 5 calculation routes, got %d", seen)
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
