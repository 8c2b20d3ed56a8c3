package calculations

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"pk-dosing-form/internal/domain/pk"
	"pk-dosing-form/internal/platform/display"
	"pk-dosing-form/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/calculations", func(cr chi.Router) {
		cr.Post("/", createCalculationHandler(svc, log))
		cr.Get("/", listCalculationsHandler(svc, log))
		cr.Get("/{calculationID}", getCalculationHandler(svc, log))

		// Exports del mismo cálculo
		cr.Get("/{calculationID}/samples.csv", samplesCSVHandler(svc, log))
		cr.Get("/{calculationID}/curve.png", curvePNGHandler(svc, log))
	})
}

// calculationResponse devuelve los valores crudos y su versión formateada.
type calculationResponse struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Input     pk.Input       `json:"input"`
	Result    pk.Result      `json:"result"`
	Display   display.Result `json:"display"`
}

// createCalculationHandler godoc
// @Summary Calcular y guardar
// @Description Ejecuta el motor PK (parser de puntos, AUC, k, dosis) con los parámetros enviados y guarda el resultado en el historial. Los puntos mal formados no son error: producen una lista vacía de muestras.
// @Tags calculations
// @Accept json
// @Produce json
// @Param payload body pk.Input true "Parámetros y puntos en formato t:c,t:c"
// @Success 201 {object} calculationResponse
// @Failure 400 {string} string "invalid json / route inválida"
// @Failure 500 {string} string "internal error"
// @Router /calculations [post]
func createCalculationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pk.Input
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), req)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.Error("create calculation failed", map[string]any{
				"request_id": chimw.GetReqID(r.Context()),
				"error":      err.Error(),
			})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, r, log, http.StatusCreated, toCalculationResponse(c))
	}
}

// listCalculationsHandler godoc
// @Summary Listar historial
// @Description Lista los cálculos guardados, más nuevos primero.
// @Tags calculations
// @Produce json
// @Param limit query int false "Máximo a devolver (1-200). Por defecto 50"
// @Success 200 {array} calculationResponse
// @Failure 500 {string} string "internal error"
// @Router /calculations [get]
func listCalculationsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := DefaultListLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= MaxListLimit {
				limit = n
			}
		}

		items, err := svc.ListRecent(r.Context(), limit)
		if err != nil {
			log.Error("list calculations failed", map[string]any{"error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]calculationResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCalculationResponse(c))
		}

		writeJSON(w, r, log, http.StatusOK, out)
	}
}

// getCalculationHandler godoc
// @Summary Obtener un cálculo
// @Tags calculations
// @Produce json
// @Param calculationID path string true "ID del cálculo"
// @Success 200 {object} calculationResponse
// @Failure 404 {string} string "calculation not found"
// @Router /calculations/{calculationID} [get]
func getCalculationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "calculationID"))
		if err != nil {
			http.Error(w, "calculation not found", http.StatusNotFound)
			return
		}

		writeJSON(w, r, log, http.StatusOK, toCalculationResponse(c))
	}
}

// samplesCSVHandler godoc
// @Summary Exportar muestras en CSV
// @Description Devuelve las muestras parseadas (ordenadas por tiempo) con columnas time_h,concentration.
// @Tags calculations
// @Produce text/csv
// @Param calculationID path string true "ID del cálculo"
// @Success 200 {string} string "CSV"
// @Failure 404 {string} string "calculation not found"
// @Router /calculations/{calculationID}/samples.csv [get]
func samplesCSVHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "calculationID"))
		if err != nil {
			http.Error(w, "calculation not found", http.StatusNotFound)
			return
		}

		var buf bytes.Buffer
		if err := WriteSamplesCSV(&buf, c.Result.Samples); err != nil {
			log.Error("samples csv failed", map[string]any{"id": c.ID, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="samples-`+c.ID+`.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// curvePNGHandler godoc
// @Summary Gráfico concentración-tiempo
// @Tags calculations
// @Produce image/png
// @Param calculationID path string true "ID del cálculo"
// @Success 200 {file} binary
// @Failure 404 {string} string "calculation not found"
// @Router /calculations/{calculationID}/curve.png [get]
func curvePNGHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "calculationID"))
		if err != nil {
			http.Error(w, "calculation not found", http.StatusNotFound)
			return
		}

		// Render a buffer primero para poder responder 500 limpio.
		var buf bytes.Buffer
		if err := WriteCurvePNG(&buf, c.Result); err != nil {
			log.Error("curve png failed", map[string]any{"id": c.ID, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

func toCalculationResponse(c Calculation) calculationResponse {
	return calculationResponse{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		Input:     c.Input,
		Result:    c.Result,
		Display:   display.FromResult(c.Result),
	}
}

// writeJSON codifica antes de escribir el status, para que un error de
// encoding termine en 500 y no en un 2xx vacío.
func writeJSON(w http.ResponseWriter, r *http.Request, log logger.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error("encode response failed", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"error":      err.Error(),
		})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
