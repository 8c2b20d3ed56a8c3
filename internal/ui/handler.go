// Package ui es la pantalla única del calculador: formulario, resultado
// formateado y página de ayuda.
package ui

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"pk-dosing-form/internal/domain/calculations"
	"pk-dosing-form/internal/platform/display"
	"pk-dosing-form/internal/platform/logger"
)

//go:embed templates/*
var templatesFS embed.FS

var (
	formTmpl = template.Must(template.ParseFS(templatesFS, "templates/form.html"))
	helpTmpl = template.Must(template.ParseFS(templatesFS, "templates/help.html"))
)

func RegisterRoutes(r chi.Router, svc *calculations.Service, log logger.Logger) {
	help := renderHelp()

	r.Get("/", showFormHandler(log))
	r.Post("/", submitFormHandler(svc, log))
	r.Get("/help", helpHandler(help, log))
}

type pageData struct {
	Form          formState
	Result        *display.Result
	SampleCount   int
	CalculationID string
	Error         string
}

func showFormHandler(log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, log, http.StatusOK, pageData{Form: defaultFormState()})
	}
}

// submitFormHandler calcula, guarda en el historial y vuelve a pintar el form
// con los valores enviados. Cada envío reemplaza el resultado anterior.
func submitFormHandler(svc *calculations.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		form := formStateFrom(r.PostForm.Get)
		c, err := svc.Create(r.Context(), form.toInput())
		if err != nil {
			if errors.Is(err, calculations.ErrInvalidInput) {
				render(w, r, log, http.StatusBadRequest, pageData{Form: form, Error: err.Error()})
				return
			}
			log.Error("form calculation failed", map[string]any{
				"request_id": chimw.GetReqID(r.Context()),
				"error":      err.Error(),
			})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		res := display.FromResult(c.Result)
		render(w, r, log, http.StatusOK, pageData{
			Form:          form,
			Result:        &res,
			SampleCount:   len(c.Result.Samples),
			CalculationID: c.ID,
		})
	}
}

func helpHandler(help template.HTML, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := helpTmpl.Execute(&buf, help); err != nil {
			log.Error("render help failed", map[string]any{"error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeHTML(w, http.StatusOK, buf.Bytes())
	}
}

func render(w http.ResponseWriter, r *http.Request, log logger.Logger, status int, data pageData) {
	var buf bytes.Buffer
	if err := formTmpl.Execute(&buf, data); err != nil {
		log.Error("render form failed", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"error":      err.Error(),
		})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

// renderHelp convierte el glosario embebido (Markdown) a HTML.
func renderHelp() template.HTML {
	md, err := templatesFS.ReadFile("templates/help.md")
	if err != nil {
		// el archivo está embebido; sólo falla si se borra del paquete
		panic(err)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML(md, p, renderer))
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
