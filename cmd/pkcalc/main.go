// Command pkcalc corre el cálculo PK desde la terminal, localmente o contra
// un servidor (-server).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"pk-dosing-form/internal/domain/calculations"
	"pk-dosing-form/internal/domain/pk"
	"pk-dosing-form/internal/platform/display"
	"pk-dosing-form/internal/platform/httpclient"
	"pk-dosing-form/internal/platform/logger"
)

func main() {
	log := logger.NewFromEnv()
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Error("pkcalc failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

type remoteResponse struct {
	ID      string         `json:"id"`
	Result  pk.Result      `json:"result"`
	Display display.Result `json:"display"`
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	def := pk.DefaultInput()
	in := def

	fs := flag.NewFlagSet("pkcalc", flag.ContinueOnError)
	fs.SetOutput(stdout)

	route := fs.String("route", string(def.Route), "Route: oral | iv_bolus")
	fs.Float64Var(&in.Dose, "dose", def.Dose, "Dose (mg)")
	fs.Float64Var(&in.F, "f", def.F, "Bioavailability fraction F")
	fs.Float64Var(&in.Vd, "vd", def.Vd, "Volume of distribution (L)")
	fs.Float64Var(&in.Cl, "cl", def.Cl, "Clearance (L/h)")
	fs.Float64Var(&in.HalfLife, "t-half", def.HalfLife, "Literature half-life (h)")
	fs.Float64Var(&in.Ka, "ka", def.Ka, "Absorption rate constant (1/h)")
	fs.Float64Var(&in.Tau, "tau", def.Tau, "Dosing interval (h)")
	fs.Float64Var(&in.CssTarget, "css", def.CssTarget, "Target steady-state concentration (mg/L)")
	fs.StringVar(&in.Points, "points", def.Points, "Measurements as t:C,t:C,...")
	server := fs.String("server", "", "Base URL of a running API (empty = compute locally)")
	timeout := fs.Duration("timeout", 10*time.Second, "HTTP timeout when -server is set")

	if err := fs.Parse(args); err != nil {
		return err
	}
	in.Route = pk.Route(*route)

	if *server == "" {
		// Sin -server no hay historial: sólo validación y motor.
		res, err := calculations.NewService(nil).Evaluate(in)
		if err != nil {
			return err
		}
		return printResult(stdout, "", res, display.FromResult(res))
	}

	client, err := httpclient.New(*server, *timeout)
	if err != nil {
		return err
	}
	var out remoteResponse
	if err := client.DoJSON(ctx, http.MethodPost, "/calculations", in, &out); err != nil {
		return fmt.Errorf("remote calculation: %w", err)
	}
	return printResult(stdout, out.ID, out.Result, out.Display)
}

func printResult(w io.Writer, id string, res pk.Result, d display.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if id != "" {
		fmt.Fprintf(tw, "calculation\t%s\n", id)
	}
	fmt.Fprintf(tw, "samples\t%d\n", len(res.Samples))
	fmt.Fprintf(tw, "k (t½)\t%s\n", d.KFromHalfLife)
	fmt.Fprintf(tw, "k (Cl/Vd)\t%s\n", d.KFromClearance)
	fmt.Fprintf(tw, "k (terminal)\t%s\n", d.KFromTerminalSlope)
	fmt.Fprintf(tw, "k selected\t%s (%s)\n", d.KSelected, d.KSource)
	fmt.Fprintf(tw, "t½ (h)\t%s\n", d.HalfLife)
	fmt.Fprintf(tw, "AUC 0-t\t%s\n", d.AUC)
	fmt.Fprintf(tw, "AUC 0-inf\t%s\n", d.AUCInf)
	fmt.Fprintf(tw, "Cmax\t%s at %s h\n", d.Cmax, d.Tmax)
	fmt.Fprintf(tw, "loading dose (mg)\t%s\n", d.LoadingDose)
	fmt.Fprintf(tw, "maintenance rate (mg/h)\t%s\n", d.MaintenanceRate)
	fmt.Fprintf(tw, "maintenance dose (mg)\t%s\n", d.MaintenanceDose)
	return tw.Flush()
}
