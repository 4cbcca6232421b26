package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v3"
)

// serveMetricsCommand starts a bare HTTP server exposing the process's
// default Prometheus registry — ambient observability only, no maze
// rendering or session/console interaction.
func serveMetricsCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve-metrics",
		Usage: "serve Prometheus metrics over HTTP until interrupted",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":9090", Usage: "listen address"},
		},
		Action: runServeMetrics,
	}
}

func runServeMetrics(ctx context.Context, cmd *cli.Command) error {
	addr := cmd.String("addr")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: addr, Handler: mux}

	fmt.Printf("serving metrics on %s/metrics\n", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return cli.Exit(fmt.Sprintf("metrics server: %v", err), 1)
	}
	return nil
}
