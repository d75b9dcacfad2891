// industrimath: mathematical models for industrial decisions
//
// Solves the two-product production mix by vertex enumeration and runs the
// EOQ, M/M/1 queue and series-reliability calculators, from the command line
// or as an HTTP JSON API.
//
// Build:
//   go build -o industrimath ./cmd/industrimath
//
// Examples:
//   industrimath production --pdf plan.pdf
//   industrimath batch plans.csv --xlsx results.xlsx
//   industrimath serve --addr :8080

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
