// Command aqi runs the AQI batch pipeline.
//
// Usage:
//
//	aqi clean     # raw dataset -> cleaned_aqi_data.csv
//	aqi analyze   # cleaned_aqi_data.csv -> analysis_summary.csv
//	aqi run       # clean, then analyze
//
// Paths and logging are configured through environment variables; see
// internal/config.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
