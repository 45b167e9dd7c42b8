// ABOUTME: This file is the process entry point
// ABOUTME: All wiring and lifecycle management lives in the bootstrap package
package main

import (
	"context"
	"fmt"
	"os"

	"rank-estimator/bootstrap"
)

func main() {
	ctx := context.Background()
	if err := bootstrap.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "rank-estimator: %v\n", err)
		os.Exit(1)
	}
}
