// main.go

package main

import (
	"fmt"
	"os"

	"github.com/forgeworks/hostprep/cmd"
	"github.com/forgeworks/hostprep/pkg/logger"
	"github.com/forgeworks/hostprep/pkg/telemetry"
)

func main() {
	logger.InitializeWithFallback()
	if logger.L() == nil {
		panic("logger not initialized")
	}

	if err := telemetry.Init("hostprep"); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry init failed: %v\n", err)
	}

	cmd.Execute()
}
