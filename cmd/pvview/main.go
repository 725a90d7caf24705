// Package main is the entry point for the pvview molecule viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Traksewt/pv/internal/config"
	"github.com/Traksewt/pv/internal/logger"
	"github.com/Traksewt/pv/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: pvview [flags] structure.pdb\n")
		os.Exit(2)
	}

	logger.Info("=== pvview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	// Create and run viewer
	v, err := viewer.New(cfg, args[0])
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
