// Package main is the entry point for the hull water simulation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/hullwater/internal/config"
	"github.com/Faultbox/hullwater/internal/logger"
	"github.com/Faultbox/hullwater/internal/sim"
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

	logger.Info("=== Hull Water Simulation ===")
	if logger.Enabled(zapcore.DebugLevel) {
		logger.Sugar.Debugf("Config: %+v", cfg)
	}

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Warn("failed to save config", zap.Error(err))
		} else {
			logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		}
	}

	s, err := sim.New(cfg)
	if err != nil {
		logger.Error("failed to create simulation", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	summary, runErr := s.Run(ctx)
	stop()

	closeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Close(closeCtx); err != nil {
		logger.Warn("telemetry shutdown", zap.Error(err))
	}

	if runErr != nil {
		logger.Error("simulation error", zap.Error(runErr), zap.Int("steps", summary.Steps))
		logger.Sync()
		os.Exit(1)
	}

	fmt.Printf("steps=%d time=%.2fs position=(%.3f, %.3f, %.3f) max_slamming=%.1fN\n",
		summary.Steps, summary.Time,
		summary.Position.X, summary.Position.Y, summary.Position.Z,
		summary.MaxSlamming)
}
