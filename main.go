package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Parsa-ux360/PriceForecastApp/internal/config"
	"github.com/Parsa-ux360/PriceForecastApp/internal/forecast"
	"github.com/Parsa-ux360/PriceForecastApp/internal/inflation"
	"github.com/Parsa-ux360/PriceForecastApp/internal/worldbank"
)

// initializeLogger creates a zap logger from the configured level and format
func initializeLogger(level, format string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	case "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)

	return zapConfig.Build()
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := initializeLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	// Wire the engine: World Bank client -> inflation resolver -> forecaster
	client := worldbank.NewClient(cfg.WorldBankBaseURL, logger)
	resolver := inflation.NewResolver(client, logger)
	forecaster := forecast.New(resolver, logger)

	records := cfg.Records()

	fmt.Println("Forecasting product prices...")
	fmt.Println("=============================")
	results := forecaster.ForecastBatch(ctx, records)
	report := forecast.BuildReport(results)

	for _, row := range report {
		if row.InflationRate != nil {
			fmt.Printf("%s: %s (inflation %.2f%% in %s)\n",
				row.Product, row.ForecastPrice, *row.InflationRate, row.InflationYear)
		} else {
			fmt.Printf("%s: %s\n", row.Product, row.ForecastPrice)
		}
	}
	fmt.Println("=============================")

	// The JSON report is the contract surface for downstream renderers.
	if cfg.OutputFile != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			logger.Fatal("failed to encode report", zap.Error(err))
		}
		if err := os.WriteFile(cfg.OutputFile, data, 0644); err != nil {
			logger.Fatal("failed to write report",
				zap.String("path", cfg.OutputFile),
				zap.Error(err),
			)
		}
		fmt.Printf("Report written to %s\n", cfg.OutputFile)
	}
}
