// Package main provides the entrypoint for the sea route planner CLI.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/searoute/searoute/internal/config"
	"github.com/searoute/searoute/internal/news"
	"github.com/searoute/searoute/internal/planner"
	"github.com/searoute/searoute/internal/recommend"
	"github.com/searoute/searoute/internal/refdata"
	"github.com/searoute/searoute/internal/scoring"
	"github.com/searoute/searoute/internal/telemetry"
	"github.com/searoute/searoute/internal/traffic"
	"github.com/searoute/searoute/internal/voyage"
	"github.com/searoute/searoute/internal/weather"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "searoute-planner"

	origin := flag.String("origin", "New York", "origin port city")
	destination := flag.String("destination", "Cape Town", "destination port city")
	departure := flag.String("departure", "", "departure date (YYYY-MM-DD, default tomorrow)")
	carrierID := flag.String("carrier", "CR_0001", "carrier id")
	seed := flag.Int64("seed", 0, "simulation seed (overrides SIMULATION_SEED, 0 derives from clock)")
	flag.Parse()

	log := zerolog.New(os.Stderr).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	log.Info().
		Str("build_time", BuildTime).
		Str("environment", cfg.Environment).
		Msg("starting sea route planner")

	ctx := context.Background()

	provider, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := provider.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	departureDate := time.Now().UTC().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	if *departure != "" {
		departureDate, err = time.Parse("2006-01-02", *departure)
		if err != nil {
			log.Fatal().Str("departure", *departure).Err(err).Msg("invalid departure date")
		}
	}

	simulationSeed := cfg.Seed
	if *seed != 0 {
		simulationSeed = *seed
	}

	store := refdata.Sample(refdata.SampleConfig{Logger: log})

	analyzer := voyage.NewAnalyzer(voyage.AnalyzerConfig{
		Weather: weather.NewSimulator(weather.SimulatorConfig{Logger: log}),
		Traffic: traffic.NewSimulator(traffic.SimulatorConfig{Logger: log}),
		Events:  news.NewSimulator(news.SimulatorConfig{Logger: log}),
		Logger:  log,
	})

	service := planner.NewService(planner.ServiceConfig{
		Store:       store,
		Analyzer:    analyzer,
		Scorer:      scoring.NewScorer(scoring.ScorerConfig{Logger: log}),
		Synthesizer: recommend.NewSynthesizer(recommend.SynthesizerConfig{Logger: log}),
		Logger:      log,
		Tracer:      provider.Tracer,
		Meter:       provider.Meter,
		Concurrency: cfg.Concurrency,
		Timeout:     cfg.EvalTimeout,
	})

	result, err := service.AnalyzeRoutes(ctx, planner.Request{
		OriginPort:      *origin,
		DestinationPort: *destination,
		DepartureDate:   departureDate,
		CarrierID:       *carrierID,
		Seed:            simulationSeed,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("route analysis failed")
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("failed to encode result")
	}
}
