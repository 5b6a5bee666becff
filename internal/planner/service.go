package planner

import (
	"context"
	"errors"
	"hash/fnv"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/searoute/searoute/internal/geo"
	"github.com/searoute/searoute/internal/recommend"
	"github.com/searoute/searoute/internal/refdata"
	"github.com/searoute/searoute/internal/scoring"
	"github.com/searoute/searoute/internal/voyage"
)

// Analyzer evaluates one route candidate. Satisfied by *voyage.Analyzer.
type Analyzer interface {
	Analyze(ctx context.Context, route geo.RouteCandidate, departure time.Time, baseSpeedKnots float64, rng *rand.Rand) (*voyage.RouteAnalysis, error)
}

// ServiceConfig holds configuration for creating a Service.
type ServiceConfig struct {
	Store       *refdata.Store
	Analyzer    Analyzer
	Scorer      *scoring.Scorer
	Synthesizer *recommend.Synthesizer

	// Logger for request diagnostics.
	Logger zerolog.Logger

	// Tracer and Meter are optional; nil disables instrumentation.
	Tracer trace.Tracer
	Meter  metric.Meter

	// Concurrency bounds how many routes are evaluated in parallel.
	// Default: 4.
	Concurrency int

	// Timeout bounds one analysis request. Default: 10m.
	Timeout time.Duration
}

// Service runs the full analysis pipeline for a request.
type Service struct {
	store       *refdata.Store
	analyzer    Analyzer
	scorer      *scoring.Scorer
	synthesizer *recommend.Synthesizer
	logger      zerolog.Logger
	tracer      trace.Tracer
	concurrency int
	timeout     time.Duration

	routesEvaluated metric.Int64Counter
	routesDropped   metric.Int64Counter
	requestDuration metric.Float64Histogram
}

// NewService creates a Service, filling zero config values with
// defaults.
func NewService(cfg ServiceConfig) *Service {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("planner")
	}

	s := &Service{
		store:       cfg.Store,
		analyzer:    cfg.Analyzer,
		scorer:      cfg.Scorer,
		synthesizer: cfg.Synthesizer,
		logger:      cfg.Logger,
		tracer:      tracer,
		concurrency: concurrency,
		timeout:     timeout,
	}

	if cfg.Meter != nil {
		s.routesEvaluated, _ = cfg.Meter.Int64Counter("planner.routes_evaluated",
			metric.WithDescription("Route candidates fully analyzed"))
		s.routesDropped, _ = cfg.Meter.Int64Counter("planner.routes_dropped",
			metric.WithDescription("Route candidates dropped before ranking"))
		s.requestDuration, _ = cfg.Meter.Float64Histogram("planner.request_duration_seconds",
			metric.WithDescription("End-to-end analysis request duration"))
	}

	return s
}

// Request describes one analysis run.
type Request struct {
	OriginPort      string    `json:"originPort"`
	DestinationPort string    `json:"destinationPort"`
	DepartureDate   time.Time `json:"departureDate"`
	CarrierID       string    `json:"carrierId"`

	// Seed drives all condition simulation. Zero means derive a seed
	// from the wall clock; the derived seed is logged so a run can be
	// reproduced.
	Seed int64 `json:"seed,omitempty"`
}

// DroppedRoute records a candidate excluded from the ranking.
type DroppedRoute struct {
	RouteID string `json:"routeId"`
	Reason  string `json:"reason"`
}

// Result is a completed analysis: the ranking, the recommendation
// derived from it, and any candidates that were dropped along the way.
type Result struct {
	AnalysisID      uuid.UUID                 `json:"analysisId"`
	GeneratedAt     time.Time                 `json:"generatedAt"`
	Carrier         refdata.Carrier           `json:"carrier"`
	OriginPort      string                    `json:"originPort"`
	DestinationPort string                    `json:"destinationPort"`
	DepartureDate   time.Time                 `json:"departureDate"`
	Seed            int64                     `json:"seed"`
	Ranking         []scoring.ScoredRoute     `json:"ranking"`
	Recommendation  *recommend.Recommendation `json:"recommendation"`
	Dropped         []DroppedRoute            `json:"droppedRoutes,omitempty"`
}

// AnalyzeRoutes evaluates every route between the requested ports for
// the given carrier and departure date, scores the survivors, and
// synthesizes a recommendation. Candidates with unusable geometry or
// total simulation failure are dropped, not fatal; the request fails
// only when the carrier is unknown, no route exists, or every candidate
// was dropped.
func (s *Service) AnalyzeRoutes(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "planner.AnalyzeRoutes", trace.WithAttributes(
		attribute.String("origin_port", req.OriginPort),
		attribute.String("destination_port", req.DestinationPort),
		attribute.String("carrier_id", req.CarrierID),
	))
	defer span.End()

	carrier, err := s.store.CarrierByID(req.CarrierID)
	if err != nil {
		return nil, &Error{Kind: KindUnknownCarrier, CarrierID: req.CarrierID, Err: err}
	}

	candidates, skipped := s.store.FindRoutes(req.OriginPort, req.DestinationPort)
	if len(candidates) == 0 && len(skipped) == 0 {
		return nil, &Error{
			Kind:            KindNoRoutesFound,
			OriginPort:      req.OriginPort,
			DestinationPort: req.DestinationPort,
		}
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		s.logger.Info().Int64("seed", seed).Msg("no seed supplied, derived from clock")
	}

	dropped := make([]DroppedRoute, 0, len(skipped))
	for _, sk := range skipped {
		dropped = append(dropped, DroppedRoute{RouteID: sk.RouteID, Reason: sk.Reason})
	}

	s.logger.Info().
		Str("origin", req.OriginPort).
		Str("destination", req.DestinationPort).
		Str("carrier_id", carrier.ID).
		Int("candidates", len(candidates)).
		Int("concurrency", s.concurrency).
		Msg("starting route analysis")

	analyses, analysisDropped := s.evaluate(ctx, candidates, req.DepartureDate, carrier.AvgSpeedKnots, seed)
	dropped = append(dropped, analysisDropped...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.routesEvaluated != nil {
		s.routesEvaluated.Add(ctx, int64(len(analyses)))
	}
	if s.routesDropped != nil {
		s.routesDropped.Add(ctx, int64(len(dropped)))
	}

	if len(analyses) == 0 {
		return nil, &Error{
			Kind:            KindEmptyCandidateSet,
			OriginPort:      req.OriginPort,
			DestinationPort: req.DestinationPort,
		}
	}

	ranking, err := s.scorer.Score(analyses)
	if err != nil {
		return nil, err
	}

	recommendation, err := s.synthesizer.Synthesize(ranking)
	if err != nil {
		return nil, err
	}

	result := &Result{
		AnalysisID:      uuid.New(),
		GeneratedAt:     time.Now().UTC(),
		Carrier:         carrier,
		OriginPort:      req.OriginPort,
		DestinationPort: req.DestinationPort,
		DepartureDate:   req.DepartureDate,
		Seed:            seed,
		Ranking:         ranking,
		Recommendation:  recommendation,
		Dropped:         dropped,
	}

	if s.requestDuration != nil {
		s.requestDuration.Record(ctx, time.Since(start).Seconds())
	}

	s.logger.Info().
		Str("analysis_id", result.AnalysisID.String()).
		Str("best_route", recommendation.Best.RouteID).
		Int("ranked", len(ranking)).
		Int("dropped", len(dropped)).
		Dur("duration", time.Since(start)).
		Msg("route analysis completed")

	return result, nil
}

type routeResult struct {
	analysis *voyage.RouteAnalysis
	dropped  *DroppedRoute
}

// evaluate fans the candidates out over a bounded worker pool. Each
// route gets its own rng derived from the request seed and the route
// id, so per-route results do not depend on evaluation order.
func (s *Service) evaluate(ctx context.Context, candidates []geo.RouteCandidate, departure time.Time, baseSpeedKnots float64, seed int64) ([]*voyage.RouteAnalysis, []DroppedRoute) {
	routesChan := make(chan geo.RouteCandidate, len(candidates))
	resultsChan := make(chan routeResult, len(candidates))

	var wg sync.WaitGroup
	for i := 0; i < s.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for route := range routesChan {
				select {
				case <-ctx.Done():
					return
				default:
					resultsChan <- s.evaluateRoute(ctx, route, departure, baseSpeedKnots, seed)
				}
			}
		}()
	}

	for _, c := range candidates {
		routesChan <- c
	}
	close(routesChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var analyses []*voyage.RouteAnalysis
	var dropped []DroppedRoute
	for r := range resultsChan {
		if r.dropped != nil {
			dropped = append(dropped, *r.dropped)
			continue
		}
		analyses = append(analyses, r.analysis)
	}

	// Workers complete in arbitrary order; restore a stable order so the
	// scorer sees the same input for the same seed.
	sort.Slice(analyses, func(i, j int) bool { return analyses[i].RouteID < analyses[j].RouteID })
	sort.Slice(dropped, func(i, j int) bool { return dropped[i].RouteID < dropped[j].RouteID })

	return analyses, dropped
}

func (s *Service) evaluateRoute(ctx context.Context, route geo.RouteCandidate, departure time.Time, baseSpeedKnots float64, seed int64) routeResult {
	rng := rand.New(rand.NewSource(routeSeed(seed, route.RouteID)))

	analysis, err := s.analyzer.Analyze(ctx, route, departure, baseSpeedKnots, rng)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return routeResult{dropped: &DroppedRoute{RouteID: route.RouteID, Reason: err.Error()}}
		}
		s.logger.Warn().
			Str("route_id", route.RouteID).
			Err(err).
			Msg("dropping route from candidate set")
		return routeResult{dropped: &DroppedRoute{RouteID: route.RouteID, Reason: err.Error()}}
	}

	return routeResult{analysis: analysis}
}

// routeSeed folds the route id into the request seed so every route
// draws from an independent, reproducible stream.
func routeSeed(seed int64, routeID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(routeID))
	return seed ^ int64(h.Sum64())
}
