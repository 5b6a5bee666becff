package voyage

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/searoute/searoute/internal/geo"
	"github.com/searoute/searoute/internal/news"
	"github.com/searoute/searoute/internal/risk"
	"github.com/searoute/searoute/internal/traffic"
	"github.com/searoute/searoute/internal/weather"
)

// WeatherSource produces a weather forecast for a segment.
type WeatherSource interface {
	Forecast(segmentID string, coords []geo.Coordinate, date time.Time, rng *rand.Rand) (*weather.SegmentForecast, error)
}

// TrafficSource produces a traffic analysis for a segment.
type TrafficSource interface {
	Analyze(segmentID string, coords []geo.Coordinate, date time.Time, rng *rand.Rand) (*traffic.Analysis, error)
}

// EventSource produces discrete events for a segment.
type EventSource interface {
	Generate(segmentID string, coords []geo.Coordinate, date time.Time, rng *rand.Rand) ([]news.Event, error)
}

// AnalyzerConfig holds configuration for the route analyzer.
type AnalyzerConfig struct {
	Weather WeatherSource
	Traffic TrafficSource
	Events  EventSource

	// Logger for analysis diagnostics.
	Logger zerolog.Logger

	// MinSpeedKnots floors the effective speed so congested segments
	// never produce unbounded transit times. Default: 10.
	MinSpeedKnots float64

	// RepresentativeWindKnots is the wind speed used for the
	// route-level weather delay correction. Default: 15.
	RepresentativeWindKnots float64
}

// Analyzer evaluates one route candidate: segment-by-segment condition
// sampling at projected arrival times, cumulative time propagation, and
// route-level aggregation. Evaluations hold no shared mutable state and
// may run concurrently for different routes.
type Analyzer struct {
	weather       WeatherSource
	traffic       TrafficSource
	events        EventSource
	logger        zerolog.Logger
	minSpeed      float64
	representWind float64
}

// NewAnalyzer creates an Analyzer, filling zero config values with
// defaults.
func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	minSpeed := cfg.MinSpeedKnots
	if minSpeed <= 0 {
		minSpeed = 10
	}
	representWind := cfg.RepresentativeWindKnots
	if representWind <= 0 {
		representWind = 15
	}

	return &Analyzer{
		weather:       cfg.Weather,
		traffic:       cfg.Traffic,
		events:        cfg.Events,
		logger:        cfg.Logger,
		minSpeed:      minSpeed,
		representWind: representWind,
	}
}

// Analyze evaluates a route candidate departing at the given time with
// the given base speed. The rng seeds all condition simulation for the
// route; a fixed seed yields byte-identical results.
func (a *Analyzer) Analyze(ctx context.Context, route geo.RouteCandidate, departure time.Time, baseSpeedKnots float64, rng *rand.Rand) (*RouteAnalysis, error) {
	analysis := &RouteAnalysis{
		RouteID:      route.RouteID,
		RouteType:    route.RouteType,
		DistanceNM:   route.TotalDistanceNM,
		SegmentCount: len(route.Segments),
	}

	var allEvents []news.Event
	cumulativeHours := 0.0
	failedSegments := 0

	for _, segment := range route.Segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		segmentDate := departure.Add(time.Duration(cumulativeHours * float64(time.Hour)))
		coords := segment.Coordinates()

		// Sub-seeds are drawn sequentially before the concurrent
		// simulator calls, so results do not depend on goroutine
		// scheduling.
		weatherRng := rand.New(rand.NewSource(rng.Int63()))
		trafficRng := rand.New(rand.NewSource(rng.Int63()))
		eventRng := rand.New(rand.NewSource(rng.Int63()))

		var (
			forecast    *weather.SegmentForecast
			trafficInfo *traffic.Analysis
			events      []news.Event
			weatherErr  error
			trafficErr  error
			eventsErr   error
		)

		g, _ := errgroup.WithContext(ctx)
		g.Go(func() error {
			forecast, weatherErr = a.weather.Forecast(segment.ID, coords, segmentDate, weatherRng)
			return nil
		})
		g.Go(func() error {
			trafficInfo, trafficErr = a.traffic.Analyze(segment.ID, coords, segmentDate, trafficRng)
			return nil
		})
		g.Go(func() error {
			events, eventsErr = a.events.Generate(segment.ID, coords, segmentDate, eventRng)
			return nil
		})
		_ = g.Wait()

		degraded := false
		if weatherErr != nil {
			a.logger.Warn().Str("segment_id", segment.ID).Err(weatherErr).Msg("weather simulation failed, degrading to low risk")
			degraded = true
		}
		if trafficErr != nil {
			a.logger.Warn().Str("segment_id", segment.ID).Err(trafficErr).Msg("traffic simulation failed, degrading to low congestion")
			degraded = true
		}
		if eventsErr != nil {
			a.logger.Warn().Str("segment_id", segment.ID).Err(eventsErr).Msg("event simulation failed, degrading to no events")
			degraded = true
		}
		if weatherErr != nil && trafficErr != nil && eventsErr != nil {
			failedSegments++
		}
		if degraded {
			analysis.DegradedSegments = append(analysis.DegradedSegments, segment.ID)
		}

		analysis.Reports = append(analysis.Reports,
			weatherReport(segment.ID, segmentDate, forecast, weatherErr != nil),
			trafficReport(segment.ID, segmentDate, trafficInfo, trafficErr != nil),
			eventReport(segment.ID, segmentDate, events, eventsErr != nil),
		)

		if forecast != nil {
			if forecast.RiskLevel.AtLeast(risk.LevelMedium) {
				analysis.Weather.RiskSegments++
			}
			if forecast.RiskLevel == risk.LevelHigh {
				analysis.Weather.CriticalConditions = append(analysis.Weather.CriticalConditions, forecast.PredominantCondition)
			}
		}

		speedReduction := 0.0
		if trafficInfo != nil {
			speedReduction = trafficInfo.SpeedReductionKnots
			if trafficInfo.Congestion.AtLeast(risk.LevelMedium) {
				analysis.Traffic.CongestedSegments++
			}
			if trafficInfo.Congestion == risk.LevelHigh {
				analysis.Traffic.PeakSegments = append(analysis.Traffic.PeakSegments, segment.ID)
			}
		}

		allEvents = append(allEvents, events...)

		effectiveSpeed := baseSpeedKnots - speedReduction
		if effectiveSpeed < a.minSpeed {
			effectiveSpeed = a.minSpeed
		}

		analysis.Profile = append(analysis.Profile, TimeProfileEntry{
			SegmentID:           segment.ID,
			HoursFromDeparture:  cumulativeHours,
			EffectiveSpeedKnots: effectiveSpeed,
		})

		cumulativeHours += segment.DistanceNM / effectiveSpeed
	}

	if failedSegments == len(route.Segments) {
		return nil, ErrAllSegmentsFailed
	}

	analysis.Weather.Overall = overallFromSegments(analysis.Weather.RiskSegments)
	analysis.Traffic.Overall = overallFromSegments(analysis.Traffic.CongestedSegments)
	analysis.Events = news.Assess(allEvents)
	analysis.Time = a.timeBreakdown(route, baseSpeedKnots, analysis)

	return analysis, nil
}

// overallFromSegments maps an affected-segment count to the route
// level: High above two segments, Medium above zero, else Low.
func overallFromSegments(affected int) risk.Level {
	switch {
	case affected > 2:
		return risk.LevelHigh
	case affected > 0:
		return risk.LevelMedium
	default:
		return risk.LevelLow
	}
}

// timeBreakdown computes the route-level transit time: the base
// distance/speed time plus coarse weather and traffic corrections.
// Weather and event delay effects are deliberately not re-applied to
// the per-segment walk, which already discounts speed for traffic.
func (a *Analyzer) timeBreakdown(route geo.RouteCandidate, baseSpeedKnots float64, analysis *RouteAnalysis) TimeBreakdown {
	baseHours := route.TotalDistanceNM / baseSpeedKnots

	weatherDelay := 0.0
	if analysis.Weather.RiskSegments > 1 {
		weatherDelay = baseHours * a.representWind / 100
	}

	trafficDelay := 0.0
	if analysis.Traffic.CongestedSegments > 1 {
		factor := 0.05
		if analysis.Traffic.Overall == risk.LevelHigh {
			factor = 0.10
		}
		trafficDelay = baseHours * factor
	}

	totalHours := baseHours + weatherDelay + trafficDelay

	return TimeBreakdown{
		BaseHours:           baseHours,
		WeatherDelayHours:   weatherDelay,
		TrafficDelayHours:   trafficDelay,
		TotalHours:          totalHours,
		TotalDays:           totalHours / 24,
		EffectiveSpeedKnots: route.TotalDistanceNM / totalHours,
	}
}

// weatherReport builds the weather ConditionReport for a segment. A
// failed simulation degrades to Low severity with the degraded flag.
func weatherReport(segmentID string, observedAt time.Time, forecast *weather.SegmentForecast, degraded bool) ConditionReport {
	report := ConditionReport{
		SegmentID:  segmentID,
		Factor:     FactorWeather,
		ObservedAt: observedAt,
		Severity:   risk.LevelLow,
		Degraded:   degraded,
	}
	if forecast != nil {
		report.Severity = forecast.RiskLevel
	}
	return report
}

func trafficReport(segmentID string, observedAt time.Time, analysis *traffic.Analysis, degraded bool) ConditionReport {
	report := ConditionReport{
		SegmentID:  segmentID,
		Factor:     FactorTraffic,
		ObservedAt: observedAt,
		Severity:   risk.LevelLow,
		Degraded:   degraded,
	}
	if analysis != nil {
		report.Severity = analysis.Congestion
		report.Effect.SpeedReductionKnots = analysis.SpeedReductionKnots
	}
	return report
}

// eventReport folds a segment's events into one report: severity is
// the worst event severity, the effect is the element-wise maximum
// across events (conservative).
func eventReport(segmentID string, observedAt time.Time, events []news.Event, degraded bool) ConditionReport {
	report := ConditionReport{
		SegmentID:  segmentID,
		Factor:     FactorEvent,
		ObservedAt: observedAt,
		Severity:   risk.LevelLow,
		Degraded:   degraded,
	}
	for _, e := range events {
		report.Severity = risk.Max(report.Severity, e.Severity)
		if e.Impact.DelayHours > report.Effect.DelayHours {
			report.Effect.DelayHours = e.Impact.DelayHours
		}
		if e.Impact.SpeedReductionKnots > report.Effect.SpeedReductionKnots {
			report.Effect.SpeedReductionKnots = e.Impact.SpeedReductionKnots
		}
		if e.Impact.RiskIncreasePercent > report.Effect.RiskIncreasePercent {
			report.Effect.RiskIncreasePercent = e.Impact.RiskIncreasePercent
		}
	}
	return report
}
