package voyage_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searoute/searoute/internal/geo"
	"github.com/searoute/searoute/internal/news"
	"github.com/searoute/searoute/internal/risk"
	"github.com/searoute/searoute/internal/traffic"
	"github.com/searoute/searoute/internal/voyage"
	"github.com/searoute/searoute/internal/weather"
)

// Stub condition sources with fixed verdicts.

type stubWeather struct {
	risk risk.Level
	err  error
}

func (s *stubWeather) Forecast(segmentID string, _ []geo.Coordinate, date time.Time, _ *rand.Rand) (*weather.SegmentForecast, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &weather.SegmentForecast{
		SegmentID:            segmentID,
		ForecastDate:         date,
		PredominantCondition: weather.ConditionClear,
		RiskLevel:            s.risk,
	}, nil
}

type stubTraffic struct {
	congestion     risk.Level
	speedReduction float64
	err            error
}

func (s *stubTraffic) Analyze(segmentID string, _ []geo.Coordinate, date time.Time, _ *rand.Rand) (*traffic.Analysis, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &traffic.Analysis{
		SegmentID:           segmentID,
		AnalysisDate:        date,
		Congestion:          s.congestion,
		SpeedReductionKnots: s.speedReduction,
	}, nil
}

type stubEvents struct {
	events []news.Event
	err    error
}

func (s *stubEvents) Generate(string, []geo.Coordinate, time.Time, *rand.Rand) ([]news.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.events, nil
}

// testRoute builds a candidate with four 120nm segments.
func testRoute() geo.RouteCandidate {
	segments := make([]geo.Segment, 4)
	for i := range segments {
		segments[i] = geo.Segment{
			ID: "R_T_seg_" + string(rune('1'+i)),
			Waypoints: []geo.Waypoint{
				{ID: "a", Lat: float64(i), Lon: 0},
				{ID: "b", Lat: float64(i), Lon: 2},
			},
			DistanceNM: 120,
		}
	}
	return geo.RouteCandidate{
		RouteID:         "R_T",
		RouteType:       "direct",
		TotalDistanceNM: 480,
		WaypointCount:   8,
		Segments:        segments,
	}
}

func newAnalyzer(w voyage.WeatherSource, tr voyage.TrafficSource, ev voyage.EventSource) *voyage.Analyzer {
	return voyage.NewAnalyzer(voyage.AnalyzerConfig{
		Weather: w,
		Traffic: tr,
		Events:  ev,
	})
}

func TestAnalyze_CalmConditions(t *testing.T) {
	analyzer := newAnalyzer(
		&stubWeather{risk: risk.LevelLow},
		&stubTraffic{congestion: risk.LevelLow},
		&stubEvents{},
	)

	departure := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	analysis, err := analyzer.Analyze(context.Background(), testRoute(), departure, 20, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Equal(t, "R_T", analysis.RouteID)
	assert.Equal(t, 4, analysis.SegmentCount)
	assert.Equal(t, risk.LevelLow, analysis.Weather.Overall)
	assert.Equal(t, risk.LevelLow, analysis.Traffic.Overall)
	assert.Equal(t, risk.LevelLow, analysis.Events.Overall)
	assert.Empty(t, analysis.DegradedSegments)

	// No congestion means the base speed is carried through and no
	// delay corrections apply.
	assert.InDelta(t, 24.0, analysis.Time.BaseHours, 1e-9)
	assert.Zero(t, analysis.Time.WeatherDelayHours)
	assert.Zero(t, analysis.Time.TrafficDelayHours)
	assert.InDelta(t, 24.0, analysis.Time.TotalHours, 1e-9)

	require.Len(t, analysis.Profile, 4)
	for i, entry := range analysis.Profile {
		assert.InDelta(t, float64(i)*6, entry.HoursFromDeparture, 1e-9)
		assert.InDelta(t, 20.0, entry.EffectiveSpeedKnots, 1e-9)
	}

	// Three reports per segment, one per factor.
	assert.Len(t, analysis.Reports, 12)
}

func TestAnalyze_CongestionSlowsLaterSegments(t *testing.T) {
	analyzer := newAnalyzer(
		&stubWeather{risk: risk.LevelLow},
		&stubTraffic{congestion: risk.LevelHigh, speedReduction: 4},
		&stubEvents{},
	)

	departure := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	analysis, err := analyzer.Analyze(context.Background(), testRoute(), departure, 20, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// Every segment transits at 16 knots, so each takes 7.5 hours and
	// later segments are reached later than an undisturbed schedule.
	for i, entry := range analysis.Profile {
		assert.InDelta(t, float64(i)*7.5, entry.HoursFromDeparture, 1e-9)
		assert.InDelta(t, 16.0, entry.EffectiveSpeedKnots, 1e-9)
	}

	assert.Equal(t, 4, analysis.Traffic.CongestedSegments)
	assert.Equal(t, risk.LevelHigh, analysis.Traffic.Overall)
	assert.Len(t, analysis.Traffic.PeakSegments, 4)

	// More than one congested segment triggers the route-level traffic
	// delay at the High factor.
	assert.InDelta(t, 24.0*0.10, analysis.Time.TrafficDelayHours, 1e-9)
}

func TestAnalyze_SpeedFloor(t *testing.T) {
	analyzer := newAnalyzer(
		&stubWeather{risk: risk.LevelLow},
		&stubTraffic{congestion: risk.LevelHigh, speedReduction: 50},
		&stubEvents{},
	)

	analysis, err := analyzer.Analyze(context.Background(), testRoute(), time.Now(), 20, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	for _, entry := range analysis.Profile {
		assert.InDelta(t, 10.0, entry.EffectiveSpeedKnots, 1e-9)
	}
}

func TestAnalyze_WeatherAggregation(t *testing.T) {
	analyzer := newAnalyzer(
		&stubWeather{risk: risk.LevelHigh},
		&stubTraffic{congestion: risk.LevelLow},
		&stubEvents{},
	)

	analysis, err := analyzer.Analyze(context.Background(), testRoute(), time.Now(), 20, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// Four risky segments exceed the High threshold of two.
	assert.Equal(t, 4, analysis.Weather.RiskSegments)
	assert.Equal(t, risk.LevelHigh, analysis.Weather.Overall)
	assert.Len(t, analysis.Weather.CriticalConditions, 4)

	// Weather delay: 15% of base time once more than one segment is
	// risky.
	assert.InDelta(t, 24.0*0.15, analysis.Time.WeatherDelayHours, 1e-9)
}

func TestAnalyze_PartialFailureDegrades(t *testing.T) {
	analyzer := newAnalyzer(
		&stubWeather{err: errors.New("provider down")},
		&stubTraffic{congestion: risk.LevelLow},
		&stubEvents{},
	)

	analysis, err := analyzer.Analyze(context.Background(), testRoute(), time.Now(), 20, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// Weather degrades to Low everywhere; the route still analyzes.
	assert.Equal(t, risk.LevelLow, analysis.Weather.Overall)
	assert.Len(t, analysis.DegradedSegments, 4)

	for _, report := range analysis.Reports {
		if report.Factor == voyage.FactorWeather {
			assert.True(t, report.Degraded)
			assert.Equal(t, risk.LevelLow, report.Severity)
		}
	}
}

func TestAnalyze_AllFactorsFailingIsFatal(t *testing.T) {
	analyzer := newAnalyzer(
		&stubWeather{err: errors.New("down")},
		&stubTraffic{err: errors.New("down")},
		&stubEvents{err: errors.New("down")},
	)

	_, err := analyzer.Analyze(context.Background(), testRoute(), time.Now(), 20, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, voyage.ErrAllSegmentsFailed)
}

func TestAnalyze_EventEffectIsElementWiseMax(t *testing.T) {
	events := []news.Event{
		{Severity: risk.LevelMedium, Impact: news.Impact{DelayHours: 2, SpeedReductionKnots: 5, RiskIncreasePercent: 10}},
		{Severity: risk.LevelHigh, Impact: news.Impact{DelayHours: 6, SpeedReductionKnots: 1, RiskIncreasePercent: 30}},
	}
	analyzer := newAnalyzer(
		&stubWeather{risk: risk.LevelLow},
		&stubTraffic{congestion: risk.LevelLow},
		&stubEvents{events: events},
	)

	analysis, err := analyzer.Analyze(context.Background(), testRoute(), time.Now(), 20, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	for _, report := range analysis.Reports {
		if report.Factor != voyage.FactorEvent {
			continue
		}
		assert.Equal(t, risk.LevelHigh, report.Severity)
		assert.InDelta(t, 6.0, report.Effect.DelayHours, 1e-9)
		assert.InDelta(t, 5.0, report.Effect.SpeedReductionKnots, 1e-9)
		assert.InDelta(t, 30.0, report.Effect.RiskIncreasePercent, 1e-9)
	}
}

func TestAnalyze_ContextCancellation(t *testing.T) {
	analyzer := newAnalyzer(
		&stubWeather{risk: risk.LevelLow},
		&stubTraffic{congestion: risk.LevelLow},
		&stubEvents{},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := analyzer.Analyze(ctx, testRoute(), time.Now(), 20, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, context.Canceled)
}
