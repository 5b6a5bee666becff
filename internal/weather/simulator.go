package weather

import (
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/searoute/searoute/internal/geo"
	"github.com/searoute/searoute/internal/risk"
)

// Risk classification and warning thresholds.
const (
	highRiskWindKnots   = 35.0
	highRiskWaveM       = 4.0
	mediumRiskWindKnots = 25.0
	mediumRiskWaveM     = 3.0

	warnWindKnots      = 40.0
	warnWaveM          = 5.0
	warnVisibilityKM   = 2.0
	baseTemperatureC   = 25.0
	latTemperatureDrop = 4.0
)

var conditions = []Condition{
	ConditionClear,
	ConditionPartlyCloudy,
	ConditionOvercast,
	ConditionLightRain,
	ConditionHeavyRain,
	ConditionFog,
	ConditionStormy,
}

var seaStates = []SeaState{
	SeaCalm,
	SeaSlight,
	SeaModerate,
	SeaRough,
	SeaVeryRough,
	SeaHigh,
}

// SimulatorConfig holds configuration for the weather simulator.
type SimulatorConfig struct {
	// Logger for simulation diagnostics.
	Logger zerolog.Logger
}

// Simulator generates synthetic weather forecasts for route segments.
// It holds no mutable state; all randomness comes from the rng passed
// per call, so a seeded source yields reproducible forecasts.
type Simulator struct {
	logger zerolog.Logger
}

// NewSimulator creates a weather simulator.
func NewSimulator(cfg SimulatorConfig) *Simulator {
	return &Simulator{logger: cfg.Logger}
}

// Forecast samples one observation per coordinate and aggregates them
// into a segment summary.
func (s *Simulator) Forecast(segmentID string, coords []geo.Coordinate, date time.Time, rng *rand.Rand) (*SegmentForecast, error) {
	if len(coords) == 0 {
		return nil, ErrNoCoordinates
	}

	s.logger.Debug().
		Str("segment_id", segmentID).
		Time("forecast_date", date).
		Int("points", len(coords)).
		Msg("generating weather forecast")

	observations := make([]Observation, 0, len(coords))
	var windSum, waveSum float64
	conditionCounts := make(map[Condition]int)

	for _, c := range coords {
		obs := s.observe(c, rng)
		windSum += obs.WindSpeedKnots
		waveSum += obs.WaveHeightM
		conditionCounts[obs.Condition]++
		observations = append(observations, obs)
	}

	avgWind := windSum / float64(len(observations))
	avgWave := waveSum / float64(len(observations))

	return &SegmentForecast{
		SegmentID:            segmentID,
		ForecastDate:         date,
		Observations:         observations,
		PredominantCondition: predominant(observations, conditionCounts),
		AvgWindSpeedKnots:    avgWind,
		AvgWaveHeightM:       avgWave,
		RiskLevel:            classify(avgWind, avgWave),
	}, nil
}

// observe generates a single synthetic observation. Temperature trends
// colder with absolute latitude; severe conditions amplify wind and
// waves and reduce visibility.
func (s *Simulator) observe(c geo.Coordinate, rng *rand.Rand) Observation {
	tempBase := baseTemperatureC - math.Abs(c.Lat)/latTemperatureDrop

	condition := conditions[rng.Intn(len(conditions))]
	severity := severityFactor(condition)

	obs := Observation{
		Lat:             c.Lat,
		Lon:             c.Lon,
		Condition:       condition,
		TemperatureC:    tempBase + uniform(rng, -5, 5),
		HumidityPercent: 40 + rng.Intn(56),
		WindSpeedKnots:  uniform(rng, 5, 30) * severity,
		WaveHeightM:     uniform(rng, 0.5, 4) * severity,
		VisibilityKM:    uniform(rng, 2, 20) / severity,
		PressureMB:      990 + rng.Intn(41),
		SeaState:        seaStates[rng.Intn(len(seaStates))],
	}

	if obs.WindSpeedKnots > warnWindKnots {
		obs.Warnings = append(obs.Warnings, WarningHighWind)
	}
	if obs.WaveHeightM > warnWaveM {
		obs.Warnings = append(obs.Warnings, WarningHighSeas)
	}
	if obs.VisibilityKM < warnVisibilityKM {
		obs.Warnings = append(obs.Warnings, WarningLowVisibility)
	}
	if condition == ConditionStormy {
		obs.Warnings = append(obs.Warnings, WarningStorm)
	}

	return obs
}

func severityFactor(c Condition) float64 {
	switch c {
	case ConditionStormy:
		return 2.5
	case ConditionHeavyRain:
		return 2.0
	case ConditionFog:
		return 1.5
	default:
		return 1.0
	}
}

func classify(avgWind, avgWave float64) risk.Level {
	switch {
	case avgWind > highRiskWindKnots || avgWave > highRiskWaveM:
		return risk.LevelHigh
	case avgWind > mediumRiskWindKnots || avgWave > mediumRiskWaveM:
		return risk.LevelMedium
	default:
		return risk.LevelLow
	}
}

// predominant returns the most frequent condition, breaking count ties
// by first occurrence in the observation order for determinism.
func predominant(observations []Observation, counts map[Condition]int) Condition {
	best := observations[0].Condition
	for _, obs := range observations {
		if counts[obs.Condition] > counts[best] {
			best = obs.Condition
		}
	}
	return best
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
