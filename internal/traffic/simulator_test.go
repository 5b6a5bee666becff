package traffic_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searoute/searoute/internal/geo"
	"github.com/searoute/searoute/internal/risk"
	"github.com/searoute/searoute/internal/traffic"
)

func laneCoords(lat float64) []geo.Coordinate {
	return []geo.Coordinate{
		{Lat: lat, Lon: 10},
		{Lat: lat, Lon: 12},
		{Lat: lat, Lon: 14},
	}
}

func TestAnalyze_EmptyCoordinates(t *testing.T) {
	sim := traffic.NewSimulator(traffic.SimulatorConfig{})

	_, err := sim.Analyze("seg_1", nil, time.Now(), rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, traffic.ErrNoCoordinates)
}

func TestAnalyze_MajorLaneBusierThanOpenOcean(t *testing.T) {
	sim := traffic.NewSimulator(traffic.SimulatorConfig{})

	// Equatorial lane: base 50, perturbation within [-10, 20].
	for seed := int64(0); seed < 20; seed++ {
		analysis, err := sim.Analyze("seg_lane", laneCoords(5), time.Now(), rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, analysis.TotalVessels24h, 40, "seed=%d", seed)
		assert.LessOrEqual(t, analysis.TotalVessels24h, 70, "seed=%d", seed)
	}

	// Open ocean at 50N: base 20.
	for seed := int64(0); seed < 20; seed++ {
		analysis, err := sim.Analyze("seg_ocean", laneCoords(50), time.Now(), rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, analysis.TotalVessels24h, 10, "seed=%d", seed)
		assert.LessOrEqual(t, analysis.TotalVessels24h, 40, "seed=%d", seed)
	}
}

func TestAnalyze_CongestionThresholds(t *testing.T) {
	sim := traffic.NewSimulator(traffic.SimulatorConfig{})

	for seed := int64(0); seed < 50; seed++ {
		analysis, err := sim.Analyze("seg_1", laneCoords(35), time.Now(), rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		switch {
		case analysis.TotalVessels24h > 60:
			assert.Equal(t, risk.LevelHigh, analysis.Congestion, "seed=%d", seed)
		case analysis.TotalVessels24h > 40:
			assert.Equal(t, risk.LevelMedium, analysis.Congestion, "seed=%d", seed)
		default:
			assert.Equal(t, risk.LevelLow, analysis.Congestion, "seed=%d", seed)
		}
	}
}

func TestAnalyze_SpeedReductionMatchesCongestion(t *testing.T) {
	sim := traffic.NewSimulator(traffic.SimulatorConfig{})

	for seed := int64(0); seed < 50; seed++ {
		analysis, err := sim.Analyze("seg_1", laneCoords(0), time.Now(), rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		switch analysis.Congestion {
		case risk.LevelHigh:
			assert.GreaterOrEqual(t, analysis.SpeedReductionKnots, 2.0, "seed=%d", seed)
			assert.LessOrEqual(t, analysis.SpeedReductionKnots, 5.0, "seed=%d", seed)
		case risk.LevelMedium:
			assert.GreaterOrEqual(t, analysis.SpeedReductionKnots, 0.5, "seed=%d", seed)
			assert.LessOrEqual(t, analysis.SpeedReductionKnots, 2.0, "seed=%d", seed)
		default:
			assert.Zero(t, analysis.SpeedReductionKnots, "seed=%d", seed)
		}
	}
}

func TestAnalyze_DensityPerTenNauticalMiles(t *testing.T) {
	sim := traffic.NewSimulator(traffic.SimulatorConfig{})

	analysis, err := sim.Analyze("seg_1", laneCoords(0), time.Now(), rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	want := float64(analysis.TotalVessels24h) / (3 * 10)
	assert.InDelta(t, want, analysis.DensityPer10NM, 1e-9)
}

func TestAnalyze_VesselMixAndHourlyShape(t *testing.T) {
	sim := traffic.NewSimulator(traffic.SimulatorConfig{})

	analysis, err := sim.Analyze("seg_1", laneCoords(0), time.Now(), rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	require.Len(t, analysis.VesselsByType, 5)
	assert.Equal(t, int(float64(analysis.TotalVessels24h)*0.40), analysis.VesselsByType[traffic.VesselContainer])
	assert.Equal(t, int(float64(analysis.TotalVessels24h)*0.05), analysis.VesselsByType[traffic.VesselOther])

	require.Len(t, analysis.Hourly, 24)
	for i, h := range analysis.Hourly {
		assert.Equal(t, i, h.Hour)
		assert.GreaterOrEqual(t, h.VesselCount, 0)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	sim := traffic.NewSimulator(traffic.SimulatorConfig{})
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	a, err := sim.Analyze("seg_1", laneCoords(35), date, rand.New(rand.NewSource(17)))
	require.NoError(t, err)
	b, err := sim.Analyze("seg_1", laneCoords(35), date, rand.New(rand.NewSource(17)))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
