package traffic

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/searoute/searoute/internal/geo"
	"github.com/searoute/searoute/internal/risk"
)

// Traffic model constants. The latitude bands approximate the
// equatorial, Mediterranean/Atlantic, and Cape shipping lanes.
const (
	majorLaneBase = 50
	openOceanBase = 20

	highCongestionVessels   = 60
	mediumCongestionVessels = 40

	highCollisionDensity   = 8.0
	mediumCollisionDensity = 5.0
	denseTrafficDensity    = 6.0
)

// vesselMix is the assumed share of each vessel type in the traffic.
var vesselMix = []struct {
	Type       VesselType
	Proportion float64
}{
	{VesselContainer, 0.40},
	{VesselTanker, 0.25},
	{VesselBulkCarrier, 0.20},
	{VesselGeneralCargo, 0.10},
	{VesselOther, 0.05},
}

// SimulatorConfig holds configuration for the traffic simulator.
type SimulatorConfig struct {
	// Logger for simulation diagnostics.
	Logger zerolog.Logger
}

// Simulator generates synthetic maritime traffic analyses. Stateless;
// randomness comes from the rng passed per call.
type Simulator struct {
	logger zerolog.Logger
}

// NewSimulator creates a traffic simulator.
func NewSimulator(cfg SimulatorConfig) *Simulator {
	return &Simulator{logger: cfg.Logger}
}

// Analyze produces the traffic verdict for a segment on a projected
// date.
func (s *Simulator) Analyze(segmentID string, coords []geo.Coordinate, date time.Time, rng *rand.Rand) (*Analysis, error) {
	if len(coords) == 0 {
		return nil, ErrNoCoordinates
	}

	s.logger.Debug().
		Str("segment_id", segmentID).
		Time("analysis_date", date).
		Msg("analyzing maritime traffic")

	var latSum float64
	for _, c := range coords {
		latSum += c.Lat
	}
	avgLat := latSum / float64(len(coords))

	base := openOceanBase
	if inMajorLane(avgLat) {
		base = majorLaneBase
	}

	// Perturbation range matches the simulated day-to-day variance.
	totalVessels := base + rng.Intn(31) - 10

	congestion := risk.LevelLow
	switch {
	case totalVessels > highCongestionVessels:
		congestion = risk.LevelHigh
	case totalVessels > mediumCongestionVessels:
		congestion = risk.LevelMedium
	}

	density := float64(totalVessels) / (float64(len(coords)) * 10)

	var speedReduction float64
	switch congestion {
	case risk.LevelHigh:
		speedReduction = uniform(rng, 2, 5)
	case risk.LevelMedium:
		speedReduction = uniform(rng, 0.5, 2)
	}

	collisionRisk := risk.LevelLow
	if density > mediumCollisionDensity && congestion == risk.LevelHigh {
		collisionRisk = risk.LevelMedium
	}
	if density > highCollisionDensity {
		collisionRisk = risk.LevelHigh
	}

	byType := make(map[VesselType]int, len(vesselMix))
	for _, m := range vesselMix {
		byType[m.Type] = int(float64(totalVessels) * m.Proportion)
	}

	analysis := &Analysis{
		SegmentID:           segmentID,
		AnalysisDate:        date,
		TotalVessels24h:     totalVessels,
		VesselsByType:       byType,
		Congestion:          congestion,
		DensityPer10NM:      density,
		SpeedReductionKnots: speedReduction,
		CollisionRisk:       collisionRisk,
		Hourly:              hourlyDistribution(totalVessels, rng),
	}

	if collisionRisk == risk.LevelHigh {
		analysis.Alerts = append(analysis.Alerts, AlertHighCollisionRisk)
	}
	if congestion == risk.LevelHigh {
		analysis.Alerts = append(analysis.Alerts, AlertHighCongestion)
	}
	if density > denseTrafficDensity {
		analysis.Alerts = append(analysis.Alerts, AlertDenseTraffic)
	}

	return analysis, nil
}

// inMajorLane reports whether the average latitude falls in one of the
// high-traffic bands.
func inMajorLane(lat float64) bool {
	return (lat > -10 && lat < 10) ||
		(lat > 30 && lat < 40) ||
		(lat > -35 && lat < -25)
}

// hourlyDistribution spreads the 24h vessel count over the day with a
// business-hours peak. Audit detail only; the verdict fields above are
// what propagation and scoring consume.
func hourlyDistribution(totalVessels int, rng *rand.Rand) []HourlyTraffic {
	hourly := make([]HourlyTraffic, 0, 24)
	for hour := 0; hour < 24; hour++ {
		multiplier := 1.0
		switch {
		case hour >= 6 && hour <= 18:
			multiplier = 1.2
		case hour >= 22 || hour <= 4:
			multiplier = 0.7
		}

		count := int(float64(totalVessels) / 24 * multiplier * uniform(rng, 0.8, 1.2))
		hourly = append(hourly, HourlyTraffic{
			Hour:        hour,
			VesselCount: count,
			Congested:   float64(count) > float64(totalVessels)/20,
		})
	}
	return hourly
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
