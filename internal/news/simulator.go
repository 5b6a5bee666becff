package news

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/searoute/searoute/internal/geo"
	"github.com/searoute/searoute/internal/risk"
)

// Event count bounds per segment.
const (
	minEventsPerSegment = 2
	maxEventsPerSegment = 5
)

// categoryHeadlines holds the fixed headline pool per category.
var categoryHeadlines = []struct {
	Category  Category
	Headlines []string
}{
	{CategoryGeopolitical, []string{
		"Increased piracy activity reported",
		"Naval exercises announced",
		"New shipping sanctions imposed",
		"Port security alert issued",
	}},
	{CategoryNatural, []string{
		"Tropical storm formation detected",
		"Severe weather warning issued",
		"Tsunami watch in effect",
		"Hurricane tracking update",
	}},
	{CategoryMaritime, []string{
		"Container ship collision reported",
		"Major port congestion developing",
		"Oil spill cleanup underway",
		"Search and rescue operation ongoing",
	}},
	{CategoryEconomic, []string{
		"Port workers strike announced",
		"New cargo restrictions implemented",
		"Fuel price surge affecting operations",
		"Trade route disruption expected",
	}},
	{CategoryInfrastructure, []string{
		"Canal maintenance scheduled",
		"Port expansion causing delays",
		"Navigation channel dredging",
		"Terminal equipment failure",
	}},
}

// severityWeights is the fixed draw distribution for event severity.
var severityWeights = []struct {
	Level  risk.Level
	Weight float64
}{
	{risk.LevelLow, 0.4},
	{risk.LevelMedium, 0.3},
	{risk.LevelHigh, 0.2},
	{risk.LevelCritical, 0.1},
}

// impactBySeverity is the base effect per severity tier, before
// category multipliers.
var impactBySeverity = map[risk.Level]Impact{
	risk.LevelLow:      {DelayHours: 0.5, SpeedReductionKnots: 0, RiskIncreasePercent: 5},
	risk.LevelMedium:   {DelayHours: 2, SpeedReductionKnots: 2, RiskIncreasePercent: 15},
	risk.LevelHigh:     {DelayHours: 6, SpeedReductionKnots: 5, RiskIncreasePercent: 30},
	risk.LevelCritical: {DelayHours: 24, SpeedReductionKnots: 10, RiskIncreasePercent: 50},
}

// affectedRadiusNM maps severity to the impacted radius.
var affectedRadiusNM = map[risk.Level]float64{
	risk.LevelLow:      50,
	risk.LevelMedium:   100,
	risk.LevelHigh:     200,
	risk.LevelCritical: 500,
}

// SimulatorConfig holds configuration for the event simulator.
type SimulatorConfig struct {
	// Logger for simulation diagnostics.
	Logger zerolog.Logger

	// LookbackDays bounds how far before the analysis date generated
	// events may have started. Default: 7.
	LookbackDays int
}

// Simulator generates synthetic maritime events for route segments.
// Stateless; randomness comes from the rng passed per call.
type Simulator struct {
	logger       zerolog.Logger
	lookbackDays int
}

// NewSimulator creates an event simulator.
func NewSimulator(cfg SimulatorConfig) *Simulator {
	lookback := cfg.LookbackDays
	if lookback <= 0 {
		lookback = 7
	}
	return &Simulator{logger: cfg.Logger, lookbackDays: lookback}
}

// Generate produces 2-5 events for a segment around the given date.
func (s *Simulator) Generate(segmentID string, coords []geo.Coordinate, date time.Time, rng *rand.Rand) ([]Event, error) {
	if len(coords) == 0 {
		return nil, ErrNoCoordinates
	}

	var latSum, lonSum float64
	for _, c := range coords {
		latSum += c.Lat
		lonSum += c.Lon
	}
	centerLat := latSum / float64(len(coords))
	centerLon := lonSum / float64(len(coords))

	count := minEventsPerSegment + rng.Intn(maxEventsPerSegment-minEventsPerSegment+1)

	s.logger.Debug().
		Str("segment_id", segmentID).
		Time("analysis_date", date).
		Int("events", count).
		Msg("generating segment events")

	events := make([]Event, 0, count)
	for i := 0; i < count; i++ {
		events = append(events, s.generateEvent(segmentID, centerLat, centerLon, date, rng))
	}

	return events, nil
}

func (s *Simulator) generateEvent(segmentID string, centerLat, centerLon float64, date time.Time, rng *rand.Rand) Event {
	pool := categoryHeadlines[rng.Intn(len(categoryHeadlines))]
	headline := pool.Headlines[rng.Intn(len(pool.Headlines))]

	daysAgo := rng.Intn(s.lookbackDays + 1)
	eventDate := date.AddDate(0, 0, -daysAgo)

	severity := drawSeverity(rng)

	durationDays := 1 + rng.Intn(7)
	if severity == risk.LevelHigh || severity == risk.LevelCritical {
		durationDays = 3 + rng.Intn(12)
	}

	return Event{
		ID:               fmt.Sprintf("news_%s_%d", segmentID, 1000+rng.Intn(9000)),
		SegmentID:        segmentID,
		Date:             eventDate,
		Category:         pool.Category,
		Headline:         headline,
		Severity:         severity,
		Lat:              centerLat + uniform(rng, -2, 2),
		Lon:              centerLon + uniform(rng, -2, 2),
		AffectedRadiusNM: affectedRadiusNM[severity],
		StartDate:        eventDate,
		EndDate:          eventDate.AddDate(0, 0, durationDays),
		DurationDays:     durationDays,
		Impact:           assessImpact(severity, pool.Category),
	}
}

// assessImpact applies the category multipliers to the base severity
// impact: natural events amplify speed reduction, geopolitical events
// amplify risk, infrastructure events double delay.
func assessImpact(severity risk.Level, category Category) Impact {
	impact := impactBySeverity[severity]

	switch category {
	case CategoryNatural:
		impact.SpeedReductionKnots *= 1.5
	case CategoryGeopolitical:
		impact.RiskIncreasePercent *= 1.5
	case CategoryInfrastructure:
		impact.DelayHours *= 2
	}

	impact.Viability = ViabilityViable
	if severity == risk.LevelHigh || severity == risk.LevelCritical {
		impact.Viability = ViabilityCompromised
	}

	return impact
}

func drawSeverity(rng *rand.Rand) risk.Level {
	draw := rng.Float64()
	var cumulative float64
	for _, sw := range severityWeights {
		cumulative += sw.Weight
		if draw < cumulative {
			return sw.Level
		}
	}
	return severityWeights[len(severityWeights)-1].Level
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
