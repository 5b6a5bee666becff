package recommend

import (
	"github.com/rs/zerolog"

	"github.com/searoute/searoute/internal/risk"
	"github.com/searoute/searoute/internal/scoring"
	"github.com/searoute/searoute/internal/voyage"
)

// Derivation thresholds.
const (
	optimalBalanceScore = 80.0

	// shortRouteNM marks a route short enough that fuel efficiency
	// alone can justify preferring it.
	shortRouteNM = 1000.0

	// maxAlternatives bounds how many fallback routes are surfaced.
	maxAlternatives = 2

	// busyEventCount is the event count above which news monitoring
	// becomes an action item.
	busyEventCount = 5
)

// SynthesizerConfig holds configuration for the synthesizer.
type SynthesizerConfig struct {
	// Logger for synthesis diagnostics.
	Logger zerolog.Logger
}

// Synthesizer turns a ranking into a structured recommendation.
// Everything it derives comes from the per-factor levels already
// computed; no new scoring happens here.
type Synthesizer struct {
	logger zerolog.Logger
}

// NewSynthesizer creates a Synthesizer.
func NewSynthesizer(cfg SynthesizerConfig) *Synthesizer {
	return &Synthesizer{logger: cfg.Logger}
}

// Synthesize builds the recommendation for a ranking: the best route
// with derived advantages and risks, up to two alternatives with
// structured diffs and consideration triggers, and action items.
func (s *Synthesizer) Synthesize(ranking []scoring.ScoredRoute) (*Recommendation, error) {
	if len(ranking) == 0 {
		return nil, ErrEmptyRanking
	}

	best := ranking[0]
	rec := &Recommendation{
		Best: BestRoute{
			RouteID:    best.Score.RouteID,
			Score:      best.Score.TotalScore,
			DistanceNM: best.Analysis.DistanceNM,
			Time:       best.Analysis.Time,
			Factors:    factorLevels(best.Analysis),
			Advantages: advantages(best),
			Risks:      riskFactors(best.Analysis),
		},
		ActionItems: actionItems(best.Analysis),
	}

	for i, alt := range ranking[1:] {
		if i >= maxAlternatives {
			break
		}
		rec.Alternatives = append(rec.Alternatives, Alternative{
			Rank:       i + 2,
			RouteID:    alt.Score.RouteID,
			Score:      alt.Score.TotalScore,
			DistanceNM: alt.Analysis.DistanceNM,
			Time:       alt.Analysis.Time,
			Comparison: Comparison{
				DistanceDeltaNM: alt.Analysis.DistanceNM - best.Analysis.DistanceNM,
				TimeDeltaHours:  alt.Analysis.Time.TotalHours - best.Analysis.Time.TotalHours,
				ScoreDelta:      alt.Score.TotalScore - best.Score.TotalScore,
				Alternative:     factorLevels(alt.Analysis),
				Best:            factorLevels(best.Analysis),
			},
			ConsiderWhen: triggers(alt.Analysis),
		})
	}

	s.logger.Debug().
		Str("best_route", rec.Best.RouteID).
		Int("alternatives", len(rec.Alternatives)).
		Msg("synthesized recommendation")

	return rec, nil
}

func factorLevels(a *voyage.RouteAnalysis) FactorLevels {
	return FactorLevels{
		Weather: a.Weather.Overall,
		Traffic: a.Traffic.Overall,
		Events:  a.Events.Overall,
	}
}

func advantages(route scoring.ScoredRoute) []Advantage {
	var out []Advantage
	if route.Analysis.Weather.Overall == risk.LevelLow {
		out = append(out, AdvantageFavorableWeather)
	}
	if route.Analysis.Traffic.Overall == risk.LevelLow {
		out = append(out, AdvantageLowTraffic)
	}
	if route.Analysis.Events.Overall == risk.LevelLow {
		out = append(out, AdvantageNoSecurityConcerns)
	}
	if route.Score.TotalScore > optimalBalanceScore {
		out = append(out, AdvantageOptimalBalance)
	}
	return out
}

func riskFactors(a *voyage.RouteAnalysis) []RiskFactor {
	var out []RiskFactor
	if a.Weather.Overall.AtLeast(risk.LevelMedium) {
		out = append(out, RiskFactor{
			Factor:           voyage.FactorWeather,
			Level:            a.Weather.Overall,
			AffectedSegments: a.Weather.RiskSegments,
		})
	}
	if a.Traffic.Overall.AtLeast(risk.LevelMedium) {
		out = append(out, RiskFactor{
			Factor:           voyage.FactorTraffic,
			Level:            a.Traffic.Overall,
			AffectedSegments: a.Traffic.CongestedSegments,
		})
	}
	if a.Events.Overall.AtLeast(risk.LevelMedium) {
		out = append(out, RiskFactor{
			Factor:      voyage.FactorEvent,
			Level:       a.Events.Overall,
			TotalEvents: a.Events.TotalEvents,
		})
	}
	return out
}

// triggers derives the conditions under which an alternative is worth
// preferring: a clean factor on the alternative covers the caller's
// matching sensitivity, and a short route covers fuel priority.
func triggers(a *voyage.RouteAnalysis) []Trigger {
	var out []Trigger
	if a.Weather.Overall == risk.LevelLow {
		out = append(out, TriggerWeatherSensitivityHigh)
	}
	if a.Traffic.Overall == risk.LevelLow {
		out = append(out, TriggerScheduleFlexibilityLimited)
	}
	if a.DistanceNM < shortRouteNM {
		out = append(out, TriggerFuelEfficiencyPriority)
	}
	if len(out) == 0 {
		out = append(out, TriggerBackupOption)
	}
	return out
}

func actionItems(a *voyage.RouteAnalysis) []ActionItem {
	items := []ActionItem{
		ActionConfirmVesselReadiness,
		ActionBriefCrewOnRoute,
		ActionEstablishCommsSchedule,
	}

	if a.Weather.Overall.AtLeast(risk.LevelMedium) {
		items = append(items, ActionMonitorWeatherUpdates, ActionPrepareForHeavyWeather)
	}
	if a.Traffic.Overall.AtLeast(risk.LevelMedium) {
		items = append(items, ActionPlanReducedSpeed, ActionEnhancedBridgeWatch)
	}
	if a.Events.TotalEvents > busyEventCount {
		items = append(items, ActionReviewSecurityProtocols, ActionMonitorNewsForRouteAreas)
	}

	return items
}
