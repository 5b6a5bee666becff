// Package scoring normalizes competing route analyses into comparable
// penalties and produces a deterministic ranking.
package scoring

import (
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/searoute/searoute/internal/risk"
	"github.com/searoute/searoute/internal/voyage"
)

// ErrNoCandidates indicates the scorer was called with an empty
// candidate set.
var ErrNoCandidates = errors.New("no candidates to score")

// Penalty weights. Distance and time penalties are relative to the
// best candidate in the set; the factor penalties are categorical.
const (
	distancePenaltyWeight = 10.0
	timePenaltyWeight     = 15.0

	weatherPenaltyHigh   = 20.0
	weatherPenaltyMedium = 10.0

	trafficPenaltyHigh   = 15.0
	trafficPenaltyMedium = 7.0

	eventPenaltyCritical = 30.0
	eventPenaltyHigh     = 20.0
	eventPenaltyMedium   = 10.0

	maxScore = 100.0
)

// RouteScore is the per-route penalty breakdown and total score.
// Derived data: a new RouteScore replaces the old whenever the
// candidate set changes.
type RouteScore struct {
	RouteID         string  `json:"routeId"`
	DistancePenalty float64 `json:"distancePenalty"`
	TimePenalty     float64 `json:"timePenalty"`
	WeatherPenalty  float64 `json:"weatherPenalty"`
	TrafficPenalty  float64 `json:"trafficPenalty"`
	EventPenalty    float64 `json:"eventPenalty"`
	TotalScore      float64 `json:"totalScore"`
}

// ScoredRoute pairs a route analysis with its score.
type ScoredRoute struct {
	Analysis *voyage.RouteAnalysis `json:"analysis"`
	Score    RouteScore            `json:"score"`
}

// ScorerConfig holds configuration for the scorer.
type ScorerConfig struct {
	// Logger for scoring diagnostics.
	Logger zerolog.Logger
}

// Scorer ranks fully analyzed route candidates.
type Scorer struct {
	logger zerolog.Logger
}

// NewScorer creates a Scorer.
func NewScorer(cfg ScorerConfig) *Scorer {
	return &Scorer{logger: cfg.Logger}
}

// Score computes a RouteScore for every candidate against the shared
// normalization baseline of the set and returns the ranking: total
// score descending, ties broken by ascending distance then route id.
func (s *Scorer) Score(analyses []*voyage.RouteAnalysis) ([]ScoredRoute, error) {
	if len(analyses) == 0 {
		return nil, ErrNoCandidates
	}

	minDistance := analyses[0].DistanceNM
	minTime := analyses[0].Time.TotalHours
	for _, a := range analyses[1:] {
		if a.DistanceNM < minDistance {
			minDistance = a.DistanceNM
		}
		if a.Time.TotalHours < minTime {
			minTime = a.Time.TotalHours
		}
	}

	ranking := make([]ScoredRoute, 0, len(analyses))
	for _, a := range analyses {
		score := RouteScore{
			RouteID:         a.RouteID,
			DistancePenalty: relativePenalty(a.DistanceNM, minDistance, distancePenaltyWeight),
			TimePenalty:     relativePenalty(a.Time.TotalHours, minTime, timePenaltyWeight),
			WeatherPenalty:  weatherPenalty(a.Weather.Overall),
			TrafficPenalty:  trafficPenalty(a.Traffic.Overall),
			EventPenalty:    eventPenalty(a.Events.Overall),
		}

		total := maxScore -
			score.DistancePenalty -
			score.TimePenalty -
			score.WeatherPenalty -
			score.TrafficPenalty -
			score.EventPenalty
		if total < 0 {
			total = 0
		}
		score.TotalScore = total

		s.logger.Debug().
			Str("route_id", a.RouteID).
			Float64("total_score", score.TotalScore).
			Float64("distance_penalty", score.DistancePenalty).
			Float64("time_penalty", score.TimePenalty).
			Msg("scored route")

		ranking = append(ranking, ScoredRoute{Analysis: a, Score: score})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		a, b := ranking[i], ranking[j]
		if a.Score.TotalScore != b.Score.TotalScore {
			return a.Score.TotalScore > b.Score.TotalScore
		}
		if a.Analysis.DistanceNM != b.Analysis.DistanceNM {
			return a.Analysis.DistanceNM < b.Analysis.DistanceNM
		}
		return a.Score.RouteID < b.Score.RouteID
	})

	return ranking, nil
}

// relativePenalty is zero for the minimum-value candidate by
// construction and grows with the relative excess over it.
func relativePenalty(value, min, weight float64) float64 {
	if min <= 0 {
		return 0
	}
	return (value - min) / min * weight
}

func weatherPenalty(level risk.Level) float64 {
	switch level {
	case risk.LevelHigh:
		return weatherPenaltyHigh
	case risk.LevelMedium:
		return weatherPenaltyMedium
	default:
		return 0
	}
}

func trafficPenalty(level risk.Level) float64 {
	switch level {
	case risk.LevelHigh:
		return trafficPenaltyHigh
	case risk.LevelMedium:
		return trafficPenaltyMedium
	default:
		return 0
	}
}

func eventPenalty(level risk.Level) float64 {
	switch level {
	case risk.LevelCritical:
		return eventPenaltyCritical
	case risk.LevelHigh:
		return eventPenaltyHigh
	case risk.LevelMedium:
		return eventPenaltyMedium
	default:
		return 0
	}
}
