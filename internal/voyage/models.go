// Package voyage walks a route's segments in departure order,
// sampling conditions at the projected arrival time of each segment
// and propagating cumulative transit time forward.
package voyage

import (
	"errors"
	"time"

	"github.com/searoute/searoute/internal/news"
	"github.com/searoute/searoute/internal/risk"
	"github.com/searoute/searoute/internal/weather"
)

// ErrAllSegmentsFailed indicates every segment of a route failed
// condition simulation; the route cannot be analyzed.
var ErrAllSegmentsFailed = errors.New("all segments failed simulation")

// Factor identifies a condition factor.
type Factor string

const (
	FactorWeather Factor = "Weather"
	FactorTraffic Factor = "Traffic"
	FactorEvent   Factor = "Event"
)

// Effect quantifies a condition's impact on transit.
type Effect struct {
	DelayHours          float64 `json:"delayHours"`
	SpeedReductionKnots float64 `json:"speedReductionKnots"`
	RiskIncreasePercent float64 `json:"riskIncreasePercent"`
}

// ConditionReport is the per-segment, per-factor verdict. Produced
// fresh for each route evaluation and never mutated afterwards.
type ConditionReport struct {
	SegmentID  string     `json:"segmentId"`
	Factor     Factor     `json:"factor"`
	ObservedAt time.Time  `json:"observedAt"`
	Severity   risk.Level `json:"severity"`
	Effect     Effect     `json:"effect"`
	Degraded   bool       `json:"degraded,omitempty"`
}

// TimeProfileEntry records when the vessel is projected to reach a
// segment and at what effective speed it transits it. HoursFromDeparture
// is cumulative and non-decreasing across the segments of one route.
type TimeProfileEntry struct {
	SegmentID           string  `json:"segmentId"`
	HoursFromDeparture  float64 `json:"hoursFromDeparture"`
	EffectiveSpeedKnots float64 `json:"effectiveSpeedKnots"`
}

// TimeBreakdown is the route-level transit time calculation. The
// weather and traffic delays are a coarse correction layered on top of
// the per-segment effective-speed walk, not a replacement for it.
type TimeBreakdown struct {
	BaseHours           float64 `json:"baseTimeHours"`
	WeatherDelayHours   float64 `json:"weatherDelayHours"`
	TrafficDelayHours   float64 `json:"trafficDelayHours"`
	TotalHours          float64 `json:"totalTimeHours"`
	TotalDays           float64 `json:"totalTimeDays"`
	EffectiveSpeedKnots float64 `json:"effectiveSpeedKnots"`
}

// WeatherSummary aggregates weather risk across a route's segments.
type WeatherSummary struct {
	RiskSegments       int                 `json:"riskSegments"`
	Overall            risk.Level          `json:"overallRisk"`
	CriticalConditions []weather.Condition `json:"criticalConditions,omitempty"`
}

// TrafficSummary aggregates congestion across a route's segments.
type TrafficSummary struct {
	CongestedSegments int        `json:"congestedSegments"`
	Overall           risk.Level `json:"overallCongestion"`
	PeakSegments      []string   `json:"peakTrafficSegments,omitempty"`
}

// RouteAnalysis is the complete per-route evaluation result consumed
// by the scorer.
type RouteAnalysis struct {
	RouteID          string               `json:"routeId"`
	RouteType        string               `json:"routeType"`
	DistanceNM       float64              `json:"distanceNm"`
	SegmentCount     int                  `json:"segments"`
	Time             TimeBreakdown        `json:"timeCalculation"`
	Weather          WeatherSummary       `json:"weatherAnalysis"`
	Traffic          TrafficSummary       `json:"trafficAnalysis"`
	Events           news.RouteAssessment `json:"newsAnalysis"`
	Reports          []ConditionReport    `json:"conditionReports"`
	Profile          []TimeProfileEntry   `json:"timeProfile"`
	DegradedSegments []string             `json:"degradedSegments,omitempty"`
}
