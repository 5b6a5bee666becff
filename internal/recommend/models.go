// Package recommend derives a structured recommendation from a scored
// ranking. It emits data only: advantages, risks, triggers, and
// action items are typed codes for an external presentation layer to
// render into language; no prose is generated here.
package recommend

import (
	"errors"

	"github.com/searoute/searoute/internal/risk"
	"github.com/searoute/searoute/internal/voyage"
)

// ErrEmptyRanking indicates there are no scored routes to recommend.
var ErrEmptyRanking = errors.New("empty ranking")

// Advantage is a derived strength of a route.
type Advantage string

const (
	AdvantageFavorableWeather   Advantage = "FAVORABLE_WEATHER"
	AdvantageLowTraffic         Advantage = "LOW_TRAFFIC"
	AdvantageNoSecurityConcerns Advantage = "NO_SECURITY_CONCERNS"
	AdvantageOptimalBalance     Advantage = "OPTIMAL_BALANCE"
)

// Trigger names a caller condition under which an alternative route
// should be preferred over the best route.
type Trigger string

const (
	TriggerWeatherSensitivityHigh      Trigger = "WEATHER_SENSITIVITY_HIGH"
	TriggerScheduleFlexibilityLimited  Trigger = "SCHEDULE_FLEXIBILITY_LIMITED"
	TriggerFuelEfficiencyPriority      Trigger = "FUEL_EFFICIENCY_PRIORITY"
	TriggerBackupOption                Trigger = "BACKUP_OPTION"
)

// ActionItem is a recommended operational follow-up.
type ActionItem string

const (
	ActionConfirmVesselReadiness   ActionItem = "CONFIRM_VESSEL_READINESS"
	ActionBriefCrewOnRoute         ActionItem = "BRIEF_CREW_ON_ROUTE"
	ActionEstablishCommsSchedule   ActionItem = "ESTABLISH_COMMS_SCHEDULE"
	ActionMonitorWeatherUpdates    ActionItem = "MONITOR_WEATHER_UPDATES"
	ActionPrepareForHeavyWeather   ActionItem = "PREPARE_FOR_HEAVY_WEATHER"
	ActionPlanReducedSpeed         ActionItem = "PLAN_REDUCED_SPEED"
	ActionEnhancedBridgeWatch      ActionItem = "ENHANCED_BRIDGE_WATCH"
	ActionReviewSecurityProtocols  ActionItem = "REVIEW_SECURITY_PROTOCOLS"
	ActionMonitorNewsForRouteAreas ActionItem = "MONITOR_NEWS_FOR_ROUTE_AREAS"
)

// RiskFactor is a derived weakness of a route, attributed to one
// condition factor.
type RiskFactor struct {
	Factor           voyage.Factor `json:"factor"`
	Level            risk.Level    `json:"level"`
	AffectedSegments int           `json:"affectedSegments,omitempty"`
	TotalEvents      int           `json:"totalEvents,omitempty"`
}

// FactorLevels is the per-factor risk snapshot of one route.
type FactorLevels struct {
	Weather risk.Level `json:"weather"`
	Traffic risk.Level `json:"traffic"`
	Events  risk.Level `json:"events"`
}

// BestRoute describes the top-ranked route.
type BestRoute struct {
	RouteID    string               `json:"routeId"`
	Score      float64              `json:"score"`
	DistanceNM float64              `json:"distanceNm"`
	Time       voyage.TimeBreakdown `json:"estimatedTime"`
	Factors    FactorLevels         `json:"factors"`
	Advantages []Advantage          `json:"keyAdvantages"`
	Risks      []RiskFactor         `json:"potentialRisks"`
}

// Comparison is the structured diff of an alternative against the
// best route.
type Comparison struct {
	DistanceDeltaNM float64      `json:"distanceDifferenceNm"`
	TimeDeltaHours  float64      `json:"timeDifferenceHours"`
	ScoreDelta      float64      `json:"scoreDifference"`
	Alternative     FactorLevels `json:"alternativeFactors"`
	Best            FactorLevels `json:"bestFactors"`
}

// Alternative describes one fallback route.
type Alternative struct {
	Rank         int                  `json:"rank"`
	RouteID      string               `json:"routeId"`
	Score        float64              `json:"score"`
	DistanceNM   float64              `json:"distanceNm"`
	Time         voyage.TimeBreakdown `json:"estimatedTime"`
	Comparison   Comparison           `json:"comparisonToBest"`
	ConsiderWhen []Trigger            `json:"whenToConsider"`
}

// Recommendation is the complete structured recommendation set.
type Recommendation struct {
	Best         BestRoute     `json:"bestRoute"`
	Alternatives []Alternative `json:"alternativeRoutes"`
	ActionItems  []ActionItem  `json:"actionItems"`
}
