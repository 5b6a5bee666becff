// Package news provides the synthetic maritime event simulator and the
// route-level event risk assessment.
package news

import (
	"errors"
	"time"

	"github.com/searoute/searoute/internal/risk"
)

// ErrNoCoordinates indicates events were requested for a segment with
// an empty coordinate list.
var ErrNoCoordinates = errors.New("no coordinates for event generation")

// Category classifies an event by its domain.
type Category string

const (
	CategoryGeopolitical   Category = "geopolitical"
	CategoryNatural        Category = "natural"
	CategoryMaritime       Category = "maritime"
	CategoryEconomic       Category = "economic"
	CategoryInfrastructure Category = "infrastructure"
)

// Viability states whether a route remains viable given an event.
type Viability string

const (
	ViabilityViable      Viability = "Viable"
	ViabilityCompromised Viability = "Compromised"
)

// Impact quantifies an event's effect on transit.
type Impact struct {
	DelayHours          float64   `json:"estimatedDelayHours"`
	SpeedReductionKnots float64   `json:"speedReductionKnots"`
	RiskIncreasePercent float64   `json:"riskIncreasePercent"`
	Viability           Viability `json:"routeViability"`
}

// Event is one discrete simulated event affecting a segment.
type Event struct {
	ID               string     `json:"id"`
	SegmentID        string     `json:"segmentId"`
	Date             time.Time  `json:"date"`
	Category         Category   `json:"category"`
	Headline         string     `json:"headline"`
	Severity         risk.Level `json:"severity"`
	Lat              float64    `json:"latitude"`
	Lon              float64    `json:"longitude"`
	AffectedRadiusNM float64    `json:"affectedRadiusNm"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          time.Time  `json:"endDate"`
	DurationDays     int        `json:"durationDays"`
	Impact           Impact     `json:"impact"`
}

// RouteAssessment aggregates events across all segments of a route.
type RouteAssessment struct {
	TotalEvents int                `json:"totalEvents"`
	BySeverity  map[risk.Level]int `json:"eventsBySeverity"`
	Overall     risk.Level         `json:"overallRiskAssessment"`
}

// Assess derives the route-level event risk from a set of events:
// Critical if any Critical event exists, High if more than two
// High-severity events, Medium if any High event, else Low.
func Assess(events []Event) RouteAssessment {
	bySeverity := map[risk.Level]int{
		risk.LevelLow:      0,
		risk.LevelMedium:   0,
		risk.LevelHigh:     0,
		risk.LevelCritical: 0,
	}
	for _, e := range events {
		bySeverity[e.Severity]++
	}

	overall := risk.LevelLow
	switch {
	case bySeverity[risk.LevelCritical] > 0:
		overall = risk.LevelCritical
	case bySeverity[risk.LevelHigh] > 2:
		overall = risk.LevelHigh
	case bySeverity[risk.LevelHigh] > 0:
		overall = risk.LevelMedium
	}

	return RouteAssessment{
		TotalEvents: len(events),
		BySeverity:  bySeverity,
		Overall:     overall,
	}
}
