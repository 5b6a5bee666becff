// Package traffic provides the synthetic maritime traffic simulator.
package traffic

import (
	"errors"
	"time"

	"github.com/searoute/searoute/internal/risk"
)

// ErrNoCoordinates indicates an analysis was requested for a segment
// with an empty coordinate list.
var ErrNoCoordinates = errors.New("no coordinates to analyze")

// VesselType is a broad vessel category used in the traffic mix.
type VesselType string

const (
	VesselContainer    VesselType = "Container"
	VesselTanker       VesselType = "Tanker"
	VesselBulkCarrier  VesselType = "Bulk Carrier"
	VesselGeneralCargo VesselType = "General Cargo"
	VesselOther        VesselType = "Other"
)

// Alert is a discrete navigational traffic alert.
type Alert string

const (
	AlertHighCollisionRisk Alert = "HIGH_COLLISION_RISK"
	AlertHighCongestion    Alert = "HIGH_CONGESTION"
	AlertDenseTraffic      Alert = "DENSE_TRAFFIC"
)

// HourlyTraffic is the simulated vessel count for one hour of the day.
type HourlyTraffic struct {
	Hour        int  `json:"hour"`
	VesselCount int  `json:"vesselCount"`
	Congested   bool `json:"congested"`
}

// Analysis is the traffic verdict for one route segment.
type Analysis struct {
	SegmentID           string             `json:"segmentId"`
	AnalysisDate        time.Time          `json:"analysisDate"`
	TotalVessels24h     int                `json:"totalVessels24h"`
	VesselsByType       map[VesselType]int `json:"vesselsByType"`
	Congestion          risk.Level         `json:"congestionLevel"`
	DensityPer10NM      float64            `json:"trafficDensity"`
	SpeedReductionKnots float64            `json:"avgSpeedReductionKnots"`
	CollisionRisk       risk.Level         `json:"collisionRisk"`
	Hourly              []HourlyTraffic    `json:"hourlyDistribution"`
	Alerts              []Alert            `json:"alerts,omitempty"`
}
