// Package weather provides the synthetic marine weather simulator.
// Outputs are a reproducible stand-in used to exercise the scoring
// pipeline, not a physically accurate forecast.
package weather

import (
	"errors"
	"time"

	"github.com/searoute/searoute/internal/risk"
)

// ErrNoCoordinates indicates a forecast was requested for a segment
// with an empty coordinate list.
var ErrNoCoordinates = errors.New("no coordinates to forecast")

// Condition represents the general weather condition.
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionPartlyCloudy Condition = "Partly Cloudy"
	ConditionOvercast     Condition = "Overcast"
	ConditionLightRain    Condition = "Light Rain"
	ConditionHeavyRain    Condition = "Heavy Rain"
	ConditionFog          Condition = "Fog"
	ConditionStormy       Condition = "Stormy"
)

// SeaState is the Douglas-style sea state label.
type SeaState string

const (
	SeaCalm      SeaState = "Calm"
	SeaSlight    SeaState = "Slight"
	SeaModerate  SeaState = "Moderate"
	SeaRough     SeaState = "Rough"
	SeaVeryRough SeaState = "Very Rough"
	SeaHigh      SeaState = "High"
)

// Warning is a discrete navigational warning, emitted independently of
// the aggregate segment risk level.
type Warning string

const (
	WarningHighWind      Warning = "HIGH_WIND"
	WarningHighSeas      Warning = "HIGH_SEAS"
	WarningLowVisibility Warning = "LOW_VISIBILITY"
	WarningStorm         Warning = "STORM"
)

// Observation is one synthetic weather sample at a coordinate.
type Observation struct {
	Lat             float64   `json:"lat"`
	Lon             float64   `json:"lon"`
	Condition       Condition `json:"condition"`
	TemperatureC    float64   `json:"temperatureCelsius"`
	HumidityPercent int       `json:"humidityPercent"`
	WindSpeedKnots  float64   `json:"windSpeedKnots"`
	WaveHeightM     float64   `json:"waveHeightMeters"`
	VisibilityKM    float64   `json:"visibilityKm"`
	PressureMB      int       `json:"pressureMb"`
	SeaState        SeaState  `json:"seaState"`
	Warnings        []Warning `json:"warnings,omitempty"`
}

// SegmentForecast aggregates per-point observations into the segment
// verdict consumed by temporal propagation and scoring.
type SegmentForecast struct {
	SegmentID            string        `json:"segmentId"`
	ForecastDate         time.Time     `json:"forecastDate"`
	Observations         []Observation `json:"observations"`
	PredominantCondition Condition     `json:"predominantCondition"`
	AvgWindSpeedKnots    float64       `json:"avgWindSpeedKnots"`
	AvgWaveHeightM       float64       `json:"avgWaveHeightMeters"`
	RiskLevel            risk.Level    `json:"riskLevel"`
}
