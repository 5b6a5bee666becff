// Package refdata holds the immutable reference tables (ports, routes,
// carriers, waypoints) and builds evaluable route candidates from them.
package refdata

import (
	"errors"

	"github.com/searoute/searoute/internal/geo"
)

// Reference data errors.
var (
	ErrCarrierNotFound = errors.New("carrier not found")
	ErrPortNotFound    = errors.New("port not found")
)

// Port is a named port location.
type Port struct {
	City string
	Code string
	Lat  float64
	Lon  float64
}

// Carrier describes a shipping carrier and its service speed.
type Carrier struct {
	ID              string  `json:"carrierId"`
	Name            string  `json:"carrierName"`
	ServiceType     string  `json:"serviceType"`
	OriginPort      string  `json:"originPort"`
	DestinationPort string  `json:"destinationPort"`
	AvgSpeedKnots   float64 `json:"avgSpeedKnots"`
}

// WaypointRecord is a waypoint as stored in reference data.
type WaypointRecord struct {
	ID       string
	Lat      float64
	Lon      float64
	Kind     geo.WaypointKind
	PortName string
}

// RouteRecord is a port-to-port route as stored in reference data.
// DistanceNM is the authoritative route distance when known; nil means
// the distance is derived from the waypoint path.
type RouteRecord struct {
	ID              string
	OriginPort      string
	DestinationPort string
	RouteType       string
	DistanceNM      *float64
	WaypointIDs     []string
}

// SkippedRoute records a matching route that could not be turned into
// a candidate, with the reason it was dropped.
type SkippedRoute struct {
	RouteID string `json:"routeId"`
	Reason  string `json:"reason"`
}
