// Package geo provides route geometry: waypoints, great-circle
// distances in nautical miles, and segmentation of waypoint paths.
package geo

import "math"

const (
	// earthRadiusKM is the spherical Earth radius used by the
	// haversine formula.
	earthRadiusKM = 6371

	// kmToNauticalMiles converts kilometers to nautical miles.
	kmToNauticalMiles = 0.539957
)

// Coordinate is a geographic point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WaypointKind distinguishes named ports from interpolated points.
type WaypointKind string

const (
	WaypointPort         WaypointKind = "Port"
	WaypointIntermediate WaypointKind = "Intermediate"
)

// Waypoint is a point on a route. Ports come from reference data;
// intermediates are synthesized by interpolation and carry no port name.
type Waypoint struct {
	ID       string       `json:"id"`
	Lat      float64      `json:"lat"`
	Lon      float64      `json:"lon"`
	Kind     WaypointKind `json:"kind"`
	PortName string       `json:"portName,omitempty"`
}

// Coordinate returns the waypoint's position.
func (w Waypoint) Coordinate() Coordinate {
	return Coordinate{Lat: w.Lat, Lon: w.Lon}
}

// Segment is a contiguous subsequence of a route's waypoints, the unit
// at which conditions are simulated. DistanceNM is the sum of
// consecutive great-circle legs within the segment.
type Segment struct {
	ID         string     `json:"id"`
	Waypoints  []Waypoint `json:"waypoints"`
	DistanceNM float64    `json:"distanceNm"`
}

// Coordinates returns the lat/lon pairs of the segment's waypoints.
func (s Segment) Coordinates() []Coordinate {
	coords := make([]Coordinate, len(s.Waypoints))
	for i, wp := range s.Waypoints {
		coords[i] = wp.Coordinate()
	}
	return coords
}

// RouteCandidate is one evaluable route between two ports.
type RouteCandidate struct {
	RouteID         string    `json:"routeId"`
	RouteType       string    `json:"routeType"`
	TotalDistanceNM float64   `json:"totalDistanceNm"`
	WaypointCount   int       `json:"waypointCount"`
	Segments        []Segment `json:"segments"`
}

// Haversine returns the great-circle distance between two points in
// nautical miles, assuming a spherical Earth.
func Haversine(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Asin(math.Sqrt(h))

	return earthRadiusKM * c * kmToNauticalMiles
}

// PathDistance returns the sum of consecutive great-circle legs along
// a waypoint path, in nautical miles.
func PathDistance(waypoints []Waypoint) float64 {
	var total float64
	for i := 1; i < len(waypoints); i++ {
		total += Haversine(waypoints[i-1].Coordinate(), waypoints[i].Coordinate())
	}
	return total
}
