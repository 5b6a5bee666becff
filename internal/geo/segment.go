package geo

import (
	"errors"
	"fmt"
)

// ErrInsufficientGeometry indicates a route has fewer than two usable
// waypoints and cannot be segmented or analyzed.
var ErrInsufficientGeometry = errors.New("route has insufficient geometry")

// SegmenterConfig holds the segmentation policy. The thresholds are
// tunable policy choices, not physical constants.
type SegmenterConfig struct {
	// MinWaypoints is the minimum waypoint count before enrichment
	// stops interpolating. Default: 4.
	MinWaypoints int

	// SegmentDivisor controls segment size: segments hold
	// count/SegmentDivisor waypoints each (minimum 1). Default: 4.
	SegmentDivisor int
}

// DefaultSegmenterConfig returns the default segmentation policy.
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		MinWaypoints:   4,
		SegmentDivisor: 4,
	}
}

// Segmenter converts a sparse waypoint path into distance-annotated
// segments suitable for condition sampling.
type Segmenter struct {
	config SegmenterConfig
}

// NewSegmenter creates a Segmenter, filling zero config values with
// defaults.
func NewSegmenter(config SegmenterConfig) *Segmenter {
	if config.MinWaypoints <= 0 {
		config.MinWaypoints = DefaultSegmenterConfig().MinWaypoints
	}
	if config.SegmentDivisor <= 0 {
		config.SegmentDivisor = DefaultSegmenterConfig().SegmentDivisor
	}
	return &Segmenter{config: config}
}

// Build enriches the waypoint path to the configured minimum and
// partitions it into segments. It returns the segments and the
// enriched waypoint list; concatenating the segments' waypoints
// reproduces the enriched list exactly.
func (s *Segmenter) Build(routeID string, waypoints []Waypoint) ([]Segment, []Waypoint, error) {
	if len(waypoints) < 2 {
		return nil, nil, fmt.Errorf("route %s: %w", routeID, ErrInsufficientGeometry)
	}

	enriched := s.enrich(waypoints)
	segments := s.partition(routeID, enriched)

	return segments, enriched, nil
}

// enrich interpolates additional waypoints between consecutive pairs
// until the path holds at least MinWaypoints points. Downstream
// simulators sample once per segment, so too few waypoints would
// under-sample long legs.
func (s *Segmenter) enrich(waypoints []Waypoint) []Waypoint {
	if len(waypoints) >= s.config.MinWaypoints {
		return waypoints
	}

	perLeg := s.config.MinWaypoints - len(waypoints)
	if perLeg < 1 {
		perLeg = 1
	}

	enriched := make([]Waypoint, 0, len(waypoints)+perLeg*(len(waypoints)-1))
	enriched = append(enriched, waypoints[0])

	for i := 0; i < len(waypoints)-1; i++ {
		start := waypoints[i]
		end := waypoints[i+1]

		for j := 1; j <= perLeg; j++ {
			fraction := float64(j) / float64(perLeg+1)
			enriched = append(enriched, Waypoint{
				ID:   fmt.Sprintf("%s_int_%d", start.ID, j),
				Lat:  start.Lat + fraction*(end.Lat-start.Lat),
				Lon:  start.Lon + fraction*(end.Lon-start.Lon),
				Kind: WaypointIntermediate,
			})
		}

		enriched = append(enriched, end)
	}

	return enriched
}

// partition chunks the waypoint list into near-equal segments. A
// trailing single-waypoint chunk is coalesced into the previous
// segment so every segment holds at least one waypoint pair.
func (s *Segmenter) partition(routeID string, waypoints []Waypoint) []Segment {
	size := len(waypoints) / s.config.SegmentDivisor
	if size < 2 {
		// A chunk of one waypoint has no leg to measure; coalescing
		// adjacent chunks keeps every segment at one pair minimum.
		size = 2
	}

	var chunks [][]Waypoint
	for i := 0; i < len(waypoints); i += size {
		end := i + size
		if end > len(waypoints) {
			end = len(waypoints)
		}
		chunks = append(chunks, waypoints[i:end])
	}

	if len(chunks) > 1 && len(chunks[len(chunks)-1]) < 2 {
		last := chunks[len(chunks)-1]
		chunks = chunks[:len(chunks)-1]
		tail := chunks[len(chunks)-1]
		merged := make([]Waypoint, 0, len(tail)+len(last))
		merged = append(merged, tail...)
		merged = append(merged, last...)
		chunks[len(chunks)-1] = merged
	}

	segments := make([]Segment, 0, len(chunks))
	for _, chunk := range chunks {
		segments = append(segments, Segment{
			ID:         fmt.Sprintf("%s_seg_%d", routeID, len(segments)+1),
			Waypoints:  chunk,
			DistanceNM: PathDistance(chunk),
		})
	}

	return segments
}
