package refdata

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/searoute/searoute/internal/geo"
)

// distanceToleranceRatio is the relative divergence between the
// authoritative route distance and the computed waypoint-path distance
// above which a reconciliation warning is logged.
const distanceToleranceRatio = 0.01

// StoreConfig holds the reference tables and collaborators for a Store.
type StoreConfig struct {
	Waypoints []WaypointRecord
	Routes    []RouteRecord
	Carriers  []Carrier
	Ports     []Port

	// Segmenter builds candidate geometry. Defaults to the standard
	// segmentation policy.
	Segmenter *geo.Segmenter

	// Logger for reconciliation and drop warnings.
	Logger zerolog.Logger
}

// Store is an immutable view over the reference tables. It is loaded
// once per request batch and is safe for concurrent readers.
type Store struct {
	waypoints map[string]WaypointRecord
	routes    []RouteRecord
	carriers  map[string]Carrier
	ports     map[string]Port
	segmenter *geo.Segmenter
	logger    zerolog.Logger
}

// NewStore builds a Store from in-memory reference records.
func NewStore(cfg StoreConfig) *Store {
	segmenter := cfg.Segmenter
	if segmenter == nil {
		segmenter = geo.NewSegmenter(geo.DefaultSegmenterConfig())
	}

	s := &Store{
		waypoints: make(map[string]WaypointRecord, len(cfg.Waypoints)),
		routes:    append([]RouteRecord(nil), cfg.Routes...),
		carriers:  make(map[string]Carrier, len(cfg.Carriers)),
		ports:     make(map[string]Port, len(cfg.Ports)),
		segmenter: segmenter,
		logger:    cfg.Logger,
	}

	for _, wp := range cfg.Waypoints {
		s.waypoints[wp.ID] = wp
	}
	for _, c := range cfg.Carriers {
		s.carriers[c.ID] = c
	}
	for _, p := range cfg.Ports {
		s.ports[p.City] = p
	}

	return s
}

// CarrierByID looks up a carrier. Returns ErrCarrierNotFound when the
// id is absent from reference data.
func (s *Store) CarrierByID(id string) (Carrier, error) {
	c, ok := s.carriers[id]
	if !ok {
		return Carrier{}, fmt.Errorf("carrier %q: %w", id, ErrCarrierNotFound)
	}
	return c, nil
}

// PortByCity looks up a port by city name.
func (s *Store) PortByCity(city string) (Port, error) {
	p, ok := s.ports[city]
	if !ok {
		return Port{}, fmt.Errorf("port %q: %w", city, ErrPortNotFound)
	}
	return p, nil
}

// FindRoutes returns all evaluable route candidates between two ports,
// plus the matching routes that had to be skipped for unusable
// geometry. Both slices empty means no route exists between the ports.
func (s *Store) FindRoutes(originPort, destinationPort string) ([]geo.RouteCandidate, []SkippedRoute) {
	var candidates []geo.RouteCandidate
	var skipped []SkippedRoute

	for _, record := range s.routes {
		if record.OriginPort != originPort || record.DestinationPort != destinationPort {
			continue
		}

		candidate, err := s.buildCandidate(record)
		if err != nil {
			s.logger.Warn().
				Str("route_id", record.ID).
				Err(err).
				Msg("skipping route with unusable geometry")
			skipped = append(skipped, SkippedRoute{RouteID: record.ID, Reason: err.Error()})
			continue
		}
		candidates = append(candidates, candidate)
	}

	return candidates, skipped
}

// buildCandidate resolves a route record's waypoint ids, enriches and
// segments the path, and reconciles the authoritative distance against
// the computed one.
func (s *Store) buildCandidate(record RouteRecord) (geo.RouteCandidate, error) {
	var path []geo.Waypoint
	for _, id := range record.WaypointIDs {
		wp, ok := s.waypoints[id]
		if !ok {
			s.logger.Warn().
				Str("route_id", record.ID).
				Str("waypoint_id", id).
				Msg("waypoint id not in reference data, ignoring")
			continue
		}
		path = append(path, geo.Waypoint{
			ID:       wp.ID,
			Lat:      wp.Lat,
			Lon:      wp.Lon,
			Kind:     wp.Kind,
			PortName: wp.PortName,
		})
	}

	segments, enriched, err := s.segmenter.Build(record.ID, path)
	if err != nil {
		return geo.RouteCandidate{}, err
	}

	computed := geo.PathDistance(enriched)
	total := computed
	if record.DistanceNM != nil {
		total = *record.DistanceNM
		// The authoritative distance wins, but a large divergence from
		// the waypoint-path distance may indicate a data error.
		if computed > 0 && math.Abs(total-computed)/computed > distanceToleranceRatio {
			s.logger.Warn().
				Str("route_id", record.ID).
				Float64("authoritative_nm", total).
				Float64("computed_nm", computed).
				Msg("authoritative route distance diverges from computed path distance")
		}
	}

	return geo.RouteCandidate{
		RouteID:         record.ID,
		RouteType:       record.RouteType,
		TotalDistanceNM: total,
		WaypointCount:   len(enriched),
		Segments:        segments,
	}, nil
}
