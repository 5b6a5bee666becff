package geo_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searoute/searoute/internal/geo"
)

func TestHaversine_SamePointIsZero(t *testing.T) {
	p := geo.Coordinate{Lat: 40.7128, Lon: -74.0060}
	assert.Zero(t, geo.Haversine(p, p))
}

func TestHaversine_Symmetric(t *testing.T) {
	a := geo.Coordinate{Lat: 40.7128, Lon: -74.0060}
	b := geo.Coordinate{Lat: 34.0522, Lon: -118.2437}

	assert.InDelta(t, geo.Haversine(a, b), geo.Haversine(b, a), 1e-9)
}

func TestHaversine_OneDegreeAtEquator(t *testing.T) {
	a := geo.Coordinate{Lat: 0, Lon: 0}
	b := geo.Coordinate{Lat: 0, Lon: 1}

	// One degree of longitude at the equator is about 60 nautical miles.
	assert.InDelta(t, 60.0, geo.Haversine(a, b), 0.1)
}

func TestPathDistance_SumsConsecutiveLegs(t *testing.T) {
	waypoints := []geo.Waypoint{
		{ID: "a", Lat: 0, Lon: 0},
		{ID: "b", Lat: 0, Lon: 1},
		{ID: "c", Lat: 0, Lon: 2},
	}

	want := geo.Haversine(waypoints[0].Coordinate(), waypoints[1].Coordinate()) +
		geo.Haversine(waypoints[1].Coordinate(), waypoints[2].Coordinate())

	assert.InDelta(t, want, geo.PathDistance(waypoints), 1e-9)
	assert.Zero(t, geo.PathDistance(waypoints[:1]))
	assert.Zero(t, geo.PathDistance(nil))
}

func TestSegmenter_Build_RejectsDegenerateRoutes(t *testing.T) {
	s := geo.NewSegmenter(geo.DefaultSegmenterConfig())

	_, _, err := s.Build("R_X", nil)
	require.ErrorIs(t, err, geo.ErrInsufficientGeometry)

	_, _, err = s.Build("R_X", []geo.Waypoint{{ID: "a", Lat: 1, Lon: 1}})
	require.ErrorIs(t, err, geo.ErrInsufficientGeometry)
}

func TestSegmenter_Build_EnrichesSparseRoutes(t *testing.T) {
	s := geo.NewSegmenter(geo.DefaultSegmenterConfig())

	segments, enriched, err := s.Build("R_001", []geo.Waypoint{
		{ID: "a", Lat: 0, Lon: 0, Kind: geo.WaypointPort, PortName: "A"},
		{ID: "b", Lat: 0, Lon: 10, Kind: geo.WaypointPort, PortName: "B"},
	})
	require.NoError(t, err)

	// Two waypoints gain two interpolated points per leg.
	require.Len(t, enriched, 4)
	assert.Equal(t, "a", enriched[0].ID)
	assert.Equal(t, "a_int_1", enriched[1].ID)
	assert.Equal(t, "a_int_2", enriched[2].ID)
	assert.Equal(t, "b", enriched[3].ID)

	assert.Equal(t, geo.WaypointIntermediate, enriched[1].Kind)
	assert.Empty(t, enriched[1].PortName)

	// Interpolation is linear along the leg.
	assert.InDelta(t, 10.0/3, enriched[1].Lon, 1e-9)
	assert.InDelta(t, 20.0/3, enriched[2].Lon, 1e-9)

	require.Len(t, segments, 2)
	assert.Equal(t, "R_001_seg_1", segments[0].ID)
	assert.Equal(t, "R_001_seg_2", segments[1].ID)
}

func TestSegmenter_Build_DoesNotEnrichDensePaths(t *testing.T) {
	s := geo.NewSegmenter(geo.DefaultSegmenterConfig())

	waypoints := make([]geo.Waypoint, 12)
	for i := range waypoints {
		waypoints[i] = geo.Waypoint{ID: fmt.Sprintf("wp_%d", i), Lat: float64(i), Lon: float64(i)}
	}

	segments, enriched, err := s.Build("R_002", waypoints)
	require.NoError(t, err)
	assert.Len(t, enriched, 12)

	// 12 waypoints partition into four segments of three.
	require.Len(t, segments, 4)
	for _, seg := range segments {
		assert.Len(t, seg.Waypoints, 3)
	}
}

func TestSegmenter_Build_SegmentsCoverEnrichedPath(t *testing.T) {
	s := geo.NewSegmenter(geo.DefaultSegmenterConfig())

	for _, count := range []int{2, 3, 5, 7, 11} {
		waypoints := make([]geo.Waypoint, count)
		for i := range waypoints {
			waypoints[i] = geo.Waypoint{ID: fmt.Sprintf("wp_%d", i), Lat: float64(i), Lon: 0}
		}

		segments, enriched, err := s.Build("R_003", waypoints)
		require.NoError(t, err)

		var flattened []geo.Waypoint
		for _, seg := range segments {
			require.GreaterOrEqual(t, len(seg.Waypoints), 2, "waypoints=%d", count)
			flattened = append(flattened, seg.Waypoints...)
		}
		assert.Equal(t, enriched, flattened, "waypoints=%d", count)
	}
}

func TestSegmenter_Build_TrailingChunkCoalesced(t *testing.T) {
	s := geo.NewSegmenter(geo.DefaultSegmenterConfig())

	// Three waypoints enrich to five; a naive chunking of five into
	// pairs leaves a trailing singleton, which must be merged.
	segments, enriched, err := s.Build("R_004", []geo.Waypoint{
		{ID: "a", Lat: 0, Lon: 0},
		{ID: "b", Lat: 0, Lon: 5},
		{ID: "c", Lat: 0, Lon: 10},
	})
	require.NoError(t, err)
	require.Len(t, enriched, 5)

	require.Len(t, segments, 2)
	assert.Len(t, segments[0].Waypoints, 2)
	assert.Len(t, segments[1].Waypoints, 3)
}
