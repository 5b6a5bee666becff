package refdata

import (
	"github.com/rs/zerolog"

	"github.com/searoute/searoute/internal/geo"
)

func float64Ptr(v float64) *float64 { return &v }

// SampleConfig mirrors StoreConfig for the bundled sample data set.
type SampleConfig struct {
	Logger zerolog.Logger
}

// Sample returns a Store seeded with a small set of well-known ports,
// routes, and carriers. Useful for local runs and tests; production
// callers supply their own records.
func Sample(cfg SampleConfig) *Store {
	waypoints := []WaypointRecord{
		{ID: "WP_001", Lat: 40.7128, Lon: -74.0060, Kind: geo.WaypointPort, PortName: "New York"},
		{ID: "WP_002", Lat: 34.0522, Lon: -118.2437, Kind: geo.WaypointPort, PortName: "Los Angeles"},
		{ID: "WP_003", Lat: 51.5074, Lon: -0.1278, Kind: geo.WaypointPort, PortName: "London"},
		{ID: "WP_004", Lat: -33.9249, Lon: 18.4241, Kind: geo.WaypointPort, PortName: "Cape Town"},
		{ID: "WP_005", Lat: 35.6762, Lon: 139.6503, Kind: geo.WaypointPort, PortName: "Tokyo"},
	}

	routes := []RouteRecord{
		{
			ID:              "R_001",
			OriginPort:      "New York",
			DestinationPort: "Cape Town",
			RouteType:       "Transatlantic",
			DistanceNM:      float64Ptr(6840),
			WaypointIDs:     []string{"WP_001", "WP_004"},
		},
		{
			ID:              "R_002",
			OriginPort:      "Los Angeles",
			DestinationPort: "Tokyo",
			RouteType:       "Transpacific",
			DistanceNM:      float64Ptr(5500),
			WaypointIDs:     []string{"WP_002", "WP_005"},
		},
		{
			ID:              "R_003",
			OriginPort:      "New York",
			DestinationPort: "London",
			RouteType:       "Transatlantic",
			DistanceNM:      float64Ptr(3200),
			WaypointIDs:     []string{"WP_001", "WP_003"},
		},
		{
			ID:              "R_004",
			OriginPort:      "Cape Town",
			DestinationPort: "Tokyo",
			RouteType:       "Southern",
			DistanceNM:      float64Ptr(7100),
			WaypointIDs:     []string{"WP_004", "WP_005"},
		},
	}

	carriers := []Carrier{
		{ID: "CR_0001", Name: "Ocean Express", ServiceType: "Container", OriginPort: "New York", DestinationPort: "Cape Town", AvgSpeedKnots: 22},
		{ID: "CR_0002", Name: "Global Maritime", ServiceType: "Bulk", OriginPort: "Los Angeles", DestinationPort: "Tokyo", AvgSpeedKnots: 18},
		{ID: "CR_0003", Name: "Sea Voyager", ServiceType: "Tanker", OriginPort: "New York", DestinationPort: "London", AvgSpeedKnots: 20},
		{ID: "CR_0009", Name: "Atlantic Shipping", ServiceType: "Container", OriginPort: "New York", DestinationPort: "Cape Town", AvgSpeedKnots: 24},
	}

	ports := []Port{
		{City: "New York", Code: "USNYC", Lat: 40.7128, Lon: -74.0060},
		{City: "Los Angeles", Code: "USLAX", Lat: 34.0522, Lon: -118.2437},
		{City: "London", Code: "GBLON", Lat: 51.5074, Lon: -0.1278},
		{City: "Cape Town", Code: "ZACPT", Lat: -33.9249, Lon: 18.4241},
		{City: "Tokyo", Code: "JPTYO", Lat: 35.6762, Lon: 139.6503},
	}

	return NewStore(StoreConfig{
		Waypoints: waypoints,
		Routes:    routes,
		Carriers:  carriers,
		Ports:     ports,
		Logger:    cfg.Logger,
	})
}
