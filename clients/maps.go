package clients

import (
	"context"
	"errors"
	"fmt"

	"SehatCare/geo"

	"googlemaps.github.io/maps"
)

type MapsClient struct {
	client *maps.Client
}

func NewMapsClient(apiKey string) (*MapsClient, error) {
	if apiKey == "" {
		return nil, errors.New("clients: google maps api key is required")
	}
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("clients: failed to create maps client: %w", err)
	}
	return &MapsClient{client: c}, nil
}

func travelMode(mode string) maps.Mode {
	switch mode {
	case geo.ModeWalking:
		return maps.TravelModeWalking
	case geo.ModeBicycling:
		return maps.TravelModeBicycling
	case geo.ModeTransit:
		return maps.TravelModeTransit
	default:
		return maps.TravelModeDriving
	}
}

func toPoint(l maps.LatLng) geo.Point {
	return geo.Point{Lat: l.Lat, Lng: l.Lng}
}

// Directions asks for the route plus alternatives for one travel option and
// flattens every leg into the point path used by the safety filter.
func (m *MapsClient) Directions(ctx context.Context, origin, destination string, opt geo.RouteOption) ([]geo.Route, error) {
	req := &maps.DirectionsRequest{
		Origin:       origin,
		Destination:  destination,
		Mode:         travelMode(opt.Mode),
		Alternatives: true,
	}
	if opt.AvoidHighways {
		req.Avoid = []maps.Avoid{maps.AvoidHighways}
	}
	routes, _, err := m.client.Directions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("clients: directions request failed: %w", err)
	}

	out := make([]geo.Route, 0, len(routes))
	for _, r := range routes {
		route := geo.Route{
			Summary:       r.Summary,
			Mode:          opt.Mode,
			AvoidHighways: opt.AvoidHighways,
			Polyline:      r.OverviewPolyline.Points,
		}
		for _, leg := range r.Legs {
			route.DistanceMeters += leg.Distance.Meters
			route.DurationSeconds += leg.Duration.Seconds()
			for _, step := range leg.Steps {
				route.Path = append(route.Path, toPoint(step.StartLocation))
				path, err := step.Polyline.Decode()
				if err != nil {
					return nil, fmt.Errorf("clients: failed to decode step polyline: %w", err)
				}
				for _, p := range path {
					route.Path = append(route.Path, toPoint(p))
				}
				route.Path = append(route.Path, toPoint(step.EndLocation))
			}
		}
		out = append(out, route)
	}
	return out, nil
}
