package services

import (
	"context"
	"strings"

	"SehatCare/geo"
	"SehatCare/util"

	"github.com/rs/zerolog/log"
)

type DirectionsProvider interface {
	Directions(ctx context.Context, origin, destination string, opt geo.RouteOption) ([]geo.Route, error)
}

// Directions is set at startup when a maps key is configured.
var Directions DirectionsProvider

// RouteOptions are tried in this order; the first safe route wins.
var RouteOptions = []geo.RouteOption{
	{Mode: geo.ModeDriving},
	{Mode: geo.ModeDriving, AvoidHighways: true},
	{Mode: geo.ModeWalking},
	{Mode: geo.ModeBicycling},
	{Mode: geo.ModeTransit},
}

type RouteRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// IsRouteSafe rejects a route if any of its points is within threshold meters
// of a center. A route without points cannot be checked and is rejected.
func IsRouteSafe(route geo.Route, centers []geo.Point, threshold float64) bool {
	if len(route.Path) == 0 {
		return false
	}
	for _, p := range route.Path {
		if geo.Within(p, centers, threshold) {
			return false
		}
	}
	return true
}

/*
* Walk the options in priority order and ask the provider for alternatives
* A failing option is logged and skipped
* Return the first route that stays clear of every center
 */
func FindSafeRoute(ctx context.Context, provider DirectionsProvider, req RouteRequest, centers []geo.Point, threshold float64) (*geo.Route, error) {
	failures := 0
	for _, opt := range RouteOptions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		routes, err := provider.Directions(ctx, req.Origin, req.Destination, opt)
		if err != nil {
			failures++
			log.Warn().Err(err).Str("mode", opt.Mode).Bool("avoidHighways", opt.AvoidHighways).Msg("directions failed, trying next option")
			continue
		}
		for _, route := range routes {
			if IsRouteSafe(route, centers, threshold) {
				route.Mode = opt.Mode
				route.AvoidHighways = opt.AvoidHighways
				return &route, nil
			}
		}
	}
	if failures == len(RouteOptions) {
		return nil, util.Upstream(util.DIRECTIONS_UNAVAILABLE)
	}
	return nil, util.NotFound(util.NO_SAFE_ROUTE)
}

func PlanSafeRoute(ctx context.Context, req RouteRequest) (*geo.Route, error) {
	req.Origin = strings.TrimSpace(req.Origin)
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Origin == "" || req.Destination == "" {
		return nil, util.Validation(util.ORIGIN_DESTINATION_REQUIRED)
	}
	if Directions == nil {
		return nil, util.Upstream(util.DIRECTIONS_UNAVAILABLE)
	}
	centers, err := fetchUnsafeCenters(ctx)
	if err != nil {
		return nil, err
	}
	return FindSafeRoute(ctx, Directions, req, centers, SafetyThreshold())
}
