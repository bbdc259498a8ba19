package geo

// Travel modes understood by the directions provider.
const (
	ModeDriving   = "DRIVING"
	ModeWalking   = "WALKING"
	ModeBicycling = "BICYCLING"
	ModeTransit   = "TRANSIT"
)

type RouteOption struct {
	Mode          string `json:"travelMode"`
	AvoidHighways bool   `json:"avoidHighways"`
}

// Route is one candidate route. Path holds every point that must be checked:
// step start and end locations plus the decoded step polylines.
type Route struct {
	Summary         string  `json:"summary"`
	Mode            string  `json:"travelMode"`
	AvoidHighways   bool    `json:"avoidHighways"`
	DistanceMeters  int     `json:"distanceMeters"`
	DurationSeconds float64 `json:"durationSeconds"`
	Polyline        string  `json:"polyline,omitempty"`
	Path            []Point `json:"-"`
}
