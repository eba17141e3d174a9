package domain

import "fmt"

// Profile selects the travel mode requested from routing providers.
type Profile string

const (
	ProfileDriving Profile = "driving"
	ProfileWalking Profile = "walking"
	ProfileCycling Profile = "cycling"
)

// ParseProfile normalizes a raw profile string. Empty input selects driving.
func ParseProfile(s string) (Profile, error) {
	switch s {
	case "":
		return ProfileDriving, nil
	case string(ProfileDriving), string(ProfileWalking), string(ProfileCycling):
		return Profile(s), nil
	}

	return "", &InvalidInputError{Reason: fmt.Sprintf("unknown profile %q", s)}
}

// DistanceResult is the outcome of resolving one origin/destination pair.
// DurationSeconds is nil when the resolving strategy cannot supply travel
// time; the haversine fallback never does.
type DistanceResult struct {
	DistanceMeters  float64
	DurationSeconds *float64
	Provider        string
}

// Matrix holds pairwise distances and durations indexed identically to the
// input point ordering. Distances are always fully populated; duration cells
// are nil where no provider supplied travel time. Routed matrices need not
// be symmetric.
type Matrix struct {
	Distances [][]float64
	Durations [][]*float64
	Provider  string
}

// Route is an optimized visiting order over the input points. Waypoints is
// always a permutation of the input multiset and WaypointOrder maps each
// output position to its original input index.
type Route struct {
	Waypoints            []Point
	WaypointOrder        []int
	TotalDistanceMeters  float64
	TotalDurationSeconds *float64
	Provider             string
}

// Options carries per-call configuration for the public routing operations.
// Credentials are read-only pass-through; a provider without its credential
// is simply left out of the chain.
type Options struct {
	Provider  string
	Profile   string
	Roundtrip bool

	GoogleAPIKey string
	ORSAPIKey    string
	OSRMBaseURL  string
}

// Seconds returns a pointer to a duration value expressed in seconds.
func Seconds(v float64) *float64 {
	return &v
}
