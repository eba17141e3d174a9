package cache

import (
	"fmt"

	"github.com/mmcloughlin/geohash"

	"github.com/im-vetri/Useful-APIs/internal/domain"
)

// Precision 7 buckets coordinates into roughly 150m cells, so GPS jitter
// between near-identical requests hits the same key.
const geohashPrecision = 7

// pairKey builds a stable cache key for a directed origin/destination pair
// under one travel profile.
func pairKey(origin, destination domain.Point, profile domain.Profile) string {
	return fmt.Sprintf("%s|%s|%s",
		profile,
		geohash.EncodeWithPrecision(origin.Lat, origin.Lng, geohashPrecision),
		geohash.EncodeWithPrecision(destination.Lat, destination.Lng, geohashPrecision))
}
