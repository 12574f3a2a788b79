package matching

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"oasis-blood-platform/internal/domain"
)

// EarthRadiusMeters is the equatorial radius used for all distance math.
const EarthRadiusMeters = 6378137.0

// Box is a latitude/longitude envelope in degrees.
// When MinLon > MaxLon the box crosses the antimeridian.
type Box struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Wraps reports whether the box crosses the antimeridian.
func (b Box) Wraps() bool { return b.MinLon > b.MaxLon }

// Contains reports whether c lies inside the box (edges inclusive).
func (b Box) Contains(c domain.Coordinate) bool {
	if c.Latitude < b.MinLat || c.Latitude > b.MaxLat {
		return false
	}
	if b.Wraps() {
		return c.Longitude >= b.MinLon || c.Longitude <= b.MaxLon
	}
	return c.Longitude >= b.MinLon && c.Longitude <= b.MaxLon
}

// BoundingBox returns the envelope of every point within radiusMeters of center.
// It is a superset of the circle and is meant as the coarse phase of a range query.
func BoundingBox(center domain.Coordinate, radiusMeters float64) Box {
	if radiusMeters < 0 {
		radiusMeters = 0
	}
	ll := s2.LatLngFromDegrees(center.Latitude, center.Longitude)
	angle := s1.Angle(radiusMeters / EarthRadiusMeters)
	rect := s2.CapFromCenterAngle(s2.PointFromLatLng(ll), angle).RectBound()

	lo, hi := rect.Lo(), rect.Hi()
	return Box{
		MinLat: lo.Lat.Degrees(),
		MinLon: lo.Lng.Degrees(),
		MaxLat: hi.Lat.Degrees(),
		MaxLon: hi.Lng.Degrees(),
	}
}

// DistanceMeters is the great-circle distance between a and b.
func DistanceMeters(a, b domain.Coordinate) float64 {
	la := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	lb := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return la.Distance(lb).Radians() * EarthRadiusMeters
}
