package geomath

import "math"

const earthRadiusKM = 6371.0

// DegToRad converts decimal degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// HaversineDistanceKm calculates the great-circle distance between two points
// on the earth (specified in decimal degrees), rounded to one decimal place.
func HaversineDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := DegToRad(lat2 - lat1)
	dLon := DegToRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(DegToRad(lat1))*math.Cos(DegToRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKM*c*10) / 10
}

// Point is a position in projected screen space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport is the pixel size of the map surface being projected onto.
type Viewport struct {
	Width  float64
	Height float64
}

// Projector maps geographic coordinates to screen coordinates. ok is false
// when the coordinates do not project into the viewport (out of WGS84 range).
type Projector func(lat, long float64) (p Point, ok bool)

// Equirectangular returns a plate carrée projector for the viewport: linear in
// longitude and latitude, so nearby geographic points stay nearby on screen.
func Equirectangular(vp Viewport) Projector {
	return func(lat, long float64) (Point, bool) {
		if lat < -90 || lat > 90 || long < -180 || long > 180 {
			return Point{}, false
		}
		return Point{
			X: (long + 180) / 360 * vp.Width,
			Y: (90 - lat) / 180 * vp.Height,
		}, true
	}
}

// ScreenDistance is the Euclidean distance between two projected points.
func ScreenDistance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
