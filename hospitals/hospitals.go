package hospitals

import (
	"sort"

	"go-citywatch/geomath"
)

// Hospital is one entry in the static emergency-contact directory.
type Hospital struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Phone      string  `json:"phone"`
	Lat        float64 `json:"lat"`
	Long       float64 `json:"long"`
	HasTrauma  bool    `json:"hasTrauma"`
	DistanceKm float64 `json:"distanceKm"`
}

// directory is the bundled hospital list. A production deployment would load
// this from the emergency-services API; the dashboard ships a fallback set so
// the contact page works offline.
var directory = []Hospital{
	{ID: "h-1", Name: "City General Hospital", Address: "100 Main St", Phone: "+1 (555) 010-1000", Lat: 40.7130, Long: -74.0055, HasTrauma: true},
	{ID: "h-2", Name: "Riverside Medical Center", Address: "245 River Rd", Phone: "+1 (555) 010-2000", Lat: 40.7310, Long: -73.9900, HasTrauma: true},
	{ID: "h-3", Name: "St. Anne Community Hospital", Address: "18 Chapel Ave", Phone: "+1 (555) 010-3000", Lat: 40.6890, Long: -74.0200, HasTrauma: false},
	{ID: "h-4", Name: "Northside Urgent Care", Address: "77 Hill Blvd", Phone: "+1 (555) 010-4000", Lat: 40.7650, Long: -73.9800, HasTrauma: false},
	{ID: "h-5", Name: "Eastview Trauma Center", Address: "900 East Pkwy", Phone: "+1 (555) 010-5000", Lat: 40.7200, Long: -73.9400, HasTrauma: true},
}

// Nearest returns the directory sorted by great-circle distance from the
// given position, closest first, with DistanceKm filled in.
func Nearest(lat, long float64) []Hospital {
	out := make([]Hospital, len(directory))
	copy(out, directory)
	for i := range out {
		out[i].DistanceKm = geomath.HaversineDistanceKm(lat, long, out[i].Lat, out[i].Long)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}
