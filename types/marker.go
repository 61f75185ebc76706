package types

// MapMarker is a render-ready map node: either a single incident or a
// synthetic cluster of nearby incidents at the current zoom. Markers are
// rebuilt on every clustering pass and never mutated across passes.
type MapMarker struct {
	ID       string   `json:"id"`
	X        float64  `json:"x"` // centroid in projected screen space
	Y        float64  `json:"y"`
	Count    int      `json:"count"`
	Severity Severity `json:"severity"` // max severity among members

	// Incident is set for singleton markers, nil for clusters.
	Incident *Incident `json:"incident,omitempty"`
	// MemberIDs holds the constituent incident ids for cluster markers.
	MemberIDs []string `json:"memberIds,omitempty"`
}

// IsCluster reports whether the marker groups two or more incidents.
func (m MapMarker) IsCluster() bool {
	return m.Count > 1
}
