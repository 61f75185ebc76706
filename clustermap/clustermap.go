package clustermap

import (
	"fmt"

	"go-citywatch/geomath"
	"go-citywatch/types"
)

const (
	// Below this zoom the map is too dense to render individual markers, so
	// clustering is always applied. At or above it incidents render one by one.
	zoomClusterCutoff = 1.5

	// Screen-space grouping distance at zoom 1. The effective threshold
	// shrinks as the user zooms in.
	baseClusterDistancePX = 30.0
)

// ThresholdForZoom returns the pixel distance under which incidents merge
// into one marker at the given zoom level.
func ThresholdForZoom(zoom float64) float64 {
	if zoom <= 0 {
		return baseClusterDistancePX
	}
	return baseClusterDistancePX / zoom
}

// cluster accumulates members during one greedy pass. The centroid is a
// running mean over member positions; it never aliases incident data.
type cluster struct {
	centroid geomath.Point
	members  []types.Incident
}

// BuildMarkers projects an incident snapshot through proj and derives the
// render-ready marker list for the given zoom. Incidents whose coordinates do
// not project are excluded from the pass. The result is deterministic for a
// fixed input order and rebuilt fresh on every call.
func BuildMarkers(incidents []types.Incident, proj geomath.Projector, zoom float64) []types.MapMarker {
	type projected struct {
		inc types.Incident
		pt  geomath.Point
	}

	onScreen := make([]projected, 0, len(incidents))
	for _, inc := range incidents {
		pt, ok := proj(inc.Lat, inc.Long)
		if !ok {
			continue // silent-drop policy for unprojectable coordinates
		}
		onScreen = append(onScreen, projected{inc: inc, pt: pt})
	}

	if zoom >= zoomClusterCutoff {
		markers := make([]types.MapMarker, 0, len(onScreen))
		for _, p := range onScreen {
			markers = append(markers, singletonMarker(p.inc, p.pt))
		}
		return markers
	}

	threshold := ThresholdForZoom(zoom)

	// Single-pass greedy assignment: join the first open cluster whose
	// centroid is within the threshold, otherwise open a new one.
	var clusters []*cluster
	for _, p := range onScreen {
		var target *cluster
		for _, c := range clusters {
			if geomath.ScreenDistance(p.pt, c.centroid) < threshold {
				target = c
				break
			}
		}
		if target == nil {
			clusters = append(clusters, &cluster{
				centroid: p.pt,
				members:  []types.Incident{p.inc},
			})
			continue
		}

		target.members = append(target.members, p.inc)
		n := float64(len(target.members))
		target.centroid.X = (target.centroid.X*(n-1) + p.pt.X) / n
		target.centroid.Y = (target.centroid.Y*(n-1) + p.pt.Y) / n
	}

	markers := make([]types.MapMarker, 0, len(clusters))
	for i, c := range clusters {
		if len(c.members) == 1 {
			// singletons render as plain incidents, indistinguishable from
			// the unclustered case
			markers = append(markers, singletonMarker(c.members[0], c.centroid))
			continue
		}
		markers = append(markers, clusterMarker(i, c))
	}
	return markers
}

func singletonMarker(inc types.Incident, pt geomath.Point) types.MapMarker {
	return types.MapMarker{
		ID:       inc.ID,
		X:        pt.X,
		Y:        pt.Y,
		Count:    1,
		Severity: inc.Severity,
		Incident: &inc,
	}
}

func clusterMarker(index int, c *cluster) types.MapMarker {
	ids := make([]string, 0, len(c.members))
	maxSeverity := types.Low
	for _, m := range c.members {
		ids = append(ids, m.ID)
		if severityRank(m.Severity) > severityRank(maxSeverity) {
			maxSeverity = m.Severity
		}
	}
	return types.MapMarker{
		ID:        fmt.Sprintf("cluster-%d", index),
		X:         c.centroid.X,
		Y:         c.centroid.Y,
		Count:     len(c.members),
		Severity:  maxSeverity,
		MemberIDs: ids,
	}
}

func severityRank(s types.Severity) int {
	switch s {
	case types.Critical:
		return 4
	case types.High:
		return 3
	case types.Medium:
		return 2
	default:
		return 1
	}
}
