package dashboard

import (
	"math"
	"sort"

	"go-citywatch/types"
)

const (
	// highRiskScore is the priority score at or above which an incident
	// counts as high risk regardless of severity tier.
	highRiskScore = 70.0

	// recentFeedLimit caps the recent-incidents feed.
	recentFeedLimit = 10
)

// ComputeStats derives the dashboard summary from one incident snapshot. It
// is a pure function: the snapshot is already fetched and scored, and the
// same snapshot always yields the same stats.
func ComputeStats(incidents []types.Incident) types.DashboardStats {
	stats := types.DashboardStats{
		TotalIncidents: len(incidents),
	}

	for _, inc := range incidents {
		if inc.Status == types.Resolved {
			stats.ResolvedIncidents++
		} else {
			stats.ActiveIncidents++
		}

		switch {
		case inc.PriorityScore >= highRiskScore || inc.Severity == types.Critical || inc.Severity == types.High:
			stats.HighRiskCount++
		case inc.Severity == types.Low || inc.Severity == types.Medium:
			stats.LowRiskCount++
		}
	}

	// Percentages are rounded independently; high + low may miss 100 by a
	// point (observed behavior, kept).
	if stats.TotalIncidents > 0 {
		total := float64(stats.TotalIncidents)
		stats.RiskRatio = types.RiskRatio{
			High: int(math.Round(float64(stats.HighRiskCount) / total * 100)),
			Low:  int(math.Round(float64(stats.LowRiskCount) / total * 100)),
		}
	}

	stats.RecentIncidents = recentFirst(incidents, recentFeedLimit)
	return stats
}

// recentFirst returns up to limit incidents ordered by recency, not priority.
func recentFirst(incidents []types.Incident, limit int) []types.Incident {
	recent := make([]types.Incident, len(incidents))
	copy(recent, incidents)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}
