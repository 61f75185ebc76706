package scoring

import (
	"math"
	"sort"
	"time"

	"go-citywatch/types"
)

const (
	severityBaseWeight = 25

	// Verification bonus: 2 points per community confirmation, capped so
	// verification volume can never outrank a severity tier.
	verificationPoints = 2
	verificationCap    = 15

	// Recency bonus: starts at 10 and loses a point every 10 minutes,
	// reaching zero after 100 minutes.
	recencyStart        = 10
	recencyDecayMinutes = 10

	maxScore = 100
)

// severityWeight maps a severity tier to its multiplier. Malformed severity
// falls through to the lowest tier rather than failing; ingestion is expected
// to have validated the record already.
func severityWeight(s types.Severity) int {
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

// Score computes the triage priority of an incident at the given instant.
// The result is always in [0, 100]: non-decreasing in severity and
// verification count, non-increasing in elapsed time.
func Score(inc types.Incident, now time.Time) float64 {
	base := float64(severityWeight(inc.Severity) * severityBaseWeight)

	verificationBonus := math.Min(float64(inc.Verifications*verificationPoints), verificationCap)

	elapsed := math.Floor(now.Sub(inc.Timestamp).Minutes() / recencyDecayMinutes)
	recencyBonus := math.Max(0, recencyStart-elapsed)

	return math.Min(maxScore, base+verificationBonus+recencyBonus)
}

// Rank sorts incidents for triage attention: descending priority score, ties
// broken by more recent timestamp, then by id so the order is deterministic
// regardless of input order. The slice is ordered in place.
func Rank(incidents []types.Incident) {
	sort.SliceStable(incidents, func(i, j int) bool {
		if incidents[i].PriorityScore != incidents[j].PriorityScore {
			return incidents[i].PriorityScore > incidents[j].PriorityScore
		}
		if !incidents[i].Timestamp.Equal(incidents[j].Timestamp) {
			return incidents[i].Timestamp.After(incidents[j].Timestamp)
		}
		return incidents[i].ID < incidents[j].ID
	})
}
