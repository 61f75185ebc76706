package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-citywatch/types"
)

func incidentAt(sev types.Severity, verifications int, created time.Time) types.Incident {
	return types.Incident{
		ID:            "inc-1",
		Type:          types.Fire,
		Severity:      sev,
		Status:        types.Pending,
		Verifications: verifications,
		Timestamp:     created,
	}
}

func TestScoreBounds(t *testing.T) {
	now := time.Now()
	testCases := []struct {
		name string
		inc  types.Incident
	}{
		{"minimum", incidentAt(types.Low, 0, now.Add(-200*time.Minute))},
		{"maximum", incidentAt(types.Critical, 100, now)},
		{"future timestamp", incidentAt(types.Critical, 0, now.Add(time.Hour))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := Score(tc.inc, now)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 100.0)
		})
	}
}

func TestScoreSeverityMonotonic(t *testing.T) {
	now := time.Now()
	order := []types.Severity{types.Low, types.Medium, types.High, types.Critical}

	for i := 1; i < len(order); i++ {
		lower := Score(incidentAt(order[i-1], 2, now), now)
		higher := Score(incidentAt(order[i], 2, now), now)
		assert.GreaterOrEqual(t, higher, lower, "%s should not outrank %s", order[i-1], order[i])
	}
}

func TestScoreVerificationCap(t *testing.T) {
	now := time.Now()
	capped := Score(incidentAt(types.Medium, 100, now), now)
	atCap := Score(incidentAt(types.Medium, 8, now), now)
	below := Score(incidentAt(types.Medium, 7, now), now)

	assert.Equal(t, atCap, capped)
	assert.Less(t, below, atCap)
}

func TestScoreRecencyDecay(t *testing.T) {
	now := time.Now()
	sev := types.Low

	at100 := Score(incidentAt(sev, 0, now.Add(-100*time.Minute)), now)
	at99 := Score(incidentAt(sev, 0, now.Add(-99*time.Minute)), now)
	at200 := Score(incidentAt(sev, 0, now.Add(-200*time.Minute)), now)

	// bonus is zero at exactly 100 minutes and positive just before
	assert.Equal(t, 25.0, at100)
	assert.Greater(t, at99, at100)
	assert.Equal(t, at100, at200)
}

func TestScoreFreshIncident(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 100.0, Score(incidentAt(types.Critical, 0, now), now))
	assert.Equal(t, 35.0, Score(incidentAt(types.Low, 0, now), now))
}

func TestScoreMalformedSeverityDefaultsLow(t *testing.T) {
	now := time.Now()
	inc := incidentAt(types.Severity("catastrophic"), 0, now)
	assert.Equal(t, Score(incidentAt(types.Low, 0, now), now), Score(inc, now))
}

func TestSeverityDominatesVerifications(t *testing.T) {
	now := time.Now()
	critical := incidentAt(types.Critical, 0, now)
	old := incidentAt(types.Low, 10, now.Add(-3*time.Hour))

	// 25*4 capped at 100 vs 25*1 + 15 + 0 = 40
	assert.Equal(t, 100.0, Score(critical, now))
	assert.Equal(t, 40.0, Score(old, now))
}

func TestRankOrdering(t *testing.T) {
	now := time.Now()

	a := incidentAt(types.Low, 0, now.Add(-2*time.Hour))
	a.ID, a.PriorityScore = "a", 40
	b := incidentAt(types.Critical, 0, now)
	b.ID, b.PriorityScore = "b", 100
	c := incidentAt(types.Medium, 0, now.Add(-time.Hour))
	c.ID, c.PriorityScore = "c", 40

	incidents := []types.Incident{a, b, c}
	Rank(incidents)

	// b first on score; c beats a on the recency tie-break
	assert.Equal(t, []string{"b", "c", "a"},
		[]string{incidents[0].ID, incidents[1].ID, incidents[2].ID})
}
