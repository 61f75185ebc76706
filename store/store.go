package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-citywatch/scoring"
	"go-citywatch/types"
)

// verifiedThreshold is the community confirmation count at which a pending
// incident is automatically promoted to verified.
const verifiedThreshold = 3

// IncidentStore owns the authoritative in-memory incident collection. It is
// the only component that mutates incidents or their cached priority scores;
// everything downstream works on value-copied snapshots.
type IncidentStore struct {
	mu        sync.RWMutex
	incidents map[string]types.Incident
	now       func() time.Time
}

func NewIncidentStore() *IncidentStore {
	return &IncidentStore{
		incidents: make(map[string]types.Incident),
		now:       time.Now,
	}
}

// NewIncidentStoreWithClock injects the clock used for creation timestamps
// and score computation.
func NewIncidentStoreWithClock(now func() time.Time) *IncidentStore {
	s := NewIncidentStore()
	s.now = now
	return s
}

// IncidentPatch is a partial update. Nil fields are left untouched; identity
// and creation timestamp cannot be patched.
type IncidentPatch struct {
	Type        *types.IncidentType
	Description *string
	Severity    *types.Severity
	Status      *types.Status
	Lat         *float64
	Long        *float64
	Address     *string
}

// Add validates and inserts a new incident, assigning an id and creation
// timestamp when absent and computing the initial priority score. Returns a
// ConflictError when an externally supplied id is already present.
func (s *IncidentStore) Add(draft types.Incident) (types.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if draft.ID == "" {
		draft.ID = uuid.NewString()
	} else if _, exists := s.incidents[draft.ID]; exists {
		return types.Incident{}, &ConflictError{ID: draft.ID}
	}
	if draft.Timestamp.IsZero() {
		draft.Timestamp = s.now().UTC()
	}
	if draft.Status == "" {
		draft.Status = types.Pending
	}

	if err := draft.Validate(); err != nil {
		return types.Incident{}, fmt.Errorf("invalid incident: %w", err)
	}

	draft.PriorityScore = scoring.Score(draft, s.now())
	s.incidents[draft.ID] = draft
	return draft, nil
}

// Patch merges the non-nil fields into an existing incident and recomputes
// its priority score.
func (s *IncidentStore) Patch(id string, patch IncidentPatch) (types.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inc, ok := s.incidents[id]
	if !ok {
		return types.Incident{}, &NotFoundError{ID: id}
	}

	if patch.Type != nil {
		inc.Type = *patch.Type
	}
	if patch.Description != nil {
		inc.Description = *patch.Description
	}
	if patch.Severity != nil {
		inc.Severity = *patch.Severity
	}
	if patch.Status != nil {
		inc.Status = *patch.Status
	}
	if patch.Lat != nil {
		inc.Lat = *patch.Lat
	}
	if patch.Long != nil {
		inc.Long = *patch.Long
	}
	if patch.Address != nil {
		inc.Address = *patch.Address
	}

	if err := inc.Validate(); err != nil {
		return types.Incident{}, fmt.Errorf("invalid patch: %w", err)
	}

	inc.PriorityScore = scoring.Score(inc, s.now())
	s.incidents[id] = inc
	return inc, nil
}

// Verify records one community confirmation. A pending incident reaching the
// confirmation threshold is promoted to verified. There is no caller identity,
// so repeated calls double-count.
func (s *IncidentStore) Verify(id string) (types.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inc, ok := s.incidents[id]
	if !ok {
		return types.Incident{}, &NotFoundError{ID: id}
	}

	inc.Verifications++
	if inc.Status == types.Pending && inc.Verifications >= verifiedThreshold {
		inc.Status = types.Verified
	}
	inc.PriorityScore = scoring.Score(inc, s.now())
	s.incidents[id] = inc
	return inc, nil
}

// Flag records one community dispute. Flags are advisory for moderators and
// have no effect on status or priority score.
func (s *IncidentStore) Flag(id string) (types.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inc, ok := s.incidents[id]
	if !ok {
		return types.Incident{}, &NotFoundError{ID: id}
	}

	inc.Flags++
	s.incidents[id] = inc
	return inc, nil
}

// Get returns one incident by id.
func (s *IncidentStore) Get(id string) (types.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inc, ok := s.incidents[id]
	if !ok {
		return types.Incident{}, &NotFoundError{ID: id}
	}
	return inc, nil
}

// Snapshot returns a value copy of the collection in triage order:
// descending priority score, newer first on ties.
func (s *IncidentStore) Snapshot() []types.Incident {
	s.mu.RLock()
	out := make([]types.Incident, 0, len(s.incidents))
	for _, inc := range s.incidents {
		out = append(out, inc)
	}
	s.mu.RUnlock()

	scoring.Rank(out)
	return out
}

// Reconcile replaces the collection with a freshly fetched snapshot,
// rescoring every record. Records failing validation are dropped and counted.
func (s *IncidentStore) Reconcile(incidents []types.Incident) (kept, dropped int) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]types.Incident, len(incidents))
	for _, inc := range incidents {
		if inc.ID == "" || inc.Validate() != nil {
			dropped++
			continue
		}
		inc.PriorityScore = scoring.Score(inc, now)
		next[inc.ID] = inc
	}
	s.incidents = next
	return len(next), dropped
}

// RescoreAll recomputes every cached priority score. The recency bonus decays
// with wall time, so cached scores go stale between mutations without this.
func (s *IncidentStore) RescoreAll() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, inc := range s.incidents {
		inc.PriorityScore = scoring.Score(inc, now)
		s.incidents[id] = inc
	}
}

// Len returns the current incident count.
func (s *IncidentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.incidents)
}
