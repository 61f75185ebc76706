package types

import (
	"fmt"
	"strings"
	"time"
)

type Severity string

const (
	Low      Severity = "low"
	Medium   Severity = "medium"
	High     Severity = "high"
	Critical Severity = "critical"
)

// ParseSeverity maps a wire value to a Severity. Unknown values are an error
// so malformed records surface at ingestion instead of deep in scoring.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	case "critical":
		return Critical, nil
	}
	return "", fmt.Errorf("unknown severity %q", s)
}

type Status string

const (
	Pending    Status = "pending"
	Verified   Status = "verified"
	InProgress Status = "in_progress"
	Resolved   Status = "resolved"
)

// ParseStatus maps a wire value to a Status. "new" is accepted as a synonym
// for pending at ingestion.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "new":
		return Pending, nil
	case "verified":
		return Verified, nil
	case "in_progress", "in progress", "in-progress":
		return InProgress, nil
	case "resolved":
		return Resolved, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

type IncidentType string

const (
	Fire            IncidentType = "fire"
	Flood           IncidentType = "flood"
	Violence        IncidentType = "violence"
	RoadAccident    IncidentType = "road_accident"
	GasLeak         IncidentType = "gas_leak"
	PowerOutage     IncidentType = "power_outage"
	Infrastructure  IncidentType = "infrastructure"
	Medical         IncidentType = "medical"
	NaturalDisaster IncidentType = "natural_disaster"
	Other           IncidentType = "other"
)

func ParseIncidentType(s string) (IncidentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fire", "fire emergency":
		return Fire, nil
	case "flood":
		return Flood, nil
	case "violence", "crime":
		return Violence, nil
	case "road_accident", "accident", "traffic accident":
		return RoadAccident, nil
	case "gas_leak", "gas leak":
		return GasLeak, nil
	case "power_outage", "power outage":
		return PowerOutage, nil
	case "infrastructure", "infrastructure failure":
		return Infrastructure, nil
	case "medical", "medical emergency":
		return Medical, nil
	case "natural_disaster", "natural disaster":
		return NaturalDisaster, nil
	case "other":
		return Other, nil
	}
	return "", fmt.Errorf("unknown incident type %q", s)
}

// Incident is a single reported emergency/event record. ID and Timestamp are
// immutable after creation; PriorityScore is a cached derivation owned by the
// store, never a source of truth.
type Incident struct {
	ID            string       `json:"id"`
	Type          IncidentType `json:"type"`
	Description   string       `json:"description,omitempty"`
	Severity      Severity     `json:"severity"`
	Status        Status       `json:"status"`
	Lat           float64      `json:"lat"`
	Long          float64      `json:"long"`
	Address       string       `json:"address,omitempty"`
	Verifications int          `json:"verifications"`
	Flags         int          `json:"flags"`
	Timestamp     time.Time    `json:"timestamp"`
	PriorityScore float64      `json:"priorityScore"`
}

// Validate checks the closed enumerations and coordinate ranges.
func (i Incident) Validate() error {
	if _, err := ParseIncidentType(string(i.Type)); err != nil {
		return err
	}
	if _, err := ParseSeverity(string(i.Severity)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(i.Status)); err != nil {
		return err
	}
	if i.Lat < -90 || i.Lat > 90 || i.Long < -180 || i.Long > 180 {
		return fmt.Errorf("coordinates out of range: %f, %f", i.Lat, i.Long)
	}
	if i.Verifications < 0 || i.Flags < 0 {
		return fmt.Errorf("negative social counters")
	}
	return nil
}
