package types

// ChangeEvent is an inbound message from the incident change feed. Only Type
// is inspected; the payload is never treated as authoritative. The dashboard
// always refetches instead of trusting the push body.
type ChangeEvent struct {
	Type string `json:"type"`
}

// Change feed event types. The backend emits both upper and lower case
// variants depending on the producing service.
const (
	EventNewIncident      = "NEW_INCIDENT"
	EventIncidentUpdate   = "INCIDENT_UPDATE"
	EventStatusChange     = "STATUS_CHANGE"
	EventNewIncidentLower = "new_incident"
	EventIncidentUpdLower = "incident_update"
)

// TriggersRefresh reports whether the event type should schedule a refetch.
func (e ChangeEvent) TriggersRefresh() bool {
	switch e.Type {
	case EventNewIncident, EventIncidentUpdate, EventStatusChange,
		EventNewIncidentLower, EventIncidentUpdLower:
		return true
	}
	return false
}
