package apiclient

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"go-citywatch/types"
)

const requestTimeout = 10 * time.Second

// FetchError is a recoverable snapshot-refresh failure. The caller is
// expected to keep its last-known-good snapshot and let the coordinator
// schedule the next attempt; this never crashes the dashboard.
type FetchError struct {
	Op      string
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client consumes the remote incident API.
type Client struct {
	httpc *resty.Client
}

func New(baseURL string) *Client {
	httpc := resty.New()
	httpc.SetBaseURL(baseURL)
	httpc.SetTimeout(requestTimeout)

	return &Client{httpc: httpc}
}

// wireIncident is the loose shape the remote API returns. Enumerations
// arrive in assorted casings and synonyms; parsing into the closed types
// happens here so malformed records never reach the store.
type wireIncident struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Status      string `json:"status"`
	Location    struct {
		Lat     float64 `json:"lat"`
		Lng     float64 `json:"lng"`
		Address string  `json:"address"`
	} `json:"location"`
	Verifications int       `json:"verifications"`
	Flags         int       `json:"flags"`
	Timestamp     time.Time `json:"timestamp"`
}

type incidentsResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Incidents []wireIncident `json:"incidents"`
}

type statisticsResponse struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message"`
	Statistics map[string]interface{} `json:"statistics"`
}

// FetchIncidents retrieves the incident snapshot for a lookback window in
// hours. Records that fail enum or coordinate validation are logged and
// skipped rather than poisoning the snapshot.
func (c *Client) FetchIncidents(ctx context.Context, hours int) ([]types.Incident, error) {
	var out incidentsResponse
	resp, err := c.httpc.R().
		SetContext(ctx).
		SetQueryParam("hours", fmt.Sprintf("%d", hours)).
		SetResult(&out).
		Get("/incidents")
	if err != nil {
		return nil, &FetchError{Op: "fetch incidents", Err: err}
	}
	if resp.IsError() {
		return nil, &FetchError{Op: "fetch incidents", Message: resp.Status()}
	}
	if !out.Success {
		return nil, &FetchError{Op: "fetch incidents", Message: out.Message}
	}

	incidents := make([]types.Incident, 0, len(out.Incidents))
	for _, w := range out.Incidents {
		inc, err := parseIncident(w)
		if err != nil {
			log.Printf("apiclient: skipping malformed incident %q: %v", w.ID, err)
			continue
		}
		incidents = append(incidents, inc)
	}
	return incidents, nil
}

// FetchStatistics retrieves the remote aggregate statistics for a lookback
// window in days. The payload is passed through untyped; only the dashboard
// cards read it.
func (c *Client) FetchStatistics(ctx context.Context, days int) (map[string]interface{}, error) {
	var out statisticsResponse
	resp, err := c.httpc.R().
		SetContext(ctx).
		SetQueryParam("days", fmt.Sprintf("%d", days)).
		SetResult(&out).
		Get("/incidents/statistics")
	if err != nil {
		return nil, &FetchError{Op: "fetch statistics", Err: err}
	}
	if resp.IsError() {
		return nil, &FetchError{Op: "fetch statistics", Message: resp.Status()}
	}
	if !out.Success {
		return nil, &FetchError{Op: "fetch statistics", Message: out.Message}
	}
	return out.Statistics, nil
}

func parseIncident(w wireIncident) (types.Incident, error) {
	if w.ID == "" {
		return types.Incident{}, fmt.Errorf("missing id")
	}

	incType, err := types.ParseIncidentType(w.Type)
	if err != nil {
		return types.Incident{}, err
	}
	severity, err := types.ParseSeverity(w.Severity)
	if err != nil {
		return types.Incident{}, err
	}
	status, err := types.ParseStatus(w.Status)
	if err != nil {
		return types.Incident{}, err
	}

	inc := types.Incident{
		ID:            w.ID,
		Type:          incType,
		Description:   w.Description,
		Severity:      severity,
		Status:        status,
		Lat:           w.Location.Lat,
		Long:          w.Location.Lng,
		Address:       w.Location.Address,
		Verifications: w.Verifications,
		Flags:         w.Flags,
		Timestamp:     w.Timestamp,
	}
	if err := inc.Validate(); err != nil {
		return types.Incident{}, err
	}
	return inc, nil
}
