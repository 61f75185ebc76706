package types

// RiskRatio holds the high/low risk percentages of a snapshot. Both values
// are rounded independently, so they are not guaranteed to sum to exactly 100.
type RiskRatio struct {
	High int `json:"high"`
	Low  int `json:"low"`
}

// DashboardStats is the summary derived from one incident snapshot for the
// dashboard cards and tables.
type DashboardStats struct {
	ActiveIncidents   int        `json:"activeIncidents"`
	ResolvedIncidents int        `json:"resolvedIncidents"`
	HighRiskCount     int        `json:"highRiskCount"`
	LowRiskCount      int        `json:"lowRiskCount"`
	TotalIncidents    int        `json:"totalIncidents"`
	RecentIncidents   []Incident `json:"recentIncidents"`
	RiskRatio         RiskRatio  `json:"riskRatio"`
}
