package diagnosis

import "time"

// Bounded collection caps. Insertion beyond a cap evicts the oldest entry.
const (
	HistoryLimit  = 10
	ErrorLogLimit = 100
)

// HistoryEntry is one finished diagnosis kept for the 履歴 menu. Newest
// first. JSON field names match the payloads already in storage.
type HistoryEntry struct {
	Timestamp       time.Time `json:"timestamp"`
	Date            string    `json:"date"` // JST display form
	Carrier         string    `json:"carrier"`
	Price           int       `json:"price"`
	DataUsage       string    `json:"dataUsage"`
	Members         int       `json:"members"`
	Needs           []string  `json:"needs"`
	RecommendedPlan string    `json:"recommendedPlan"`
}

// ErrorLogEntry records one storage or runtime failure.
type ErrorLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Context   string    `json:"context"`
	Message   string    `json:"message"`
}
