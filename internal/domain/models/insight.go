package models

// Insight severities, ordered from most to least urgent.
const (
	InsightDanger  = "danger"
	InsightInfo    = "info"
	InsightWarning = "warning"
)

// Insight is an advisory card computed from the current inventory snapshot.
// Insights are never persisted.
type Insight struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Body  string `json:"body"`
}
