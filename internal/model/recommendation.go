package model

// UrgencyLevel is the qualitative severity of an irrigation need.
type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "low"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyHigh   UrgencyLevel = "high"
)

// IrrigationRecommendation is the outcome of evaluating a crop profile
// against the current soil state and the daily forecast sequence. Message is
// display-only; the decision contract is the other three fields.
type IrrigationRecommendation struct {
	NeedsIrrigation bool         `json:"needs_irrigation"`
	UrgencyLevel    UrgencyLevel `json:"urgency_level"`
	Message         string       `json:"message"`
	DaysUntilNeeded int          `json:"days_until_needed,omitempty"`
}
