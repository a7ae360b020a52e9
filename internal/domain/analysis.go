package domain

// Analysis is the raw classifier output for one complaint description.
// Category and Level carry the model's strings untouched; the normalizer
// owns validation and defaulting. Numeric fields are untrusted external
// input until clamped.
type Analysis struct {
	Title          string
	Category       string
	Summary        string
	Location       string
	Urgency        float64
	Impact         float64
	FinalScore     float64
	Level          string
	ActionPlan     []string
	CitizenMessage string
}
