package models

// DamageReport is the structured result of a one-shot photo inspection.
type DamageReport struct {
	Damage           []string `json:"damage"`
	Severity         string   `json:"severity"`
	LikelyCause      string   `json:"likelyCause"`
	EstimatedCostMin int      `json:"estimatedCostMin,omitempty"`
	EstimatedCostMax int      `json:"estimatedCostMax,omitempty"`
	RawText          string   `json:"rawText,omitempty"`
}
