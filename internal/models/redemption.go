package models

// RedemptionFailure classifies why a scan was rejected.
type RedemptionFailure string

const (
	RedemptionFailureNone       RedemptionFailure = ""
	RedemptionFailureNotFound   RedemptionFailure = "not_found"
	RedemptionFailureExpired    RedemptionFailure = "expired"
	RedemptionFailureOutOfStock RedemptionFailure = "out_of_stock"
)

// RedemptionResult is the structured outcome of a scan. Failures are reported
// here rather than as transport errors so the point-of-sale UI can render a
// specific message. On success Promotion holds the post-mutation snapshot.
type RedemptionResult struct {
	Success   bool              `json:"success"`
	Failure   RedemptionFailure `json:"failure,omitempty"`
	Message   string            `json:"message"`
	Promotion *Promotion        `json:"promotion,omitempty"`
	// FinalUnit is set when this redemption consumed the last unit.
	FinalUnit bool `json:"final_unit,omitempty"`
}
