package domain

// ValidationResult is the coarse status of one validated operation.
type ValidationResult string

const (
	ValidationSuccess ValidationResult = "SUCCESS"
	ValidationFailed  ValidationResult = "FAILED"
)

// ValidationOutcome is produced once per submitted operation.
type ValidationOutcome struct {
	Result       ValidationResult `json:"result"`
	ResultDetail string           `json:"resultDetail"`
}

// Failed reports whether the outcome is a failure.
func (o ValidationOutcome) Failed() bool {
	return o.Result == ValidationFailed
}

// AnyFailed is the batch status: true if at least one outcome failed.
func AnyFailed(outcomes []ValidationOutcome) bool {
	for _, o := range outcomes {
		if o.Failed() {
			return true
		}
	}
	return false
}
