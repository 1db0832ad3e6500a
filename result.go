package mailaddr

// ValidationResult is the outcome of validating one address: either a parsed
// Email or the reason it was rejected.
type ValidationResult struct {
	email  *Email
	reason FailureReason
}

func success(e *Email) ValidationResult {
	return ValidationResult{email: e}
}

func failure(reason FailureReason) ValidationResult {
	return ValidationResult{reason: reason}
}

// IsSuccess reports whether the address was valid.
func (r ValidationResult) IsSuccess() bool {
	return r.email != nil
}

// IsFailure reports whether the address was rejected.
func (r ValidationResult) IsFailure() bool {
	return r.email == nil
}

// Email returns the parsed address of a successful result.
func (r ValidationResult) Email() (*Email, bool) {
	return r.email, r.email != nil
}

// FailureReason returns why the address was rejected, or the zero value for
// a successful result.
func (r ValidationResult) FailureReason() FailureReason {
	return r.reason
}
