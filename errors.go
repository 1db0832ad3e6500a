package mailaddr

import "errors"

// ErrInvalidEmail is returned by EnforceValid for addresses that fail
// validation. Use Validate to learn the FailureReason.
var ErrInvalidEmail = errors.New("mailaddr: invalid email address")
