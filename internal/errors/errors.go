// Package errors defines the domain error taxonomy shared across the
// transaction pipeline. Errors are raised by the stage that detects them
// and propagate unmodified to the caller for HTTP status mapping.
package errors

import "fmt"

// DomainError is a coded business error suitable for API responses.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string { return e.Message }

// FraudBlockedError aborts a request that tripped a blocking fraud rule.
// The rule identifier matches the SuspiciousActivity record created
// alongside it.
type FraudBlockedError struct {
	Rule    string
	Message string
}

func (e *FraudBlockedError) Error() string {
	return fmt.Sprintf("transaction blocked by fraud rule %s: %s", e.Rule, e.Message)
}
