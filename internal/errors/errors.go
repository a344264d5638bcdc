// Package errors defines the domain error taxonomy surfaced by the
// ledger core. Callers distinguish kinds with errors.Is against the
// exported sentinel values; the boundary layer maps them to status
// codes and user-facing messages.
package errors

// DomainError is a coded business error.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
