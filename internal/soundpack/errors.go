package soundpack

import "fmt"

// NetworkError reports an index, descriptor, or payload fetch failure. It
// is recoverable and user-visible; the operation is aborted with no partial
// install artifacts left behind.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError reports a descriptor missing a required field. It is
// raised before any network call is attempted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid package: " + e.Reason
}

// PersistenceError reports a local write failure. Callers log it and keep
// in-memory state updated so the session remains usable.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
