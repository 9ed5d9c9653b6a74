// File: services/intelligence/errors.go
package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// Sentinel errors surfaced to the handler layer after retries are spent.
var (
	// ErrServiceUnavailable means primary and fallback models were both
	// exhausted; the caller should ask the customer to retry shortly.
	ErrServiceUnavailable = errors.New("ai service unavailable")

	// ErrCredentialRejected means the upstream rejected our credentials.
	// No amount of retrying helps; it needs operator attention.
	ErrCredentialRejected = errors.New("ai credentials rejected")
)

// ErrorKind classifies an upstream failure for retry purposes.
type ErrorKind int

const (
	// KindTransient failures (quota, overload, timeouts) are retried on
	// the full backoff schedule.
	KindTransient ErrorKind = iota
	// KindFatal failures (bad credentials) abort immediately.
	KindFatal
	// KindUnknown failures get a single retry before being treated as fatal
	// for the current model.
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// InvocationError wraps a model invocation failure with its classification.
type InvocationError struct {
	Kind ErrorKind
	Err  error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("model invocation failed (%s): %v", e.Kind, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// Classify maps an upstream error to a retry classification. Google API
// status codes 429/500/503 and deadline expiry are transient; 401/403 are
// credential failures.
func Classify(err error) *InvocationError {
	if err == nil {
		return nil
	}

	var inv *InvocationError
	if errors.As(err, &inv) {
		return inv
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &InvocationError{Kind: KindTransient, Err: err}
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 429, 500, 503:
			return &InvocationError{Kind: KindTransient, Err: err}
		case 401, 403:
			return &InvocationError{Kind: KindFatal, Err: err}
		}
	}

	return &InvocationError{Kind: KindUnknown, Err: err}
}
