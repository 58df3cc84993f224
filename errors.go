package gotlmem

import (
	"errors"
	"fmt"
)

// ProviderErrorKind classifies translation provider failures.
type ProviderErrorKind string

const (
	// ErrKindConfig means the provider is not usable at all (missing
	// credential). Never retried; blocks translation actions.
	ErrKindConfig ProviderErrorKind = "config"
	// ErrKindTransport means the request never completed (network failure).
	ErrKindTransport ProviderErrorKind = "transport"
	// ErrKindProtocol means the provider answered with an error status.
	ErrKindProtocol ProviderErrorKind = "protocol"
	// ErrKindFormat means a success response was missing the expected text.
	ErrKindFormat ProviderErrorKind = "format"
)

// ProviderError indicates a translation provider failure.
type ProviderError struct {
	Kind    ProviderErrorKind
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s error: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider %s error: %s", e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// IsConfigError reports whether err is a provider configuration error.
// Config errors are surfaced to the caller as blocking messages rather than
// recorded per item.
func IsConfigError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == ErrKindConfig
}

// NotFoundError indicates an operation referenced an unknown row id.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// StoreError indicates a translation store failure.
type StoreError struct {
	Op    string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
