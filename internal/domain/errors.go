package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the request-level failure taxonomy. Handlers translate
// these into status codes; nothing below the handler layer retries them.
var (
	// ErrValidation indicates a required input field is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a referenced user or transaction does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates missing or invalid credentials or token.
	ErrUnauthorized = errors.New("not authorized")
)

// UpstreamService identifies which external dependency an UpstreamError
// originated from.
type UpstreamService string

const (
	ServiceClassifier  UpstreamService = "classifier"
	ServiceRecommender UpstreamService = "recommender"
	ServicePrediction  UpstreamService = "prediction"
)

// UpstreamError wraps a failure of the language-model provider or the
// prediction service: the call itself failed, or its reply was unusable.
type UpstreamError struct {
	Service UpstreamService
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream call failed: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps err as a failure of the given service.
func NewUpstreamError(service UpstreamService, err error) *UpstreamError {
	return &UpstreamError{Service: service, Err: err}
}

// IsUpstream reports whether err is (or wraps) an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
