package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidInput marks missing or malformed request parameters.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRateLimited means TMDB answered 429 even after the retry.
	ErrRateLimited = errors.New("too many requests to TMDB, please try again in a moment")
	// ErrUpstreamAuth means TMDB rejected our credentials; an operator has to
	// fix the configured API key.
	ErrUpstreamAuth = errors.New("TMDB rejected the request (check tmdb_api_key)")
	// ErrUpstreamUnavailable covers transport failures with no HTTP status.
	ErrUpstreamUnavailable = errors.New("upstream TMDB request failed")
)

// UpstreamError is a TMDB failure outside the auth and rate-limit classes,
// carrying the upstream status and message.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("TMDB error (%d): %s", e.Status, e.Message)
}

// translateUpstream maps raw client failures onto the service error taxonomy.
// Validation errors pass through untouched; raw transport errors never leak.
func translateUpstream(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInvalidInput) {
		return err
	}

	var se *StatusError
	if errors.As(err, &se) {
		switch {
		case se.Status == http.StatusUnauthorized, se.Status == http.StatusForbidden:
			return ErrUpstreamAuth
		case se.Status == http.StatusTooManyRequests:
			return ErrRateLimited
		default:
			return &UpstreamError{Status: se.Status, Message: se.Message}
		}
	}
	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
}
