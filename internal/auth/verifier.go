package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"
)

// ErrUnauthorized means the identity provider rejected the credential.
var ErrUnauthorized = errors.New("unauthorized")

// Identity is the caller identity yielded by the identity provider.
type Identity struct {
	UID   string
	Email string
}

// Verifier validates a bearer credential with the identity provider and
// yields the caller's stable identity. Token verification lives entirely on
// the provider side; this service never inspects the credential itself.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// HTTPVerifier delegates verification to the identity provider's
// accounts:lookup endpoint.
type HTTPVerifier struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPVerifier(endpoint, apiKey string) *HTTPVerifier {
	return &HTTPVerifier{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify posts the token to the lookup endpoint. Any non-200 answer or an
// empty user set is treated as a rejected credential.
func (v *HTTPVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	payload, err := json.Marshal(map[string]string{"idToken": token})
	if err != nil {
		return Identity{}, err
	}

	endpoint := v.endpoint
	if v.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(v.apiKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Identity{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return Identity{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, ErrUnauthorized
	}

	var out struct {
		Users []struct {
			LocalID string `json:"localId"`
			Email   string `json:"email"`
		} `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Identity{}, ErrUnauthorized
	}
	if len(out.Users) == 0 || out.Users[0].LocalID == "" {
		return Identity{}, ErrUnauthorized
	}
	return Identity{UID: out.Users[0].LocalID, Email: out.Users[0].Email}, nil
}
