package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVerifyReturnsIdentity(t *testing.T) {
	var gotToken, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		gotToken = body["idToken"]

		json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]string{
				{"localId": "uid-1", "email": "a@example.com"},
			},
		})
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL, "api-key")
	identity, err := v.Verify(context.Background(), "token-123")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if identity.UID != "uid-1" || identity.Email != "a@example.com" {
		t.Fatalf("unexpected identity %+v", identity)
	}
	if gotToken != "token-123" {
		t.Fatalf("expected token posted to the provider, got %q", gotToken)
	}
	if gotKey != "api-key" {
		t.Fatalf("expected api key in the query, got %q", gotKey)
	}
}

func TestVerifyRejectsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"INVALID_ID_TOKEN"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL, "")
	if _, err := v.Verify(context.Background(), "bad"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyRejectsEmptyUserSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"users": []any{}})
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL, "")
	if _, err := v.Verify(context.Background(), "orphan"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := NewHTTPVerifier(srv.URL, "")
	if _, err := v.Verify(ctx, "token"); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
