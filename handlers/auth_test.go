package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netify/internal/auth"
	"netify/models"
	"netify/services/users"
)

type fakeProfileService struct {
	profileResp  *models.Profile
	profileErr   error
	lastIdentity auth.Identity
}

func (f *fakeProfileService) Profile(identity auth.Identity) (*models.Profile, error) {
	f.lastIdentity = identity
	return f.profileResp, f.profileErr
}

func TestMeReturnsProfile(t *testing.T) {
	fake := &fakeProfileService{profileResp: &models.Profile{
		ID:     "uid-1",
		Email:  "a@example.com",
		Liked:  []models.CatalogItem{{ID: 1, Type: models.MediaTypeMovie}},
		MyList: []models.CatalogItem{},
	}}
	h := NewAuthHandler(fake)

	rec := httptest.NewRecorder()
	h.Me(rec, authedRequest(http.MethodGet, "/api/auth/me", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "uid-1", fake.lastIdentity.UID)

	var body struct {
		User models.Profile `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "a@example.com", body.User.Email)
	assert.Len(t, body.User.Liked, 1)
}

func TestMeRequiresIdentity(t *testing.T) {
	h := NewAuthHandler(&fakeProfileService{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeMapsNotFound(t *testing.T) {
	h := NewAuthHandler(&fakeProfileService{profileErr: users.ErrNotFound})

	rec := httptest.NewRecorder()
	h.Me(rec, authedRequest(http.MethodGet, "/api/auth/me", ""))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSignupAndLoginAreGone(t *testing.T) {
	h := NewAuthHandler(&fakeProfileService{})

	for _, route := range []http.HandlerFunc{h.Signup, h.Login} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth", nil)
		rec := httptest.NewRecorder()
		route(rec, req)

		require.Equal(t, http.StatusGone, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body["message"], "identity provider")
	}
}
