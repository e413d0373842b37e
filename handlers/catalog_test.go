package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netify/models"
	"netify/services/catalog"
)

type fakeCatalogService struct {
	genresResp   []models.Genre
	genresErr    error
	discoverResp *models.Page
	discoverErr  error
	trendingResp *models.Page
	trendingErr  error
	trailerResp  *models.Trailer
	trailerErr   error
	sectionsResp *models.SectionSet
	sectionsErr  error

	lastDiscoverQuery catalog.DiscoverQuery
	lastTrendingType  models.MediaType
	lastTrendingPage  int
	lastTrailerType   models.MediaType
	lastTrailerID     string
	lastSectionsType  models.MediaType
	lastSectionsCSV   string
	lastSectionsYear  string
}

func (f *fakeCatalogService) Genres(_ context.Context) ([]models.Genre, error) {
	return f.genresResp, f.genresErr
}

func (f *fakeCatalogService) Discover(_ context.Context, q catalog.DiscoverQuery) (*models.Page, error) {
	f.lastDiscoverQuery = q
	return f.discoverResp, f.discoverErr
}

func (f *fakeCatalogService) Trending(_ context.Context, mediaType models.MediaType, page int) (*models.Page, error) {
	f.lastTrendingType = mediaType
	f.lastTrendingPage = page
	return f.trendingResp, f.trendingErr
}

func (f *fakeCatalogService) Trailer(_ context.Context, mediaType models.MediaType, id string) (*models.Trailer, error) {
	f.lastTrailerType = mediaType
	f.lastTrailerID = id
	return f.trailerResp, f.trailerErr
}

func (f *fakeCatalogService) Sections(_ context.Context, mediaType models.MediaType, genresCSV, year string) (*models.SectionSet, error) {
	f.lastSectionsType = mediaType
	f.lastSectionsCSV = genresCSV
	f.lastSectionsYear = year
	return f.sectionsResp, f.sectionsErr
}

func doCatalogRequest(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestDiscoverPassesParams(t *testing.T) {
	fake := &fakeCatalogService{discoverResp: &models.Page{Page: 1, TotalPages: 1}}
	h := NewCatalogHandler(fake)

	rec := doCatalogRequest(h.Discover, "/api/catalog/discover?type=tv&genre=28&year=2020&sortBy=vote_average.desc&page=3")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, catalog.DiscoverQuery{
		Type:   models.MediaTypeTV,
		Genre:  "28",
		Year:   "2020",
		SortBy: "vote_average.desc",
		Page:   3,
	}, fake.lastDiscoverQuery)
}

func TestDiscoverDefaultsTypeAndPage(t *testing.T) {
	fake := &fakeCatalogService{discoverResp: &models.Page{}}
	h := NewCatalogHandler(fake)

	rec := doCatalogRequest(h.Discover, "/api/catalog/discover")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.MediaTypeMovie, fake.lastDiscoverQuery.Type)
	assert.Equal(t, 1, fake.lastDiscoverQuery.Page)
}

func TestDiscoverRejectsBadPage(t *testing.T) {
	fake := &fakeCatalogService{}
	h := NewCatalogHandler(fake)

	rec := doCatalogRequest(h.Discover, "/api/catalog/discover?page=zero")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid page", body["message"])
}

func TestTrendingPassesParams(t *testing.T) {
	fake := &fakeCatalogService{trendingResp: &models.Page{}}
	h := NewCatalogHandler(fake)

	rec := doCatalogRequest(h.Trending, "/api/catalog/trending?type=tv&page=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.MediaTypeTV, fake.lastTrendingType)
	assert.Equal(t, 2, fake.lastTrendingPage)
}

func TestTrailerPassesParams(t *testing.T) {
	fake := &fakeCatalogService{trailerResp: &models.Trailer{}}
	h := NewCatalogHandler(fake)

	rec := doCatalogRequest(h.Trailer, "/api/catalog/trailer?type=movie&id=603")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.MediaTypeMovie, fake.lastTrailerType)
	assert.Equal(t, "603", fake.lastTrailerID)
}

func TestSectionsPassesParams(t *testing.T) {
	fake := &fakeCatalogService{sectionsResp: &models.SectionSet{}}
	h := NewCatalogHandler(fake)

	rec := doCatalogRequest(h.Sections, "/api/catalog/sections?type=tv&genres=28,35&year=2021")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.MediaTypeTV, fake.lastSectionsType)
	assert.Equal(t, "28,35", fake.lastSectionsCSV)
	assert.Equal(t, "2021", fake.lastSectionsYear)
}

func TestGenresResponseEnvelope(t *testing.T) {
	fake := &fakeCatalogService{genresResp: []models.Genre{{ID: 28, Name: "Action"}}}
	h := NewCatalogHandler(fake)

	rec := doCatalogRequest(h.Genres, "/api/catalog/genres")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Genres []models.Genre `json:"genres"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Genres, 1)
	assert.Equal(t, "Action", body.Genres[0].Name)
}

func TestCatalogErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", catalog.ErrInvalidInput, http.StatusBadRequest},
		{"rate limited", catalog.ErrRateLimited, http.StatusTooManyRequests},
		{"upstream auth", catalog.ErrUpstreamAuth, http.StatusBadGateway},
		{"upstream unavailable", catalog.ErrUpstreamUnavailable, http.StatusBadGateway},
		{"upstream status", &catalog.UpstreamError{Status: 500, Message: "boom"}, http.StatusBadGateway},
		{"unexpected", errors.New("surprise"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeCatalogService{discoverErr: tc.err}
			h := NewCatalogHandler(fake)

			rec := doCatalogRequest(h.Discover, "/api/catalog/discover?type=movie")
			require.Equal(t, tc.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.NotEmpty(t, body["message"])
			if tc.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, "Server error", body["message"], "internal details must not leak")
			}
		})
	}
}
