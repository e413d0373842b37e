package handlers

import (
	"context"
	"net/http"
	"strconv"

	"netify/models"
	"netify/services/catalog"
)

type catalogService interface {
	Genres(ctx context.Context) ([]models.Genre, error)
	Discover(ctx context.Context, q catalog.DiscoverQuery) (*models.Page, error)
	Trending(ctx context.Context, mediaType models.MediaType, page int) (*models.Page, error)
	Trailer(ctx context.Context, mediaType models.MediaType, id string) (*models.Trailer, error)
	Sections(ctx context.Context, mediaType models.MediaType, genresCSV, year string) (*models.SectionSet, error)
}

var _ catalogService = (*catalog.Service)(nil)

// CatalogHandler exposes the catalog proxy operations over HTTP. Parameter
// parsing happens here; validation and caching live in the service.
type CatalogHandler struct {
	Service catalogService
}

func NewCatalogHandler(service catalogService) *CatalogHandler {
	return &CatalogHandler{Service: service}
}

// Genres serves GET /api/catalog/genres.
func (h *CatalogHandler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Service.Genres(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"genres": genres})
}

// Discover serves GET /api/catalog/discover.
func (h *CatalogHandler) Discover(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, ok := parsePage(w, query.Get("page"))
	if !ok {
		return
	}

	result, err := h.Service.Discover(r.Context(), catalog.DiscoverQuery{
		Type:   mediaTypeParam(query.Get("type")),
		Genre:  query.Get("genre"),
		Year:   query.Get("year"),
		SortBy: query.Get("sortBy"),
		Page:   page,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Trending serves GET /api/catalog/trending.
func (h *CatalogHandler) Trending(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, ok := parsePage(w, query.Get("page"))
	if !ok {
		return
	}

	result, err := h.Service.Trending(r.Context(), mediaTypeParam(query.Get("type")), page)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Trailer serves GET /api/catalog/trailer.
func (h *CatalogHandler) Trailer(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := h.Service.Trailer(r.Context(), mediaTypeParam(query.Get("type")), query.Get("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Sections serves GET /api/catalog/sections.
func (h *CatalogHandler) Sections(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := h.Service.Sections(r.Context(), mediaTypeParam(query.Get("type")), query.Get("genres"), query.Get("year"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// mediaTypeParam applies the movie default for an absent type parameter.
// Invalid values pass through so the service rejects them.
func mediaTypeParam(raw string) models.MediaType {
	if raw == "" {
		return models.MediaTypeMovie
	}
	return models.MediaType(raw)
}

func parsePage(w http.ResponseWriter, raw string) (int, bool) {
	if raw == "" {
		return 1, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		writeError(w, http.StatusBadRequest, "Invalid page")
		return 0, false
	}
	return page, true
}
