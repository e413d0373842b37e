package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"netify/models"
)

const (
	defaultGenreTTL    = 60 * time.Minute
	defaultResponseTTL = 60 * time.Second

	defaultSort = "popularity.desc"

	// sectionWorkers bounds the discover fan-out so one sections request
	// cannot burst an unbounded number of upstream calls.
	sectionWorkers = 4
)

// Service implements the catalog operations on top of the TMDB client and two
// independent caches: a long-TTL genre-map cache and a short-TTL response
// cache. Every operation follows the same protocol per cache key: hit returns
// the cached payload, miss fetches, normalizes, stores, and returns.
// Concurrent identical misses are not deduplicated; the upstream calls are
// idempotent and cheap relative to the 60s cache window.
type Service struct {
	tmdb          *tmdbClient
	genreCache    *ttlCache[models.GenreMap]
	responseCache *ttlCache[any]
	genreTTL      time.Duration
	responseTTL   time.Duration
}

// Options configures a Service. Zero TTLs fall back to the defaults.
type Options struct {
	APIKey      string
	BaseURL     string
	HTTPClient  *http.Client
	GenreTTL    time.Duration
	ResponseTTL time.Duration
}

func NewService(opts Options) *Service {
	if opts.GenreTTL <= 0 {
		opts.GenreTTL = defaultGenreTTL
	}
	if opts.ResponseTTL <= 0 {
		opts.ResponseTTL = defaultResponseTTL
	}
	return &Service{
		tmdb:          newTMDBClient(opts.BaseURL, opts.APIKey, opts.HTTPClient),
		genreCache:    newTTLCache[models.GenreMap](),
		responseCache: newTTLCache[any](),
		genreTTL:      opts.GenreTTL,
		responseTTL:   opts.ResponseTTL,
	}
}

// Genres returns the movie and TV genre lists merged into one, deduplicated by
// ID with the first occurrence winning. The merged list is cached for the
// genre TTL under a fixed key.
func (s *Service) Genres(ctx context.Context) ([]models.Genre, error) {
	const key = "genres:merged"
	if cached, ok := s.responseCache.get(key); ok {
		return cached.([]models.Genre), nil
	}

	types := []models.MediaType{models.MediaTypeMovie, models.MediaTypeTV}
	lists, err := mapLimit(ctx, types, len(types), func(ctx context.Context, mt models.MediaType) ([]models.Genre, error) {
		var out tmdbGenreList
		if err := s.tmdb.get(ctx, fmt.Sprintf("/genre/%s/list", mt), nil, &out); err != nil {
			return nil, err
		}
		genres := make([]models.Genre, 0, len(out.Genres))
		for _, g := range out.Genres {
			genres = append(genres, models.Genre{ID: g.ID, Name: g.Name})
		}
		return genres, nil
	})
	if err != nil {
		return nil, translateUpstream(err)
	}

	seen := make(map[int64]bool)
	merged := make([]models.Genre, 0, len(lists[0])+len(lists[1]))
	for _, list := range lists {
		for _, g := range list {
			if seen[g.ID] {
				continue
			}
			seen[g.ID] = true
			merged = append(merged, g)
		}
	}

	s.responseCache.set(key, merged, s.genreTTL)
	return merged, nil
}

// DiscoverQuery parameterizes a Discover call. SortBy and Page fall back to
// popularity.desc and 1.
type DiscoverQuery struct {
	Type   models.MediaType
	Genre  string
	Year   string
	SortBy string
	Page   int
}

// Discover returns one page of catalog items matching the query, cached for
// the response TTL under a key built from every parameter.
func (s *Service) Discover(ctx context.Context, q DiscoverQuery) (*models.Page, error) {
	if !q.Type.Valid() {
		return nil, fmt.Errorf("%w: type must be movie or tv", ErrInvalidInput)
	}
	page, err := s.discover(ctx, q)
	if err != nil {
		return nil, translateUpstream(err)
	}
	return page, nil
}

// discover implements the cache-or-fetch protocol shared by Discover and
// Sections. Callers validate the media type; errors come back untranslated.
func (s *Service) discover(ctx context.Context, q DiscoverQuery) (*models.Page, error) {
	if q.SortBy == "" {
		q.SortBy = defaultSort
	}
	if q.Page <= 0 {
		q.Page = 1
	}

	key := fmt.Sprintf("discover:%s:%s:%s:%s:%d", q.Type, q.Genre, q.SortBy, q.Year, q.Page)
	if cached, ok := s.responseCache.get(key); ok {
		return cached.(*models.Page), nil
	}

	genres, err := s.genresFor(ctx, q.Type)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	if q.Genre != "" {
		params.Set("with_genres", q.Genre)
	}
	params.Set("sort_by", q.SortBy)
	if q.Year != "" {
		if q.Type == models.MediaTypeTV {
			params.Set("first_air_date_year", q.Year)
		} else {
			params.Set("primary_release_year", q.Year)
		}
	}
	params.Set("page", strconv.Itoa(q.Page))

	var out tmdbPagedResults
	if err := s.tmdb.get(ctx, "/discover/"+string(q.Type), params, &out); err != nil {
		return nil, err
	}

	page := buildPage(out, q.Type, q.Page, genres)
	s.responseCache.set(key, page, s.responseTTL)
	return page, nil
}

// Trending returns one page of this week's trending items for the media type.
func (s *Service) Trending(ctx context.Context, mediaType models.MediaType, pageNum int) (*models.Page, error) {
	if !mediaType.Valid() {
		return nil, fmt.Errorf("%w: type must be movie or tv", ErrInvalidInput)
	}
	if pageNum <= 0 {
		pageNum = 1
	}

	key := fmt.Sprintf("trending:%s:%d", mediaType, pageNum)
	if cached, ok := s.responseCache.get(key); ok {
		return cached.(*models.Page), nil
	}

	genres, err := s.genresFor(ctx, mediaType)
	if err != nil {
		return nil, translateUpstream(err)
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(pageNum))
	var out tmdbPagedResults
	if err := s.tmdb.get(ctx, fmt.Sprintf("/trending/%s/week", mediaType), params, &out); err != nil {
		return nil, translateUpstream(err)
	}

	page := buildPage(out, mediaType, pageNum, genres)
	s.responseCache.set(key, page, s.responseTTL)
	return page, nil
}

// Trailer returns the preferred YouTube video key for the item: an exact
// trailer wins over a teaser, which wins over the first YouTube entry. A nil
// key is a valid, cacheable answer.
func (s *Service) Trailer(ctx context.Context, mediaType models.MediaType, id string) (*models.Trailer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if !mediaType.Valid() {
		return nil, fmt.Errorf("%w: type must be movie or tv", ErrInvalidInput)
	}

	key := fmt.Sprintf("trailer:%s:%s", mediaType, id)
	if cached, ok := s.responseCache.get(key); ok {
		return cached.(*models.Trailer), nil
	}

	var out tmdbVideoList
	if err := s.tmdb.get(ctx, fmt.Sprintf("/%s/%s/videos", mediaType, url.PathEscape(id)), nil, &out); err != nil {
		return nil, translateUpstream(err)
	}

	trailer := &models.Trailer{YouTubeKey: selectYouTubeKey(out.Results)}
	s.responseCache.set(key, trailer, s.responseTTL)
	return trailer, nil
}

// Sections runs one first-page discover call per requested genre ID through
// the bounded mapper and assembles the results keyed by genre ID.
func (s *Service) Sections(ctx context.Context, mediaType models.MediaType, genresCSV, year string) (*models.SectionSet, error) {
	if !mediaType.Valid() {
		return nil, fmt.Errorf("%w: type must be movie or tv", ErrInvalidInput)
	}
	genreIDs := splitCSV(genresCSV)
	if len(genreIDs) == 0 {
		return nil, fmt.Errorf("%w: genres is required", ErrInvalidInput)
	}

	key := fmt.Sprintf("sections:%s:%s:%s", mediaType, strings.Join(genreIDs, ","), year)
	if cached, ok := s.responseCache.get(key); ok {
		return cached.(*models.SectionSet), nil
	}

	pages, err := mapLimit(ctx, genreIDs, sectionWorkers, func(ctx context.Context, genreID string) (*models.Page, error) {
		return s.discover(ctx, DiscoverQuery{Type: mediaType, Genre: genreID, Year: year})
	})
	if err != nil {
		return nil, translateUpstream(err)
	}

	set := &models.SectionSet{
		Type:     mediaType,
		Sections: make(map[string][]models.CatalogItem, len(genreIDs)),
	}
	for i, genreID := range genreIDs {
		set.Sections[genreID] = pages[i].Items
	}

	s.responseCache.set(key, set, s.responseTTL)
	return set, nil
}

// genresFor returns the ID-to-name genre map for one media type, cached for
// the genre TTL.
func (s *Service) genresFor(ctx context.Context, mediaType models.MediaType) (models.GenreMap, error) {
	key := "genres:" + string(mediaType)
	if cached, ok := s.genreCache.get(key); ok {
		return cached, nil
	}

	var out tmdbGenreList
	if err := s.tmdb.get(ctx, fmt.Sprintf("/genre/%s/list", mediaType), nil, &out); err != nil {
		return nil, err
	}

	m := make(models.GenreMap, len(out.Genres))
	for _, g := range out.Genres {
		m[g.ID] = g.Name
	}
	s.genreCache.set(key, m, s.genreTTL)
	return m, nil
}

// buildPage filters records lacking any artwork and normalizes the rest.
func buildPage(out tmdbPagedResults, mediaType models.MediaType, fallbackPage int, genres models.GenreMap) *models.Page {
	items := make([]models.CatalogItem, 0, len(out.Results))
	for _, raw := range out.Results {
		if !hasImage(raw) {
			continue
		}
		items = append(items, toItem(raw, mediaType, genres))
	}

	page := out.Page
	if page == 0 {
		page = fallbackPage
	}
	totalPages := out.TotalPages
	if totalPages == 0 {
		totalPages = 1
	}
	return &models.Page{Page: page, TotalPages: totalPages, Items: items}
}

func selectYouTubeKey(videos []tmdbVideo) *string {
	var youtube []tmdbVideo
	for _, v := range videos {
		if strings.EqualFold(v.Site, "youtube") && v.Key != "" {
			youtube = append(youtube, v)
		}
	}
	for _, kind := range []string{"trailer", "teaser"} {
		for _, v := range youtube {
			if strings.EqualFold(v.Type, kind) {
				key := v.Key
				return &key
			}
		}
	}
	if len(youtube) > 0 {
		key := youtube[0].Key
		return &key
	}
	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
