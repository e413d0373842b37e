package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultTMDBBaseURL = "https://api.themoviedb.org/3"
	tmdbRequestTimeout = 15 * time.Second

	// One retry after a fixed delay bounds worst-case latency to roughly two
	// request timeouts plus the delay.
	tmdbMaxAttempts = 2
	tmdbRetryDelay  = 250 * time.Millisecond
)

// StatusError is a non-2xx answer from TMDB, before translation into the
// service error taxonomy.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb: status %d: %s", e.Status, e.Message)
}

// tmdbClient issues GET requests against the TMDB v3 API with a fixed timeout
// and a single retry on transient failures (429 and 5xx).
type tmdbClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func newTMDBClient(baseURL, apiKey string, httpClient *http.Client) *tmdbClient {
	if baseURL == "" {
		baseURL = defaultTMDBBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: tmdbRequestTimeout}
	}
	return &tmdbClient{baseURL: baseURL, apiKey: apiKey, httpClient: httpClient}
}

// get fetches path with the given query parameters and decodes the JSON body
// into v. 429 and 5xx responses are retried exactly once after a fixed delay;
// every other failure propagates immediately.
func (c *tmdbClient) get(ctx context.Context, path string, query url.Values, v any) error {
	return retry.Do(
		func() error { return c.doGet(ctx, path, query, v) },
		retry.Context(ctx),
		retry.Attempts(tmdbMaxAttempts),
		retry.Delay(tmdbRetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
	)
}

func isTransient(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status == http.StatusTooManyRequests || se.Status >= 500
	}
	return false
}

func (c *tmdbClient) doGet(ctx context.Context, path string, query url.Values, v any) error {
	params := url.Values{}
	for key, vals := range query {
		params[key] = vals
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode, Message: readStatusMessage(resp.Body)}
	}
	if v == nil {
		_, err = io.Copy(io.Discard, resp.Body)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// readStatusMessage extracts TMDB's error description from a failure body.
func readStatusMessage(r io.Reader) string {
	var body struct {
		StatusMessage string `json:"status_message"`
		Message       string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&body); err != nil {
		return ""
	}
	if body.StatusMessage != "" {
		return body.StatusMessage
	}
	return body.Message
}

// Raw upstream response shapes. Field access beyond decoding lives in
// normalize.go so schema drift touches one place.

type tmdbGenreList struct {
	Genres []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

type tmdbPagedResults struct {
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	Results    []tmdbRecord `json:"results"`
}

type tmdbRecord struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Title         string  `json:"title"`
	OriginalName  string  `json:"original_name"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	FirstAirDate  string  `json:"first_air_date"`
	ReleaseDate   string  `json:"release_date"`
	BackdropPath  string  `json:"backdrop_path"`
	PosterPath    string  `json:"poster_path"`
	GenreIDs      []int64 `json:"genre_ids"`
}

type tmdbVideoList struct {
	Results []tmdbVideo `json:"results"`
}

type tmdbVideo struct {
	Site string `json:"site"`
	Type string `json:"type"`
	Key  string `json:"key"`
}
