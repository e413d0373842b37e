package models

// MediaType distinguishes the two TMDB catalogs the service proxies.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Valid reports whether the media type is one the upstream catalog knows.
func (m MediaType) Valid() bool {
	return m == MediaTypeMovie || m == MediaTypeTV
}

// Genre is a single upstream genre entry.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GenreMap resolves upstream genre IDs to display names for one media type.
type GenreMap map[int64]string

// CatalogItem is the stable item shape served to clients, derived from raw
// upstream records and recomputed on every cache miss.
type CatalogItem struct {
	ID       int64     `json:"id"`
	Type     MediaType `json:"type"`
	Title    string    `json:"title"`
	Overview string    `json:"overview"`
	// Year is a 4-digit string, or empty when the upstream record has no date.
	Year   string   `json:"year"`
	Image  *string  `json:"image"`
	Genres []string `json:"genres"`
}

// Page is one page of catalog items.
type Page struct {
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	Items      []CatalogItem `json:"items"`
}

// Trailer carries the selected YouTube video key, nil when the item has no
// embeddable trailer.
type Trailer struct {
	YouTubeKey *string `json:"youtubeKey"`
}

// SectionSet groups one discover result list per requested genre ID.
type SectionSet struct {
	Type     MediaType                `json:"type"`
	Sections map[string][]CatalogItem `json:"sections"`
}
