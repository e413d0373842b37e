package catalog

import "netify/models"

// Items carry at most the first three resolvable genre names.
const maxGenresPerItem = 3

// hasImage reports whether a record carries either artwork path. Records with
// no artwork at all are dropped before normalization.
func hasImage(raw tmdbRecord) bool {
	return raw.BackdropPath != "" || raw.PosterPath != ""
}

// toItem reshapes a raw upstream record into the stable item shape served to
// clients. Title resolution prefers the display name over the original-language
// variants; the year is the leading 4 characters of the media-type-appropriate
// date; unresolvable genre IDs are dropped silently.
func toItem(raw tmdbRecord, mediaType models.MediaType, genres models.GenreMap) models.CatalogItem {
	names := make([]string, 0, maxGenresPerItem)
	for _, id := range raw.GenreIDs {
		name, ok := genres[id]
		if !ok {
			continue
		}
		names = append(names, name)
		if len(names) == maxGenresPerItem {
			break
		}
	}

	date := raw.ReleaseDate
	if mediaType == models.MediaTypeTV {
		date = raw.FirstAirDate
	}
	year := date
	if len(date) > 4 {
		year = date[:4]
	}

	var image *string
	switch {
	case raw.BackdropPath != "":
		image = &raw.BackdropPath
	case raw.PosterPath != "":
		image = &raw.PosterPath
	}

	return models.CatalogItem{
		ID:       raw.ID,
		Type:     mediaType,
		Title:    firstNonEmpty(raw.Name, raw.Title, raw.OriginalName, raw.OriginalTitle),
		Overview: raw.Overview,
		Year:     year,
		Image:    image,
		Genres:   names,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
