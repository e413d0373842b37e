package models

import "time"

// User is a stored profile keyed by the identity provider UID, with email as a
// secondary lookup so a re-provisioned account relinks instead of duplicating.
type User struct {
	ID          string    `json:"-"`
	ProviderUID string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Profile is the shape returned by the /me endpoint: the user plus both of
// their saved collections.
type Profile struct {
	ID     string        `json:"id"`
	Email  string        `json:"email,omitempty"`
	Liked  []CatalogItem `json:"liked"`
	MyList []CatalogItem `json:"myList"`
}
