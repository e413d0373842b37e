package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"netify/models"
)

// ListName identifies one of a user's two saved collections.
type ListName string

const (
	ListLiked  ListName = "liked"
	ListMyList ListName = "mylist"
)

// Valid reports whether the list name matches a stored collection.
func (l ListName) Valid() bool {
	return l == ListLiked || l == ListMyList
}

// UserRepository persists user records and their liked/mylist collections.
// List membership is enforced by a unique index over (user_id, list,
// media_id, media_type), so adds and removes are atomic and idempotent at the
// storage layer rather than read-modify-write in memory.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user record, assigning an ID and timestamps.
func (r *UserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO users (id, provider_uid, email, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, nullable(user.ProviderUID), nullable(user.Email), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByProviderUID returns the user linked to the identity provider UID, or
// nil when no such user exists.
func (r *UserRepository) GetByProviderUID(providerUID string) (*models.User, error) {
	return r.getBy("provider_uid", providerUID)
}

// GetByEmail returns the user with the given email, or nil when absent.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	return r.getBy("email", email)
}

func (r *UserRepository) getBy(column, value string) (*models.User, error) {
	row := r.db.QueryRow(
		`SELECT id, provider_uid, email, created_at, updated_at FROM users WHERE `+column+` = ?`,
		value,
	)

	var user models.User
	var providerUID, email sql.NullString
	err := row.Scan(&user.ID, &providerUID, &email, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user by %s: %w", column, err)
	}
	user.ProviderUID = providerUID.String
	user.Email = email.String
	return &user, nil
}

// UpdateProviderUID relinks an existing user record to a new identity
// provider UID, keeping the record and its collections in place.
func (r *UserRepository) UpdateProviderUID(userID, providerUID string) error {
	_, err := r.db.Exec(
		`UPDATE users SET provider_uid = ?, updated_at = ? WHERE id = ?`,
		providerUID, time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("update provider uid: %w", err)
	}
	return nil
}

// ListItems returns a user's collection in insertion order.
func (r *UserRepository) ListItems(userID string, list ListName) ([]models.CatalogItem, error) {
	rows, err := r.db.Query(
		`SELECT media_id, media_type, title, overview, year, image, genres
		 FROM user_items WHERE user_id = ? AND list = ? ORDER BY added_at, rowid`,
		userID, string(list),
	)
	if err != nil {
		return nil, fmt.Errorf("query %s items: %w", list, err)
	}
	defer rows.Close()

	items := make([]models.CatalogItem, 0)
	for rows.Next() {
		var item models.CatalogItem
		var image sql.NullString
		var genresJSON string
		if err := rows.Scan(&item.ID, &item.Type, &item.Title, &item.Overview, &item.Year, &image, &genresJSON); err != nil {
			return nil, fmt.Errorf("scan %s item: %w", list, err)
		}
		if image.Valid {
			item.Image = &image.String
		}
		if err := json.Unmarshal([]byte(genresJSON), &item.Genres); err != nil {
			item.Genres = []string{}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddItem inserts an item into a user's collection. Inserting an item already
// present by (media_id, media_type) is a no-op thanks to the unique index.
func (r *UserRepository) AddItem(userID string, list ListName, item models.CatalogItem) error {
	genresJSON, err := json.Marshal(item.Genres)
	if err != nil {
		return fmt.Errorf("encode genres: %w", err)
	}
	var image sql.NullString
	if item.Image != nil {
		image = sql.NullString{String: *item.Image, Valid: true}
	}

	_, err = r.db.Exec(
		`INSERT INTO user_items (user_id, list, media_id, media_type, title, overview, year, image, genres, added_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, list, media_id, media_type) DO NOTHING`,
		userID, string(list), item.ID, string(item.Type), item.Title, item.Overview, item.Year, image, string(genresJSON), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert %s item: %w", list, err)
	}
	return nil
}

// RemoveItem deletes an item from a user's collection. Removing an item that
// is not present is a no-op.
func (r *UserRepository) RemoveItem(userID string, list ListName, mediaID int64, mediaType models.MediaType) error {
	_, err := r.db.Exec(
		`DELETE FROM user_items WHERE user_id = ? AND list = ? AND media_id = ? AND media_type = ?`,
		userID, string(list), mediaID, string(mediaType),
	)
	if err != nil {
		return fmt.Errorf("delete %s item: %w", list, err)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
