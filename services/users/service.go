package users

import (
	"errors"
	"fmt"

	"netify/internal/auth"
	"netify/internal/database"
	"netify/models"
)

var (
	// ErrInvalidItem marks an add request whose payload has no usable item.
	ErrInvalidItem = errors.New("invalid item")
	// ErrNotFound means no user record could be resolved for the caller.
	ErrNotFound = errors.New("user not found")
)

type repository interface {
	Create(user *models.User) error
	GetByProviderUID(providerUID string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateProviderUID(userID, providerUID string) error
	ListItems(userID string, list database.ListName) ([]models.CatalogItem, error)
	AddItem(userID string, list database.ListName, item models.CatalogItem) error
	RemoveItem(userID string, list database.ListName, mediaID int64, mediaType models.MediaType) error
}

var _ repository = (*database.UserRepository)(nil)

// Service resolves caller identities to stored user records and manages their
// liked and mylist collections.
type Service struct {
	repo repository
}

func NewService(repo repository) *Service {
	return &Service{repo: repo}
}

// FindOrCreate resolves an identity to a user record. Lookup order: provider
// UID, then email. A record found by email has its provider UID updated in
// place, so a user who re-registers with the provider keeps their collections
// instead of getting a duplicate record.
func (s *Service) FindOrCreate(identity auth.Identity) (*models.User, error) {
	if identity.UID == "" {
		return nil, ErrNotFound
	}

	user, err := s.repo.GetByProviderUID(identity.UID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	if identity.Email != "" {
		user, err = s.repo.GetByEmail(identity.Email)
		if err != nil {
			return nil, err
		}
		if user != nil {
			if err := s.repo.UpdateProviderUID(user.ID, identity.UID); err != nil {
				return nil, err
			}
			user.ProviderUID = identity.UID
			return user, nil
		}
	}

	user = &models.User{ProviderUID: identity.UID, Email: identity.Email}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Profile returns the caller's user record with both collections attached,
// creating the record on first sight.
func (s *Service) Profile(identity auth.Identity) (*models.Profile, error) {
	user, err := s.FindOrCreate(identity)
	if err != nil {
		return nil, err
	}
	liked, err := s.repo.ListItems(user.ID, database.ListLiked)
	if err != nil {
		return nil, err
	}
	myList, err := s.repo.ListItems(user.ID, database.ListMyList)
	if err != nil {
		return nil, err
	}
	return &models.Profile{
		ID:     user.ProviderUID,
		Email:  user.Email,
		Liked:  liked,
		MyList: myList,
	}, nil
}

// List returns the caller's named collection.
func (s *Service) List(identity auth.Identity, list database.ListName) ([]models.CatalogItem, error) {
	user, err := s.FindOrCreate(identity)
	if err != nil {
		return nil, err
	}
	return s.repo.ListItems(user.ID, list)
}

// Add puts an item into the caller's collection and returns the updated list.
// Adding an item that is already present leaves the list unchanged.
func (s *Service) Add(identity auth.Identity, list database.ListName, item models.CatalogItem) ([]models.CatalogItem, error) {
	if item.ID == 0 {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidItem)
	}
	if item.Type == "" {
		item.Type = models.MediaTypeMovie
	}
	if item.Genres == nil {
		item.Genres = []string{}
	}

	user, err := s.FindOrCreate(identity)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddItem(user.ID, list, item); err != nil {
		return nil, err
	}
	return s.repo.ListItems(user.ID, list)
}

// Remove deletes an item from the caller's collection and returns the updated
// list. Removing an absent item is a no-op.
func (s *Service) Remove(identity auth.Identity, list database.ListName, mediaID int64, mediaType models.MediaType) ([]models.CatalogItem, error) {
	if mediaType == "" {
		mediaType = models.MediaTypeMovie
	}

	user, err := s.FindOrCreate(identity)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveItem(user.ID, list, mediaID, mediaType); err != nil {
		return nil, err
	}
	return s.repo.ListItems(user.ID, list)
}
