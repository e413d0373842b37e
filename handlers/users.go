package handlers

import (
	"encoding/json"
	"net/http"

	"netify/internal/auth"
	"netify/internal/database"
	"netify/models"
	"netify/services/users"
)

type usersService interface {
	Profile(identity auth.Identity) (*models.Profile, error)
	List(identity auth.Identity, list database.ListName) ([]models.CatalogItem, error)
	Add(identity auth.Identity, list database.ListName, item models.CatalogItem) ([]models.CatalogItem, error)
	Remove(identity auth.Identity, list database.ListName, mediaID int64, mediaType models.MediaType) ([]models.CatalogItem, error)
}

var _ usersService = (*users.Service)(nil)

// UserHandler exposes the liked and mylist collections. All routes sit behind
// the auth middleware, so the caller identity is always in the context.
type UserHandler struct {
	Service usersService
}

func NewUserHandler(service usersService) *UserHandler {
	return &UserHandler{Service: service}
}

// addRequest is the POST body: the item to store under {"data": {...}}.
type addRequest struct {
	Data *models.CatalogItem `json:"data"`
}

// removeRequest is the DELETE body identifying the item by its unique pair.
type removeRequest struct {
	ID   int64            `json:"id"`
	Type models.MediaType `json:"type"`
}

func (h *UserHandler) GetLiked(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, database.ListLiked)
}

func (h *UserHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, database.ListLiked)
}

func (h *UserHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, database.ListLiked)
}

func (h *UserHandler) GetMyList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, database.ListMyList)
}

func (h *UserHandler) AddToMyList(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, database.ListMyList)
}

func (h *UserHandler) RemoveFromMyList(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, database.ListMyList)
}

func (h *UserHandler) list(w http.ResponseWriter, r *http.Request, list database.ListName) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	items, err := h.Service.List(identity, list)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *UserHandler) add(w http.ResponseWriter, r *http.Request, list database.ListName) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var body addRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Data == nil {
		writeError(w, http.StatusBadRequest, "Invalid item")
		return
	}

	items, err := h.Service.Add(identity, list, *body.Data)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *UserHandler) remove(w http.ResponseWriter, r *http.Request, list database.ListName) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var body removeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == 0 {
		writeError(w, http.StatusBadRequest, "Missing id")
		return
	}

	items, err := h.Service.Remove(identity, list, body.ID, body.Type)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := auth.GetIdentity(r)
	if !ok || identity.UID == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return auth.Identity{}, false
	}
	return identity, true
}
