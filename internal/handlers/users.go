package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Edinam27/blog-ready/internal/db"
	"github.com/Edinam27/blog-ready/internal/models"
)

type UsersHandler struct {
	store    db.Store
	validate *validator.Validate
}

func NewUsersHandler(store db.Store) *UsersHandler {
	return &UsersHandler{
		store:    store,
		validate: validator.New(),
	}
}

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Role  string `json:"role" validate:"required"`
}

// CreateUserResponse omits photoUrl and bio; those are set through the
// update path only.
type CreateUserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		log.Printf("list users: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Create requires name, email and role. The role value itself is checked at
// the storage layer; an unknown role surfaces as a generic failure.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "name, email, and role are required")
		return
	}

	created, err := h.store.CreateUser(r.Context(), req.Name, req.Email, req.Role)
	if err != nil {
		log.Printf("create user %q: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	respondJSON(w, http.StatusCreated, CreateUserResponse{
		ID:        created.ID,
		Name:      created.Name,
		Email:     created.Email,
		Role:      created.Role,
		CreatedAt: created.CreatedAt,
	})
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if patch.IsEmpty() {
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	updated, err := h.store.UpdateUser(r.Context(), id, patch)
	if err != nil {
		log.Printf("update user %q: %v", id, err)
		respondError(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
