package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Edinam27/blog-ready/internal/db"
	"github.com/Edinam27/blog-ready/internal/models"
)

type CategoriesHandler struct {
	store    db.Store
	validate *validator.Validate
}

func NewCategoriesHandler(store db.Store) *CategoriesHandler {
	return &CategoriesHandler{
		store:    store,
		validate: validator.New(),
	}
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required"`
}

func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		log.Printf("list categories: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// Create is idempotent from the caller's point of view: a slug that already
// exists comes back as 409 so seed tooling can tell "already present" from
// "failed".
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "name and slug are required")
		return
	}

	created, err := h.store.CreateCategory(r.Context(), req.Name, req.Slug)
	if err != nil {
		if errors.Is(err, db.ErrConflict) {
			respondError(w, http.StatusConflict, "Category slug already exists")
			return
		}
		log.Printf("create category %q: %v", req.Slug, err)
		respondError(w, http.StatusInternalServerError, "failed to create category")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.CategoryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if patch.IsEmpty() {
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	updated, err := h.store.UpdateCategory(r.Context(), id, patch)
	if err != nil {
		log.Printf("update category %q: %v", id, err)
		respondError(w, http.StatusInternalServerError, "failed to update category")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
