package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Edinam27/blog-ready/internal/db"
	"github.com/Edinam27/blog-ready/internal/models"
)

type PostsHandler struct {
	store db.Store
}

func NewPostsHandler(store db.Store) *PostsHandler {
	return &PostsHandler{store: store}
}

type CreatePostRequest struct {
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Excerpt      string     `json:"excerpt"`
	Content      string     `json:"content"`
	CoverImage   string     `json:"coverImage"`
	Images       []string   `json:"images"`
	Date         *time.Time `json:"date"`
	AuthorName   string     `json:"authorName"`
	CategorySlug string     `json:"categorySlug"`
	Tags         []string   `json:"tags"`
	IsTrending   bool       `json:"isTrending"`
	IsFeatured   bool       `json:"isFeatured"`
	ReadTime     int        `json:"readTime"`
}

// List returns every post joined with its category, newest first. Filtering
// by trending/featured/category is left to the consumer.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		log.Printf("list posts: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load posts")
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostsHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.store.GetPostBySlug(r.Context(), slug)
	if err != nil {
		log.Printf("get post %q: %v", slug, err)
		respondError(w, http.StatusInternalServerError, "failed to load post")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "Not found")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Create inserts a new post. Date defaults to now; a duplicate slug
// surfaces as a generic failure, not a conflict.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	created, err := h.store.CreatePost(r.Context(), models.Post{
		Title:        req.Title,
		Slug:         req.Slug,
		Excerpt:      req.Excerpt,
		Content:      req.Content,
		CoverImage:   req.CoverImage,
		Images:       images,
		Date:         date,
		AuthorName:   req.AuthorName,
		CategorySlug: req.CategorySlug,
		Tags:         tags,
		IsTrending:   req.IsTrending,
		IsFeatured:   req.IsFeatured,
		ReadTime:     req.ReadTime,
	})
	if err != nil {
		log.Printf("create post %q: %v", req.Slug, err)
		respondError(w, http.StatusInternalServerError, "failed to create post")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update applies a partial update keyed by slug. Omitted fields keep their
// stored values; slug, date and views cannot be changed here.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var patch models.PostPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if patch.IsEmpty() {
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	updated, err := h.store.UpdatePostBySlug(r.Context(), slug, patch)
	if err != nil {
		log.Printf("update post %q: %v", slug, err)
		respondError(w, http.StatusInternalServerError, "failed to update post")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	err := h.store.DeletePostBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("delete post %q: %v", slug, err)
		respondError(w, http.StatusInternalServerError, "failed to delete post")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}
