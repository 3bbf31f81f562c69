package handlers

import (
	"log"
	"net/http"

	"github.com/Edinam27/blog-ready/internal/db"
	"github.com/Edinam27/blog-ready/internal/sitemap"
)

type SitemapHandler struct {
	store   db.Store
	baseURL string
}

func NewSitemapHandler(store db.Store, baseURL string) *SitemapHandler {
	return &SitemapHandler{store: store, baseURL: baseURL}
}

// Serve renders the sitemap from the current categories and posts.
func (h *SitemapHandler) Serve(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		log.Printf("sitemap categories: %v", err)
		http.Error(w, "Error generating sitemap", http.StatusInternalServerError)
		return
	}
	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		log.Printf("sitemap posts: %v", err)
		http.Error(w, "Error generating sitemap", http.StatusInternalServerError)
		return
	}

	body, err := sitemap.Build(h.baseURL, categories, posts).Render()
	if err != nil {
		log.Printf("sitemap render: %v", err)
		http.Error(w, "Error generating sitemap", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write(body)
}
