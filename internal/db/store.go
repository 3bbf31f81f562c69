package db

import (
	"context"
	"errors"

	"github.com/Edinam27/blog-ready/internal/models"
)

// Sentinel errors the handlers branch on. Anything else coming out of a
// Store is treated as an opaque storage failure.
var (
	// ErrNotFound is returned by delete operations when no row matched.
	// Lookups and updates signal a miss with a nil result instead.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned by CreateCategory when the slug is taken.
	ErrConflict = errors.New("already exists")
)

// Store is the persistence surface for posts, categories and users.
// Post reads always come back in the public joined shape; lookups and
// updates that match no row return (nil, nil).
type Store interface {
	Migrate(ctx context.Context) error
	Close()

	ListPosts(ctx context.Context) ([]models.PostView, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.PostView, error)
	CreatePost(ctx context.Context, post models.Post) (*models.PostView, error)
	UpdatePostBySlug(ctx context.Context, slug string, patch models.PostPatch) (*models.PostView, error)
	DeletePostBySlug(ctx context.Context, slug string) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name, slug string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, name, email, role string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
}
