// Package client is a typed facade over the content API, for tooling that
// drives the endpoints the way the admin console does: category creation
// tolerates "already exists", and saving a post is an update-then-create
// composition keyed by slug.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Edinam27/blog-ready/internal/models"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 API response.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// IsConflict reports whether err is a 409 API response.
func IsConflict(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusConflict
}

// PostInput is the create-post payload.
type PostInput struct {
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Excerpt      string     `json:"excerpt"`
	Content      string     `json:"content"`
	CoverImage   string     `json:"coverImage,omitempty"`
	Images       []string   `json:"images,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
	AuthorName   string     `json:"authorName,omitempty"`
	CategorySlug string     `json:"categorySlug,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	IsTrending   bool       `json:"isTrending,omitempty"`
	IsFeatured   bool       `json:"isFeatured,omitempty"`
	ReadTime     int        `json:"readTime,omitempty"`
}

type Client struct {
	base string
	http *http.Client
}

// New creates a client for the API rooted at base, e.g.
// "http://localhost:8080/api".
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) ListPosts(ctx context.Context) ([]models.PostView, error) {
	var posts []models.PostView
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, slug string) (*models.PostView, error) {
	var post models.PostView
	if err := c.do(ctx, http.MethodGet, "/posts/"+slug, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) CreatePost(ctx context.Context, in PostInput) (*models.PostView, error) {
	var post models.PostView
	if err := c.do(ctx, http.MethodPost, "/posts", in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) UpdatePost(ctx context.Context, slug string, patch models.PostPatch) (*models.PostView, error) {
	var post models.PostView
	if err := c.do(ctx, http.MethodPatch, "/posts/"+slug, patch, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, slug string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+slug, nil, nil)
}

// UpsertPost saves a post keyed by slug: it attempts a partial update and,
// when the slug does not exist yet, falls back to creating it. Neither
// endpoint alone is an upsert; the composition is.
func (c *Client) UpsertPost(ctx context.Context, slug string, patch models.PostPatch) (*models.PostView, error) {
	post, err := c.UpdatePost(ctx, slug, patch)
	if err == nil {
		return post, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}
	return c.CreatePost(ctx, inputFromPatch(slug, patch))
}

// inputFromPatch builds a create payload from a patch, defaulting the title
// to the slug when absent.
func inputFromPatch(slug string, patch models.PostPatch) PostInput {
	in := PostInput{Slug: slug, Title: slug}
	if patch.Title != nil {
		in.Title = *patch.Title
	}
	if patch.Excerpt != nil {
		in.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		in.Content = *patch.Content
	}
	if patch.CoverImage != nil {
		in.CoverImage = *patch.CoverImage
	}
	if patch.Images != nil {
		in.Images = *patch.Images
	}
	if patch.AuthorName != nil {
		in.AuthorName = *patch.AuthorName
	}
	if patch.CategorySlug != nil {
		in.CategorySlug = *patch.CategorySlug
	}
	if patch.Tags != nil {
		in.Tags = *patch.Tags
	}
	if patch.IsTrending != nil {
		in.IsTrending = *patch.IsTrending
	}
	if patch.IsFeatured != nil {
		in.IsFeatured = *patch.IsFeatured
	}
	if patch.ReadTime != nil {
		in.ReadTime = *patch.ReadTime
	}
	return in
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, name, slug string) (*models.Category, error) {
	payload := map[string]string{"name": name, "slug": slug}
	var category models.Category
	if err := c.do(ctx, http.MethodPost, "/categories", payload, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// EnsureCategory creates the category if needed. The returned flag is true
// when the category was created by this call and false when it already
// existed.
func (c *Client) EnsureCategory(ctx context.Context, name, slug string) (bool, error) {
	_, err := c.CreateCategory(ctx, name, slug)
	if err == nil {
		return true, nil
	}
	if IsConflict(err) {
		return false, nil
	}
	return false, err
}

func (c *Client) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, http.MethodPatch, "/categories/"+id, patch, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, name, email, role string) (*models.User, error) {
	payload := map[string]string{"name": name, "email": email, "role": role}
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/users", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPatch, "/users/"+id, patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
