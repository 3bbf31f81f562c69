package db

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Edinam27/blog-ready/internal/models"
)

// Memory is an in-memory Store with the same semantics as Postgres. It
// backs the test suite and serves as a development fallback when no
// database is configured.
type Memory struct {
	mu         sync.RWMutex
	posts      map[string]models.Post     // keyed by slug
	categories map[string]models.Category // keyed by slug
	users      map[string]models.User     // keyed by id
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		posts:      make(map[string]models.Post),
		categories: make(map[string]models.Category),
		users:      make(map[string]models.User),
	}
}

func (s *Memory) Migrate(ctx context.Context) error { return nil }

func (s *Memory) Close() {}

// categoryFor looks up the joined category for a post. Callers must hold
// the lock.
func (s *Memory) categoryFor(post models.Post) *models.Category {
	if post.CategorySlug == "" {
		return nil
	}
	cat, ok := s.categories[post.CategorySlug]
	if !ok {
		return nil
	}
	return &cat
}

func clonePost(p models.Post) models.Post {
	p.Images = append([]string(nil), p.Images...)
	p.Tags = append([]string(nil), p.Tags...)
	return p
}

func (s *Memory) ListPosts(ctx context.Context) ([]models.PostView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	// Date descending, slug as tie-breaker for deterministic output.
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].Slug < posts[j].Slug
	})

	views := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, models.NewPostView(clonePost(p), s.categoryFor(p)))
	}
	return views, nil
}

func (s *Memory) GetPostBySlug(ctx context.Context, slug string) (*models.PostView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[slug]
	if !ok {
		return nil, nil
	}
	view := models.NewPostView(clonePost(post), s.categoryFor(post))
	return &view, nil
}

func (s *Memory) CreatePost(ctx context.Context, post models.Post) (*models.PostView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[post.Slug]; exists {
		return nil, fmt.Errorf("create post: duplicate slug %q", post.Slug)
	}
	post.ID = uuid.NewString()
	if post.Date.IsZero() {
		post.Date = time.Now().UTC()
	}
	post.Views = 0
	s.posts[post.Slug] = clonePost(post)

	view := models.NewPostView(clonePost(post), s.categoryFor(post))
	return &view, nil
}

func (s *Memory) UpdatePostBySlug(ctx context.Context, slug string, patch models.PostPatch) (*models.PostView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[slug]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Excerpt != nil {
		post.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	if patch.CoverImage != nil {
		post.CoverImage = *patch.CoverImage
	}
	if patch.Images != nil {
		post.Images = append([]string(nil), *patch.Images...)
	}
	if patch.AuthorName != nil {
		post.AuthorName = *patch.AuthorName
	}
	if patch.CategorySlug != nil {
		post.CategorySlug = *patch.CategorySlug
	}
	if patch.Tags != nil {
		post.Tags = append([]string(nil), *patch.Tags...)
	}
	if patch.IsTrending != nil {
		post.IsTrending = *patch.IsTrending
	}
	if patch.IsFeatured != nil {
		post.IsFeatured = *patch.IsFeatured
	}
	if patch.ReadTime != nil {
		post.ReadTime = *patch.ReadTime
	}
	s.posts[slug] = clonePost(post)

	view := models.NewPostView(clonePost(post), s.categoryFor(post))
	return &view, nil
}

func (s *Memory) DeletePostBySlug(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[slug]; !ok {
		return ErrNotFound
	}
	delete(s.posts, slug)
	return nil
}

func (s *Memory) ListCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (s *Memory) CreateCategory(ctx context.Context, name, slug string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.categories[slug]; exists {
		return nil, ErrConflict
	}
	c := models.Category{ID: uuid.NewString(), Name: name, Slug: slug}
	s.categories[slug] = c
	return &c, nil
}

func (s *Memory) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current *models.Category
	for _, c := range s.categories {
		if c.ID == id {
			cat := c
			current = &cat
			break
		}
	}
	if current == nil {
		return nil, nil
	}

	updated := *current
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Slug != nil {
		if other, exists := s.categories[*patch.Slug]; exists && other.ID != id {
			return nil, fmt.Errorf("update category: duplicate slug %q", *patch.Slug)
		}
		updated.Slug = *patch.Slug
	}
	delete(s.categories, current.Slug)
	s.categories[updated.Slug] = updated
	return &updated, nil
}

func (s *Memory) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].Email < users[j].Email
	})
	return users, nil
}

func (s *Memory) CreateUser(ctx context.Context, name, email, role string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !models.ValidRole(role) {
		return nil, fmt.Errorf("create user: invalid role %q", role)
	}
	for _, u := range s.users {
		if u.Email == email {
			return nil, fmt.Errorf("create user: duplicate email %q", email)
		}
	}
	u := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	s.users[u.ID] = u
	return &u, nil
}

func (s *Memory) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	if patch.Role != nil && !models.ValidRole(*patch.Role) {
		return nil, fmt.Errorf("update user: invalid role %q", *patch.Role)
	}
	if patch.Email != nil {
		for otherID, other := range s.users {
			if otherID != id && other.Email == *patch.Email {
				return nil, fmt.Errorf("update user: duplicate email %q", *patch.Email)
			}
		}
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.PhotoURL != nil {
		photo := *patch.PhotoURL
		u.PhotoURL = &photo
	}
	if patch.Bio != nil {
		bio := *patch.Bio
		u.Bio = &bio
	}
	s.users[id] = u
	return &u, nil
}
