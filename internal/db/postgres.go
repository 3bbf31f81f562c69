package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Edinam27/blog-ready/internal/models"
)

// uniqueViolation is the Postgres error code for unique-constraint hits.
const uniqueViolation = "23505"

// Postgres is the pgx-backed Store implementation.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

// NewPostgres connects to the database and verifies the connection.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Postgres{pool: pool}, nil
}

func (s *Postgres) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Migrate creates the schema if it does not exist. It is safe to run on
// every process start.
func (s *Postgres) Migrate(ctx context.Context) error {
	// gen_random_uuid() is built in since Postgres 13; older servers need
	// pgcrypto. Best effort: the table DDL below fails loudly if neither
	// is available.
	_, _ = s.pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS pgcrypto`)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS posts (
		    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		    title TEXT NOT NULL,
		    slug TEXT NOT NULL UNIQUE,
		    excerpt TEXT,
		    content TEXT,
		    cover_image TEXT,
		    images JSONB DEFAULT '[]'::jsonb,
		    date TIMESTAMPTZ NOT NULL DEFAULT now(),
		    author_name TEXT,
		    category_slug TEXT,
		    tags TEXT[] DEFAULT ARRAY[]::TEXT[],
		    is_trending BOOLEAN NOT NULL DEFAULT false,
		    is_featured BOOLEAN NOT NULL DEFAULT false,
		    read_time INTEGER NOT NULL DEFAULT 0,
		    views INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
		    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		    name TEXT NOT NULL,
		    slug TEXT NOT NULL UNIQUE
		);`,
		`CREATE TABLE IF NOT EXISTS users (
		    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		    name TEXT NOT NULL,
		    email TEXT NOT NULL UNIQUE,
		    role TEXT NOT NULL CHECK (role IN ('admin','editor','author')),
		    photo_url TEXT,
		    bio TEXT,
		    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// joinedPostColumns selects a post row left-joined with its category. The
// category columns come last and are nullable.
const joinedPostColumns = `
	SELECT
		p.id::text,
		p.title,
		p.slug,
		COALESCE(p.excerpt, ''),
		COALESCE(p.content, ''),
		COALESCE(p.cover_image, ''),
		COALESCE(p.images, '[]'::jsonb),
		p.date,
		COALESCE(p.author_name, ''),
		COALESCE(p.category_slug, ''),
		COALESCE(p.tags, '{}'::text[]),
		p.is_trending,
		p.is_featured,
		p.read_time,
		p.views,
		c.id::text,
		c.name,
		c.slug
	FROM posts p
	LEFT JOIN categories c ON p.category_slug = c.slug
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJoinedPost(row rowScanner) (models.PostView, error) {
	var (
		post      models.Post
		imagesRaw []byte
		catID     *string
		catName   *string
		catSlug   *string
	)
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Excerpt,
		&post.Content,
		&post.CoverImage,
		&imagesRaw,
		&post.Date,
		&post.AuthorName,
		&post.CategorySlug,
		&post.Tags,
		&post.IsTrending,
		&post.IsFeatured,
		&post.ReadTime,
		&post.Views,
		&catID,
		&catName,
		&catSlug,
	)
	if err != nil {
		return models.PostView{}, err
	}
	post.Images = decodeImages(imagesRaw)

	var cat *models.Category
	if catID != nil && catSlug != nil {
		name := ""
		if catName != nil {
			name = *catName
		}
		cat = &models.Category{ID: *catID, Name: name, Slug: *catSlug}
	}
	return models.NewPostView(post, cat), nil
}

// decodeImages unmarshals the stored jsonb value, falling back to an empty
// list when the value is missing or not an array.
func decodeImages(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal(raw, &images); err != nil || images == nil {
		return []string{}
	}
	return images
}

func (s *Postgres) ListPosts(ctx context.Context) ([]models.PostView, error) {
	rows, err := s.pool.Query(ctx, joinedPostColumns+` ORDER BY p.date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]models.PostView, 0)
	for rows.Next() {
		view, err := scanJoinedPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return posts, nil
}

func (s *Postgres) GetPostBySlug(ctx context.Context, slug string) (*models.PostView, error) {
	row := s.pool.QueryRow(ctx, joinedPostColumns+` WHERE p.slug = $1 LIMIT 1`, slug)
	view, err := scanJoinedPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return &view, nil
}

func (s *Postgres) CreatePost(ctx context.Context, post models.Post) (*models.PostView, error) {
	imagesJSON, err := json.Marshal(post.Images)
	if err != nil {
		return nil, fmt.Errorf("encode images: %w", err)
	}
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}

	const query = `
		INSERT INTO posts (
			title, slug, excerpt, content, cover_image, images, date,
			author_name, category_slug, tags, is_trending, is_featured, read_time
		) VALUES (
			$1, $2, $3, $4, $5, $6::jsonb, $7,
			$8, $9, $10, $11, $12, $13
		)
		RETURNING slug
	`
	var createdSlug string
	err = s.pool.QueryRow(ctx, query,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Content,
		post.CoverImage,
		string(imagesJSON),
		post.Date,
		post.AuthorName,
		post.CategorySlug,
		tags,
		post.IsTrending,
		post.IsFeatured,
		post.ReadTime,
	).Scan(&createdSlug)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.GetPostBySlug(ctx, createdSlug)
}

// UpdatePostBySlug applies a coalescing partial update: every provided
// field replaces the stored value, every nil field keeps it. Returns
// (nil, nil) when the slug matches no row.
func (s *Postgres) UpdatePostBySlug(ctx context.Context, slug string, patch models.PostPatch) (*models.PostView, error) {
	var images any
	if patch.Images != nil {
		encoded, err := json.Marshal(*patch.Images)
		if err != nil {
			return nil, fmt.Errorf("encode images: %w", err)
		}
		images = string(encoded)
	}
	var tags any
	if patch.Tags != nil {
		tags = *patch.Tags
	}

	const query = `
		UPDATE posts SET
			title = COALESCE($1::text, title),
			excerpt = COALESCE($2::text, excerpt),
			content = COALESCE($3::text, content),
			cover_image = COALESCE($4::text, cover_image),
			images = COALESCE($5::jsonb, images),
			author_name = COALESCE($6::text, author_name),
			category_slug = COALESCE($7::text, category_slug),
			tags = COALESCE($8::text[], tags),
			is_trending = COALESCE($9::boolean, is_trending),
			is_featured = COALESCE($10::boolean, is_featured),
			read_time = COALESCE($11::integer, read_time)
		WHERE slug = $12
		RETURNING slug
	`
	var updatedSlug string
	err := s.pool.QueryRow(ctx, query,
		patch.Title,
		patch.Excerpt,
		patch.Content,
		patch.CoverImage,
		images,
		patch.AuthorName,
		patch.CategorySlug,
		tags,
		patch.IsTrending,
		patch.IsFeatured,
		patch.ReadTime,
		slug,
	).Scan(&updatedSlug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return s.GetPostBySlug(ctx, updatedSlug)
}

func (s *Postgres) DeletePostBySlug(ctx context.Context, slug string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.pool.Query(ctx, `SELECT id::text, name, slug FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return categories, nil
}

// CreateCategory returns ErrConflict when the slug is already taken, so
// callers (the seed tooling in particular) can treat re-creation as a
// success.
func (s *Postgres) CreateCategory(ctx context.Context, name, slug string) (*models.Category, error) {
	const query = `INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id::text, name, slug`
	var c models.Category
	err := s.pool.QueryRow(ctx, query, name, slug).Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &c, nil
}

func (s *Postgres) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	const query = `
		UPDATE categories SET
			name = COALESCE($1::text, name),
			slug = COALESCE($2::text, slug)
		WHERE id = $3
		RETURNING id::text, name, slug
	`
	var c models.Category
	err := s.pool.QueryRow(ctx, query, patch.Name, patch.Slug, id).Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &c, nil
}

func (s *Postgres) ListUsers(ctx context.Context) ([]models.User, error) {
	const query = `
		SELECT id::text, name, email, role, photo_url, bio, created_at
		FROM users
		ORDER BY created_at DESC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PhotoURL, &u.Bio, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return users, nil
}

// CreateUser relies on the role CHECK constraint; an invalid role surfaces
// as a generic storage failure, same as a duplicate email.
func (s *Postgres) CreateUser(ctx context.Context, name, email, role string) (*models.User, error) {
	const query = `
		INSERT INTO users (name, email, role)
		VALUES ($1, $2, $3)
		RETURNING id::text, name, email, role, photo_url, bio, created_at
	`
	var u models.User
	err := s.pool.QueryRow(ctx, query, name, email, role).Scan(
		&u.ID, &u.Name, &u.Email, &u.Role, &u.PhotoURL, &u.Bio, &u.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (s *Postgres) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	const query = `
		UPDATE users SET
			name = COALESCE($1::text, name),
			email = COALESCE($2::text, email),
			role = COALESCE($3::text, role),
			photo_url = COALESCE($4::text, photo_url),
			bio = COALESCE($5::text, bio)
		WHERE id = $6
		RETURNING id::text, name, email, role, photo_url, bio, created_at
	`
	var u models.User
	err := s.pool.QueryRow(ctx, query,
		patch.Name, patch.Email, patch.Role, patch.PhotoURL, patch.Bio, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PhotoURL, &u.Bio, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &u, nil
}
