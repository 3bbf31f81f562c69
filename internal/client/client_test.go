package client_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Edinam27/blog-ready/internal/client"
	"github.com/Edinam27/blog-ready/internal/db"
	"github.com/Edinam27/blog-ready/internal/handlers"
	"github.com/Edinam27/blog-ready/internal/models"
)

func newTestAPI(t *testing.T) *client.Client {
	t.Helper()
	store := db.NewMemory()
	server := httptest.NewServer(handlers.NewRouter(store, "https://blog.example.com", []string{"*"}))
	t.Cleanup(server.Close)
	return client.New(server.URL + "/api")
}

func strPtr(s string) *string { return &s }

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	assert.NoError(t, api.Health(context.Background()))
}

func TestEnsureCategoryIdempotent(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	created, err := api.EnsureCategory(ctx, "Tech", "tech")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = api.EnsureCategory(ctx, "Tech", "tech")
	require.NoError(t, err)
	assert.False(t, created)

	categories, err := api.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestUpsertPostCreatesThenUpdates(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	patch := models.PostPatch{
		Title:   strPtr("Hello"),
		Excerpt: strPtr("first version"),
		Content: strPtr("body"),
	}

	// No post yet: the update misses and the client falls back to create.
	created, err := api.UpsertPost(ctx, "hello", patch)
	require.NoError(t, err)
	assert.Equal(t, "hello", created.Slug)
	assert.Equal(t, "Hello", created.Title)

	// Second save hits the update path and keeps omitted fields.
	updated, err := api.UpsertPost(ctx, "hello", models.PostPatch{Excerpt: strPtr("second version")})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Hello", updated.Title)
	assert.Equal(t, "second version", updated.Excerpt)

	posts, err := api.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestUpsertPostDefaultsTitleToSlug(t *testing.T) {
	api := newTestAPI(t)

	created, err := api.UpsertPost(context.Background(), "untitled-draft", models.PostPatch{
		Content: strPtr("draft body"),
	})
	require.NoError(t, err)
	assert.Equal(t, "untitled-draft", created.Title)
}

func TestGetPostNotFound(t *testing.T) {
	api := newTestAPI(t)

	_, err := api.GetPost(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
}

func TestDeletePost(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	_, err := api.CreatePost(ctx, client.PostInput{Title: "A", Slug: "a"})
	require.NoError(t, err)

	require.NoError(t, api.DeletePost(ctx, "a"))

	err = api.DeletePost(ctx, "a")
	assert.True(t, client.IsNotFound(err))
}

func TestUsersRoundTrip(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	created, err := api.CreateUser(ctx, "Eve", "eve@example.com", models.RoleEditor)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := api.UpdateUser(ctx, created.ID, models.UserPatch{Bio: strPtr("Writes about Go.")})
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "Writes about Go.", *updated.Bio)

	users, err := api.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
