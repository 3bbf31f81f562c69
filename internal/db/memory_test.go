package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Edinam27/blog-ready/internal/models"
)

func newTestStore(t *testing.T) *Memory {
	t.Helper()
	store := NewMemory()
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func createTestPost(t *testing.T, store *Memory, slug string, date time.Time) models.PostView {
	t.Helper()
	view, err := store.CreatePost(context.Background(), models.Post{
		Title:        "Title " + slug,
		Slug:         slug,
		Excerpt:      "excerpt",
		Content:      "content",
		CategorySlug: "tech",
		Date:         date,
		Tags:         []string{"a", "b"},
		ReadTime:     5,
	})
	require.NoError(t, err)
	return *view
}

func TestCreatePostAndGetBySlug(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := createTestPost(t, store, "first", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "first", created.Slug)
	assert.Equal(t, 0, created.Views)

	got, err := store.GetPostBySlug(ctx, "first")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created, *got)
}

func TestCreatePostDuplicateSlug(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	createTestPost(t, store, "dup", time.Now().UTC())
	_, err := store.CreatePost(ctx, models.Post{Title: "again", Slug: "dup", Date: time.Now().UTC()})
	assert.Error(t, err)

	posts, err := store.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestGetPostBySlugMissing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetPostBySlug(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListPostsOrderedByDateDesc(t *testing.T) {
	store := newTestStore(t)

	createTestPost(t, store, "oldest", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	createTestPost(t, store, "newest", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	createTestPost(t, store, "middle", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	posts, err := store.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "newest", posts[0].Slug)
	assert.Equal(t, "middle", posts[1].Slug)
	assert.Equal(t, "oldest", posts[2].Slug)
}

func TestUpdatePostCoalesces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	before := createTestPost(t, store, "keep", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	featured := true
	after, err := store.UpdatePostBySlug(ctx, "keep", models.PostPatch{IsFeatured: &featured})
	require.NoError(t, err)
	require.NotNil(t, after)

	assert.True(t, after.IsFeatured)
	// Every omitted field is unchanged.
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.Excerpt, after.Excerpt)
	assert.Equal(t, before.Content, after.Content)
	assert.Equal(t, before.Tags, after.Tags)
	assert.Equal(t, before.Date, after.Date)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.ReadTime, after.ReadTime)
	assert.Equal(t, before.IsTrending, after.IsTrending)
}

func TestUpdatePostMissingSlug(t *testing.T) {
	store := newTestStore(t)

	title := "X"
	updated, err := store.UpdatePostBySlug(context.Background(), "missing-slug", models.PostPatch{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDeletePost(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	createTestPost(t, store, "gone", time.Now().UTC())

	require.NoError(t, store.DeletePostBySlug(ctx, "gone"))

	got, err := store.GetPostBySlug(ctx, "gone")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Second delete is a miss, not an idempotent success.
	assert.ErrorIs(t, store.DeletePostBySlug(ctx, "gone"), ErrNotFound)
}

func TestPostCategoryJoin(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cat, err := store.CreateCategory(ctx, "Tech", "tech")
	require.NoError(t, err)

	created := createTestPost(t, store, "joined", time.Now().UTC())
	assert.Equal(t, models.PostCategory{ID: cat.ID, Name: "Tech", Slug: "tech"}, created.Category)

	// Unmatched reference falls back to the raw slug.
	orphan, err := store.CreatePost(ctx, models.Post{
		Title: "Orphan", Slug: "orphan", CategorySlug: "nothing-here", Date: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.PostCategory{ID: "", Name: "nothing-here", Slug: "nothing-here"}, orphan.Category)
}

func TestCreateCategoryConflict(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.CreateCategory(ctx, "Tech", "tech")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = store.CreateCategory(ctx, "Tech Again", "tech")
	assert.ErrorIs(t, err, ErrConflict)

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestListCategoriesOrderedByName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateCategory(ctx, "Zebra", "zebra")
	require.NoError(t, err)
	_, err = store.CreateCategory(ctx, "Alpha", "alpha")
	require.NoError(t, err)

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Alpha", categories[0].Name)
	assert.Equal(t, "Zebra", categories[1].Name)
}

func TestUpdateCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateCategory(ctx, "Tech", "tech")
	require.NoError(t, err)

	name := "Technology"
	updated, err := store.UpdateCategory(ctx, created.ID, models.CategoryPatch{Name: &name})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Technology", updated.Name)
	assert.Equal(t, "tech", updated.Slug)

	missing, err := store.UpdateCategory(ctx, "no-such-id", models.CategoryPatch{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateUserRoleEnforcedAtStorage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, "Eve", "eve@example.com", "superuser")
	assert.Error(t, err)

	created, err := store.CreateUser(ctx, "Eve", "eve@example.com", models.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, created.Role)
	assert.Nil(t, created.PhotoURL)
	assert.Nil(t, created.Bio)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, "A", "same@example.com", models.RoleAdmin)
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, "B", "same@example.com", models.RoleAuthor)
	assert.Error(t, err)
}

func TestUpdateUserCoalesces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateUser(ctx, "Eve", "eve@example.com", models.RoleEditor)
	require.NoError(t, err)

	bio := "Writes about Go."
	updated, err := store.UpdateUser(ctx, created.ID, models.UserPatch{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Eve", updated.Name)
	assert.Equal(t, "eve@example.com", updated.Email)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)

	role := "owner"
	_, err = store.UpdateUser(ctx, created.ID, models.UserPatch{Role: &role})
	assert.Error(t, err)

	missing, err := store.UpdateUser(ctx, "no-such-id", models.UserPatch{Bio: &bio})
	require.NoError(t, err)
	assert.Nil(t, missing)
}
