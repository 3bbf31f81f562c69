package sitemap

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Edinam27/blog-ready/internal/models"
)

func TestBuildStructure(t *testing.T) {
	categories := []models.Category{
		{ID: "c1", Name: "Finance", Slug: "finance"},
		{ID: "c2", Name: "Tech", Slug: "tech"},
	}
	posts := []models.PostView{
		{Slug: "newer", Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "older", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	set := Build("https://blog.example.com", categories, posts)

	require.Len(t, set.URLs, 1+len(categories)+len(posts))

	root := set.URLs[0]
	assert.Equal(t, "https://blog.example.com/", root.Loc)
	assert.Equal(t, "daily", root.ChangeFreq)
	assert.Equal(t, "1.0", root.Priority)
	assert.Empty(t, root.LastMod)

	assert.Equal(t, "https://blog.example.com/category/finance", set.URLs[1].Loc)
	assert.Equal(t, "0.6", set.URLs[1].Priority)
	assert.Empty(t, set.URLs[1].LastMod)

	// Posts keep their date-descending input order.
	assert.Equal(t, "https://blog.example.com/blog/newer", set.URLs[3].Loc)
	assert.Equal(t, "https://blog.example.com/blog/older", set.URLs[4].Loc)
	assert.Equal(t, "2026-02-01T00:00:00Z", set.URLs[3].LastMod)
	assert.Equal(t, "0.8", set.URLs[3].Priority)
	assert.Equal(t, "weekly", set.URLs[3].ChangeFreq)
}

func TestBuildEmptyStore(t *testing.T) {
	set := Build("https://blog.example.com", nil, nil)

	require.Len(t, set.URLs, 1)
	assert.Equal(t, "https://blog.example.com/", set.URLs[0].Loc)
}

func TestRender(t *testing.T) {
	set := Build("https://blog.example.com", nil, []models.PostView{
		{Slug: "only", Date: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)},
	})

	body, err := set.Render()
	require.NoError(t, err)

	out := string(body)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, out, "<loc>https://blog.example.com/blog/only</loc>")
	assert.Contains(t, out, "<lastmod>2026-03-04T05:06:07Z</lastmod>")
	// The root entry has no lastmod element at all.
	assert.Equal(t, 1, strings.Count(out, "<lastmod>"))
}

func TestRenderDeterministic(t *testing.T) {
	categories := []models.Category{{Name: "Tech", Slug: "tech"}}
	posts := []models.PostView{{Slug: "a", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}}

	first, err := Build("https://blog.example.com", categories, posts).Render()
	require.NoError(t, err)
	second, err := Build("https://blog.example.com", categories, posts).Render()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
