package models

import "time"

// Post is a stored post row. CategorySlug is a soft reference to
// Category.Slug; AuthorName is free text and is never resolved against the
// users table server-side.
type Post struct {
	ID           string
	Title        string
	Slug         string
	Excerpt      string
	Content      string
	CoverImage   string
	Images       []string
	Date         time.Time
	AuthorName   string
	CategorySlug string
	Tags         []string
	IsTrending   bool
	IsFeatured   bool
	ReadTime     int
	Views        int
}

// PostPatch carries a partial update. Nil fields keep the stored value.
// Slug, date and views are not updatable through the patch path.
type PostPatch struct {
	Title        *string   `json:"title"`
	Excerpt      *string   `json:"excerpt"`
	Content      *string   `json:"content"`
	CoverImage   *string   `json:"coverImage"`
	Images       *[]string `json:"images"`
	AuthorName   *string   `json:"authorName"`
	CategorySlug *string   `json:"categorySlug"`
	Tags         *[]string `json:"tags"`
	IsTrending   *bool     `json:"isTrending"`
	IsFeatured   *bool     `json:"isFeatured"`
	ReadTime     *int      `json:"readTime"`
}

// IsEmpty reports whether no field is set.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Excerpt == nil && p.Content == nil &&
		p.CoverImage == nil && p.Images == nil && p.AuthorName == nil &&
		p.CategorySlug == nil && p.Tags == nil && p.IsTrending == nil &&
		p.IsFeatured == nil && p.ReadTime == nil
}

// PostAuthor is the author object in the public post shape. The id is always
// empty: authors are matched by name in the UI, not resolved here.
type PostAuthor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PostCategory is the category object in the public post shape.
type PostCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PostView is the public JSON representation of a post, with category and
// author materialized as objects.
type PostView struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Slug       string       `json:"slug"`
	Excerpt    string       `json:"excerpt"`
	Content    string       `json:"content"`
	CoverImage string       `json:"coverImage"`
	Images     []string     `json:"images"`
	Date       time.Time    `json:"date"`
	Author     PostAuthor   `json:"author"`
	Category   PostCategory `json:"category"`
	Tags       []string     `json:"tags"`
	IsTrending bool         `json:"isTrending"`
	IsFeatured bool         `json:"isFeatured"`
	ReadTime   int          `json:"readTime"`
	Views      int          `json:"views"`
}

// NewPostView shapes a stored post, plus its left-joined category, into the
// public representation. Category is never nil in the output: when the
// post's category slug matches no stored category, the raw slug doubles as
// both name and slug with an empty id. Images and tags are never nil.
func NewPostView(p Post, cat *Category) PostView {
	view := PostView{
		ID:         p.ID,
		Title:      p.Title,
		Slug:       p.Slug,
		Excerpt:    p.Excerpt,
		Content:    p.Content,
		CoverImage: p.CoverImage,
		Images:     p.Images,
		Date:       p.Date,
		Author:     PostAuthor{ID: "", Name: p.AuthorName},
		Tags:       p.Tags,
		IsTrending: p.IsTrending,
		IsFeatured: p.IsFeatured,
		ReadTime:   p.ReadTime,
		Views:      p.Views,
	}
	if cat != nil {
		view.Category = PostCategory{ID: cat.ID, Name: cat.Name, Slug: cat.Slug}
	} else {
		view.Category = PostCategory{ID: "", Name: p.CategorySlug, Slug: p.CategorySlug}
	}
	if view.Images == nil {
		view.Images = []string{}
	}
	if view.Tags == nil {
		view.Tags = []string{}
	}
	return view
}
