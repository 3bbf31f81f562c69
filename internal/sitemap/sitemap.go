// Package sitemap derives the XML sitemap from the current set of
// categories and posts. Output order is fixed: site root first, then
// categories, then posts, so the document is reproducible for a given
// store state.
package sitemap

import (
	"encoding/xml"
	"time"

	"github.com/Edinam27/blog-ready/internal/models"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// Build assembles the sitemap. Categories are expected in name-ascending
// order and posts in date-descending order, matching the list operations.
// Only posts carry a lastmod, taken from the post date.
func Build(baseURL string, categories []models.Category, posts []models.PostView) URLSet {
	urls := make([]URL, 0, 1+len(categories)+len(posts))

	urls = append(urls, URL{
		Loc:        baseURL + "/",
		ChangeFreq: "daily",
		Priority:   "1.0",
	})
	for _, c := range categories {
		urls = append(urls, URL{
			Loc:        baseURL + "/category/" + c.Slug,
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}
	for _, p := range posts {
		urls = append(urls, URL{
			Loc:        baseURL + "/blog/" + p.Slug,
			LastMod:    p.Date.UTC().Format(time.RFC3339),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	return URLSet{Xmlns: xmlns, URLs: urls}
}

// Render serializes the URL set with the standard XML header.
func (s URLSet) Render() ([]byte, error) {
	body, err := xml.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
