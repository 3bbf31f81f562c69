// Command seed imports content into a running API instance. It is safe to
// re-run: categories that already exist are skipped, and posts are updated
// in place when their slug is already present.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/Edinam27/blog-ready/internal/client"
	"github.com/Edinam27/blog-ready/internal/models"
)

type contentFile struct {
	Categories []struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"categories"`
	Posts []client.PostInput `json:"posts"`
}

func main() {
	base := flag.String("base", "http://localhost:8080/api", "API base URL")
	file := flag.String("file", "", "path to the JSON content file")
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read content file: %v", err)
	}
	var content contentFile
	if err := json.Unmarshal(raw, &content); err != nil {
		log.Fatalf("parse content file: %v", err)
	}

	ctx := context.Background()
	api := client.New(*base)

	log.Println("starting seed")

	for _, cat := range content.Categories {
		created, err := api.EnsureCategory(ctx, cat.Name, cat.Slug)
		switch {
		case err != nil:
			log.Printf("category %s: %v", cat.Slug, err)
		case created:
			log.Printf("created category: %s", cat.Name)
		default:
			log.Printf("category already exists: %s", cat.Name)
		}
	}

	for _, post := range content.Posts {
		existing, err := api.GetPost(ctx, post.Slug)
		if err != nil && !client.IsNotFound(err) {
			log.Printf("post %s: %v", post.Slug, err)
			continue
		}

		if existing != nil {
			if _, err := api.UpdatePost(ctx, post.Slug, patchFromInput(post)); err != nil {
				log.Printf("update post %s: %v", post.Slug, err)
				continue
			}
			log.Printf("updated post: %s", post.Title)
		} else {
			if _, err := api.CreatePost(ctx, post); err != nil {
				log.Printf("create post %s: %v", post.Slug, err)
				continue
			}
			log.Printf("created post: %s", post.Title)
		}
	}

	log.Println("seed complete")
}

// patchFromInput turns a full post payload into a patch covering every
// updatable field. Slug and date stay as stored.
func patchFromInput(in client.PostInput) models.PostPatch {
	images := in.Images
	if images == nil {
		images = []string{}
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	title := in.Title
	excerpt := in.Excerpt
	contentBody := in.Content
	coverImage := in.CoverImage
	authorName := in.AuthorName
	categorySlug := in.CategorySlug
	isTrending := in.IsTrending
	isFeatured := in.IsFeatured
	readTime := in.ReadTime
	return models.PostPatch{
		Title:        &title,
		Excerpt:      &excerpt,
		Content:      &contentBody,
		CoverImage:   &coverImage,
		Images:       &images,
		AuthorName:   &authorName,
		CategorySlug: &categorySlug,
		Tags:         &tags,
		IsTrending:   &isTrending,
		IsFeatured:   &isFeatured,
		ReadTime:     &readTime,
	}
}
