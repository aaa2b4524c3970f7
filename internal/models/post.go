package models

import "time"

// Post is a blog entry keyed by the slug of its title. CategorySlug is
// nullable: deleting the referenced category nulls it rather than cascading
// into the post.
type Post struct {
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Username     string    `json:"username"`
	CategorySlug *string   `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
}

// PostInput carries the fields accepted when creating a post. Category and
// Subcategories are display names, not slugs; missing ones are auto-created.
type PostInput struct {
	Title         string   `json:"title"`
	Body          string   `json:"body"`
	Category      string   `json:"category"`
	Subcategories []string `json:"subcategories"`
}

// PostView is the read shape returned by post listings: the post row joined
// with its category (nil when unset) and every linked subcategory.
type PostView struct {
	Slug          string           `json:"slug"`
	Title         string           `json:"title"`
	Body          string           `json:"body"`
	Username      string           `json:"username"`
	CreatedAt     time.Time        `json:"created_at"`
	Category      *CategoryRef     `json:"category"`
	Subcategories []SubcategoryRef `json:"subcategories"`
}
