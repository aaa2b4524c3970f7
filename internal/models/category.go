package models

// Category is a top-level taxonomy entry, keyed by the slug of its name.
// Username records the owner set at creation; only the owner may delete it.
type Category struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Username string `json:"-"`
}

// Subcategory always belongs to exactly one category.
type Subcategory struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	CategorySlug string `json:"category"`
	Username     string `json:"-"`
}

// CategoryRef is the public read shape for category listings and for the
// category nested in a post.
type CategoryRef struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// SubcategoryRef is the public read shape for subcategory listings and for
// the subcategories nested in a post.
type SubcategoryRef struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}
