// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"inkpress/internal/models"
	"inkpress/internal/slug"
)

// PostStore manages posts, their category link, and their subcategory links.
type PostStore struct {
	db *sql.DB
}

// NewPostStore returns a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const (
	insertPostSQL = `INSERT INTO posts (slug, title, body, username, category_slug)
		VALUES ($1, $2, $3, $4, $5)`
	selectPostOwnerSQL = `SELECT username FROM posts WHERE slug = $1`
	// One row per existing subcategory; the parent slugs double as the
	// category context when the caller supplied none.
	selectSubcategoryParentsSQL = `SELECT category_slug FROM subcategories WHERE slug = ANY($1)`

	deletePostLinksSQL = `DELETE FROM post_subcategories WHERE post_slug = $1`
	deletePostSQL      = `DELETE FROM posts WHERE slug = $1`
)

// listPostsSQL aggregates each post's subcategories in a grouped subquery.
// The three placeholders are: join direction for the aggregation (LEFT keeps
// posts without subcategories; RIGHT makes a subcategory filter restrictive),
// the filter inside the subquery, and the outer category filter. Filtering
// inside the subquery before joining is what changes the query's semantics,
// not just its WHERE clause.
const listPostsSQL = `
	SELECT p.slug, p.title, p.body, p.username, p.created_at,
	       c.slug, c.name,
	       sub.refs
	FROM posts p
	LEFT JOIN categories c ON c.slug = p.category_slug
	%s JOIN (
		SELECT ps.post_slug,
		       json_agg(json_build_object('slug', s.slug, 'name', s.name, 'category', s.category_slug)) AS refs
		FROM post_subcategories ps
		JOIN subcategories s ON s.slug = ps.subcategory_slug
		%s
		GROUP BY ps.post_slug
	) sub ON sub.post_slug = p.slug
	%s`

// Create inserts a post derived from the trimmed title, upserting the named
// category and any new subcategories, and linking every named subcategory.
// Everything happens inside one transaction.
//
// Subcategory resolution follows the taxonomy's ownership of parents: an
// existing subcategory keeps its parent; when no category was supplied, the
// first existing subcategory's parent becomes the creation context for the
// new ones. New subcategories with no category context at all are rejected
// with ErrOrphanSubcategory, since a subcategory cannot exist without a parent.
func (s *PostStore) Create(in models.PostInput, owner string) (string, error) {
	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Body)
	postSlug := slug.Generate(title)
	category := strings.TrimSpace(in.Category)

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var categorySlug any // nil keeps the column NULL
	if category != "" {
		categorySlug = slug.Generate(category)
		// Ownership is set only when this insert actually creates the row.
		if _, err := tx.Exec(upsertCategorySQL, categorySlug, category, owner); err != nil {
			return "", fmt.Errorf("auto-create category %q: %w", category, err)
		}
	}

	_, err = tx.Exec(insertPostSQL, postSlug, title, body, owner, categorySlug)
	if isUniqueViolation(err) {
		return "", ErrConflict
	}
	if err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}

	if len(in.Subcategories) > 0 {
		if err := s.linkSubcategories(tx, postSlug, category, in.Subcategories, owner); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return postSlug, nil
}

// linkSubcategories resolves, creates, and links the named subcategories for
// a freshly inserted post. Runs on the post-creation transaction.
func (s *PostStore) linkSubcategories(tx *sql.Tx, postSlug, category string, names []string, owner string) error {
	subSlugs := make([]string, len(names))
	for i, n := range names {
		subSlugs[i] = slug.Generate(n)
	}

	rows, err := tx.Query(selectSubcategoryParentsSQL, subSlugs)
	if err != nil {
		return fmt.Errorf("select subcategory parents: %w", err)
	}
	var parents []string
	for rows.Next() {
		var parent string
		if err := rows.Scan(&parent); err != nil {
			rows.Close()
			return fmt.Errorf("scan subcategory parent: %w", err)
		}
		parents = append(parents, parent)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("select subcategory parents: %w", err)
	}

	if category == "" && len(parents) > 0 {
		category = parents[0]
	}
	if len(parents) != len(subSlugs) && category == "" {
		// New subcategories but nothing to parent them under.
		return ErrOrphanSubcategory
	}

	if category != "" {
		query, args := bulkInsertSubcategoriesSQL(slug.Generate(category), owner, names)
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("auto-create subcategories: %w", err)
		}
	}

	query, args := bulkInsertLinksSQL(postSlug, subSlugs)
	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("link subcategories: %w", err)
	}
	return nil
}

// bulkInsertSubcategoriesSQL builds an idempotent multi-row insert creating
// the named subcategories under one category. Re-declaring an existing
// subcategory is a no-op.
func bulkInsertSubcategoriesSQL(categorySlug, owner string, names []string) (string, []any) {
	var b strings.Builder
	b.WriteString(`INSERT INTO subcategories (category_slug, username, slug, name) VALUES `)
	args := []any{categorySlug, owner}
	for i, n := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "($1, $2, $%d, $%d)", len(args)+1, len(args)+2)
		args = append(args, slug.Generate(n), strings.TrimSpace(n))
	}
	b.WriteString(` ON CONFLICT DO NOTHING`)
	return b.String(), args
}

// bulkInsertLinksSQL builds an idempotent multi-row insert of the
// (post, subcategory) join rows.
func bulkInsertLinksSQL(postSlug string, subSlugs []string) (string, []any) {
	var b strings.Builder
	b.WriteString(`INSERT INTO post_subcategories (post_slug, subcategory_slug) VALUES `)
	args := []any{postSlug}
	for i, sc := range subSlugs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "($1, $%d)", len(args)+1)
		args = append(args, sc)
	}
	b.WriteString(` ON CONFLICT DO NOTHING`)
	return b.String(), args
}

// Delete removes a post owned by requester together with its join rows,
// inside one transaction. Categories and subcategories stay untouched.
func (s *PostStore) Delete(postSlug, requester string) error {
	var owner string
	err := s.db.QueryRow(selectPostOwnerSQL, postSlug).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select post owner: %w", err)
	}
	if owner != requester {
		return ErrForbidden
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deletePostLinksSQL, postSlug); err != nil {
		return fmt.Errorf("delete post links: %w", err)
	}
	if _, err := tx.Exec(deletePostSQL, postSlug); err != nil {
		return fmt.Errorf("delete post %q: %w", postSlug, err)
	}

	return tx.Commit()
}

// List returns posts joined with their category (nil when unset) and the
// aggregated list of linked subcategories. Both filters may be empty; when a
// subcategory filter is given, only posts linked to at least one matching
// subcategory are returned, each exactly once. Supplying both filters
// intersects them.
func (s *PostStore) List(category string, subcategories []string) ([]models.PostView, error) {
	subJoin := "LEFT"
	var subFilter, catFilter string
	var args []any

	if category != "" {
		args = append(args, category)
		catFilter = fmt.Sprintf("WHERE c.slug = $%d", len(args))
	}
	if len(subcategories) > 0 {
		args = append(args, subcategories)
		subFilter = fmt.Sprintf("WHERE s.slug = ANY($%d)", len(args))
		// The filtered aggregation drives the result set now.
		subJoin = "RIGHT"
	}

	query := fmt.Sprintf(listPostsSQL, subJoin, subFilter, catFilter)
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.PostView
	for rows.Next() {
		var (
			item             models.PostView
			catSlug, catName sql.NullString
			refs             []byte
		)
		err := rows.Scan(
			&item.Slug, &item.Title, &item.Body, &item.Username, &item.CreatedAt,
			&catSlug, &catName, &refs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		if catSlug.Valid {
			item.Category = &models.CategoryRef{Slug: catSlug.String, Name: catName.String}
		}
		if len(refs) > 0 {
			if err := json.Unmarshal(refs, &item.Subcategories); err != nil {
				return nil, fmt.Errorf("decode subcategories for %q: %w", item.Slug, err)
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
