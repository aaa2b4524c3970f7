// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"inkpress/internal/models"
	"inkpress/internal/slug"
)

// CategoryStore manages top-level taxonomy entries.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const (
	insertCategorySQL      = `INSERT INTO categories (slug, name, username) VALUES ($1, $2, $3)`
	listCategoriesSQL      = `SELECT slug, name FROM categories`
	selectCategoryOwnerSQL = `SELECT username FROM categories WHERE slug = $1`

	// Cascade statements, applied in this order inside one transaction.
	// Posts are decoupled, never deleted; join rows go before their
	// subcategories to satisfy the foreign keys.
	detachCategoryPostsSQL = `UPDATE posts SET category_slug = NULL WHERE category_slug = $1`
	deleteCategoryLinksSQL = `DELETE FROM post_subcategories WHERE subcategory_slug IN
		(SELECT slug FROM subcategories WHERE category_slug = $1)`
	deleteCategorySubsSQL = `DELETE FROM subcategories WHERE category_slug = $1`
	deleteCategorySQL     = `DELETE FROM categories WHERE slug = $1`
)

// Create inserts a category derived from the trimmed display name and returns
// its slug. A duplicate slug surfaces as ErrConflict.
func (s *CategoryStore) Create(name, owner string) (string, error) {
	name = strings.TrimSpace(name)
	categorySlug := slug.Generate(name)

	_, err := s.db.Exec(insertCategorySQL, categorySlug, name, owner)
	if isUniqueViolation(err) {
		return "", ErrConflict
	}
	if err != nil {
		return "", fmt.Errorf("create category: %w", err)
	}
	return categorySlug, nil
}

// List returns every category. Unrestricted read, no pagination.
func (s *CategoryStore) List() ([]models.CategoryRef, error) {
	rows, err := s.db.Query(listCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.CategoryRef
	for rows.Next() {
		var c models.CategoryRef
		if err := rows.Scan(&c.Slug, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Delete removes a category owned by requester along with its subcategories
// and their post links, and detaches (but keeps) any posts referencing it.
// The whole cascade is one transaction: either all four steps apply or none.
func (s *CategoryStore) Delete(categorySlug, requester string) error {
	var owner string
	err := s.db.QueryRow(selectCategoryOwnerSQL, categorySlug).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select category owner: %w", err)
	}
	if owner != requester {
		return ErrForbidden
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, query := range []string{
		detachCategoryPostsSQL,
		deleteCategoryLinksSQL,
		deleteCategorySubsSQL,
		deleteCategorySQL,
	} {
		if _, err := tx.Exec(query, categorySlug); err != nil {
			return fmt.Errorf("delete category %q: %w", categorySlug, err)
		}
	}

	return tx.Commit()
}
