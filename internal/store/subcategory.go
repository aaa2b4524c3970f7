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

// SubcategoryStore manages second-level taxonomy entries. Every subcategory
// belongs to exactly one category; a missing parent is auto-created.
type SubcategoryStore struct {
	db *sql.DB
}

// NewSubcategoryStore returns a new SubcategoryStore.
func NewSubcategoryStore(db *sql.DB) *SubcategoryStore {
	return &SubcategoryStore{db: db}
}

const (
	upsertCategorySQL = `INSERT INTO categories (slug, name, username) VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`
	insertSubcategorySQL = `INSERT INTO subcategories (slug, name, category_slug, username)
		VALUES ($1, $2, $3, $4)`
	listSubcategoriesSQL      = `SELECT slug, name FROM subcategories`
	selectSubcategoryOwnerSQL = `SELECT username FROM subcategories WHERE slug = $1`

	deleteSubcategoryLinksSQL = `DELETE FROM post_subcategories WHERE subcategory_slug = $1`
	deleteSubcategorySQL      = `DELETE FROM subcategories WHERE slug = $1`
)

// Create inserts a subcategory under the named category, creating the
// category first (owned by the same user, named after the raw input) when it
// does not exist yet. Both inserts share one transaction. A duplicate
// subcategory slug surfaces as ErrConflict.
func (s *SubcategoryStore) Create(name, category, owner string) (string, error) {
	name = strings.TrimSpace(name)
	subSlug := slug.Generate(name)
	categorySlug := slug.Generate(category)

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(upsertCategorySQL, categorySlug, category, owner); err != nil {
		return "", fmt.Errorf("auto-create category %q: %w", categorySlug, err)
	}

	_, err = tx.Exec(insertSubcategorySQL, subSlug, name, categorySlug, owner)
	if isUniqueViolation(err) {
		return "", ErrConflict
	}
	if err != nil {
		return "", fmt.Errorf("create subcategory: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return subSlug, nil
}

// List returns every subcategory. Unrestricted read, no pagination.
func (s *SubcategoryStore) List() ([]models.SubcategoryRef, error) {
	rows, err := s.db.Query(listSubcategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	var items []models.SubcategoryRef
	for rows.Next() {
		var sc models.SubcategoryRef
		if err := rows.Scan(&sc.Slug, &sc.Name); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		items = append(items, sc)
	}
	return items, rows.Err()
}

// Delete removes a subcategory owned by requester together with its post
// links. The parent category and all posts stay untouched.
func (s *SubcategoryStore) Delete(subSlug, requester string) error {
	var owner string
	err := s.db.QueryRow(selectSubcategoryOwnerSQL, subSlug).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select subcategory owner: %w", err)
	}
	if owner != requester {
		return ErrForbidden
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteSubcategoryLinksSQL, subSlug); err != nil {
		return fmt.Errorf("delete subcategory links: %w", err)
	}
	if _, err := tx.Exec(deleteSubcategorySQL, subSlug); err != nil {
		return fmt.Errorf("delete subcategory %q: %w", subSlug, err)
	}

	return tx.Commit()
}
