package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a demo user
// owning one category, one subcategory, and one linked post. It is a no-op
// when any user already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	steps := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO users (username, password) VALUES ($1, $2)`,
			[]any{"demo", string(hash)}},
		{`INSERT INTO categories (slug, name, username) VALUES ($1, $2, $3)`,
			[]any{"getting-started", "Getting Started", "demo"}},
		{`INSERT INTO subcategories (slug, name, category_slug, username) VALUES ($1, $2, $3, $4)`,
			[]any{"first-steps", "First Steps", "getting-started", "demo"}},
		{`INSERT INTO posts (slug, title, body, username, category_slug) VALUES ($1, $2, $3, $4, $5)`,
			[]any{"welcome-to-inkpress", "Welcome to inkpress",
				"Register an account, create categories, and start posting.",
				"demo", "getting-started"}},
		{`INSERT INTO post_subcategories (post_slug, subcategory_slug) VALUES ($1, $2)`,
			[]any{"welcome-to-inkpress", "first-steps"}},
	}
	for _, step := range steps {
		if _, err := tx.Exec(step.query, step.args...); err != nil {
			return fmt.Errorf("seed insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo data",
		"username", "demo",
		"password", "demo",
	)
	return nil
}
