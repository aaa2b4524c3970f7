package store

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// UserStore handles registration and credential verification.
type UserStore struct {
	db   *sql.DB
	cost int
}

// NewUserStore creates a UserStore hashing passwords at the given bcrypt cost.
func NewUserStore(db *sql.DB, cost int) *UserStore {
	return &UserStore{db: db, cost: cost}
}

const (
	insertUserSQL         = `INSERT INTO users (username, password) VALUES ($1, $2) RETURNING username`
	selectUserPasswordSQL = `SELECT password FROM users WHERE username = $1`
)

// Create registers a new user with a bcrypt-hashed password and returns the
// username. A duplicate username surfaces as ErrConflict via the unique
// constraint; there is no existence pre-check.
func (s *UserStore) Create(username, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	var created string
	err = s.db.QueryRow(insertUserSQL, username, string(hash)).Scan(&created)
	if isUniqueViolation(err) {
		return "", ErrConflict
	}
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Authenticate verifies a username/password pair. Returns ErrNotFound when
// the user does not exist and ErrUnauthorized when the password does not
// match. Comparison goes through bcrypt, never string equality.
func (s *UserStore) Authenticate(username, password string) error {
	var hash string
	err := s.db.QueryRow(selectUserPasswordSQL, username).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrUnauthorized
	}
	return nil
}
