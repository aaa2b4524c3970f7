package handlers

import (
	"net/http"

	"inkpress/internal/store"
	"inkpress/internal/token"
)

// Auth groups the registration and session HTTP handlers.
type Auth struct {
	users  *store.UserStore
	tokens *token.Manager
}

// NewAuth creates a new Auth handler group.
func NewAuth(users *store.UserStore, tokens *token.Manager) *Auth {
	return &Auth{users: users, tokens: tokens}
}

// credentials is the request body for register and sign.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account and starts a session in the same response.
// POST /register → 201 + token cookie, 400 on bad input, 409 on a taken
// username.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if !decodeBody(w, r, &body) {
		return
	}
	if msg := validateCredentials(body.Username, body.Password); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	username, err := a.users.Create(body.Username, body.Password)
	if err != nil {
		writeStoreError(w, err, "user", "users", "a user with the same name already exists")
		return
	}

	a.startSession(w, username, http.StatusCreated)
}

// SignIn verifies credentials and starts a session.
// POST /sign → 200 + token cookie, 404 unknown user, 401 wrong password.
func (a *Auth) SignIn(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if !decodeBody(w, r, &body) {
		return
	}
	if msg := validateCredentials(body.Username, body.Password); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := a.users.Authenticate(body.Username, body.Password); err != nil {
		writeStoreError(w, err, "user", "users", "")
		return
	}

	a.startSession(w, body.Username, http.StatusOK)
}

// Logout clears the session cookie. GET /logout (authenticated) → 200.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.tokens.ClearCookie(w)
	w.WriteHeader(http.StatusOK)
}

// startSession issues a token, sets the cookie, and writes the final status.
func (a *Auth) startSession(w http.ResponseWriter, username string, status int) {
	signed, err := a.tokens.Issue(username)
	if err != nil {
		writeStoreError(w, err, "session", "sessions", "")
		return
	}
	a.tokens.SetCookie(w, signed)
	w.WriteHeader(status)
}
