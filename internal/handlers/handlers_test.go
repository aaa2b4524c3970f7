// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers_test

import (
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"inkpress/internal/handlers"
	"inkpress/internal/middleware"
	"inkpress/internal/router"
	"inkpress/internal/store"
	"inkpress/internal/token"
)

// passthroughConverter hands argument values to the mock driver unchanged,
// so expectations can match slice and nil arguments directly.
type passthroughConverter struct{}

func (passthroughConverter) ConvertValue(v any) (driver.Value, error) {
	return v, nil
}

// testServer wires the full router over a mocked database, a real token
// manager, and no cache.
type testServer struct {
	handler http.Handler
	mock    sqlmock.Sqlmock
	tokens  *token.Manager
}

func newServer(t *testing.T) *testServer {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(passthroughConverter{}))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	tokens := token.NewManager("test-secret", time.Hour, 10*time.Minute)

	limiter := middleware.NewRateLimiter(1000, time.Minute)
	t.Cleanup(limiter.Stop)

	auth := handlers.NewAuth(store.NewUserStore(db, bcrypt.MinCost), tokens)
	categories := handlers.NewCategories(store.NewCategoryStore(db), nil)
	subcategories := handlers.NewSubcategories(store.NewSubcategoryStore(db), nil)
	posts := handlers.NewPosts(store.NewPostStore(db), nil)

	return &testServer{
		handler: router.New(tokens, limiter, auth, categories, subcategories, posts),
		mock:    mock,
		tokens:  tokens,
	}
}

// do runs a request through the router. A non-empty username attaches a
// freshly issued session cookie.
func (ts *testServer) do(t *testing.T, method, target, body, username string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if username != "" {
		raw, err := ts.tokens.Issue(username)
		if err != nil {
			t.Fatal(err)
		}
		req.AddCookie(&http.Cookie{Name: token.CookieName, Value: raw})
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// errorMessage decodes the {"error": ...} body.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

// sessionCookie returns the token cookie set on the response, or nil.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == token.CookieName {
			return c
		}
	}
	return nil
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(h)
}
