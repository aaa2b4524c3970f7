// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestRegister(t *testing.T) {
	ts := newServer(t)

	ts.mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("alice"))

	rec := ts.do(t, http.MethodPost, "/register", `{"username":"alice","password":"s3cret"}`, "")

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201: %s", rec.Code, rec.Body.String())
	}
	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("expected a session cookie")
	}
	claims, err := ts.tokens.Parse(cookie.Value)
	if err != nil {
		t.Fatalf("cookie token does not parse: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("token username: got %q", claims.Username)
	}
}

func TestRegisterTakenUsername(t *testing.T) {
	ts := newServer(t)

	ts.mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	rec := ts.do(t, http.MethodPost, "/register", `{"username":"alice","password":"s3cret"}`, "")

	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want 409", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "a user with the same name already exists" {
		t.Errorf("message: %q", msg)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"malformed body", `{"username":`, "malformed request body"},
		{"missing username", `{"password":"x"}`, "username is required"},
		{"blank username", `{"username":"   ","password":"x"}`, "username is required"},
		{"missing password", `{"username":"alice"}`, "password is required"},
		{"long password", `{"username":"alice","password":"` + strings.Repeat("p", 80) + `"}`, "password is too long (max 72 bytes)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newServer(t)
			rec := ts.do(t, http.MethodPost, "/register", tt.body, "")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rec.Code)
			}
			if msg := errorMessage(t, rec); msg != tt.wantMsg {
				t.Errorf("message: got %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestSignIn(t *testing.T) {
	ts := newServer(t)

	ts.mock.ExpectQuery("SELECT password FROM users").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"password"}).AddRow(hashFor(t, "s3cret")))

	rec := ts.do(t, http.MethodPost, "/sign", `{"username":"alice","password":"s3cret"}`, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if sessionCookie(rec) == nil {
		t.Error("expected a session cookie")
	}
}

func TestSignInUnknownUser(t *testing.T) {
	ts := newServer(t)

	ts.mock.ExpectQuery("SELECT password FROM users").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"password"}))

	rec := ts.do(t, http.MethodPost, "/sign", `{"username":"ghost","password":"x"}`, "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "user not found" {
		t.Errorf("message: %q", msg)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	ts := newServer(t)

	ts.mock.ExpectQuery("SELECT password FROM users").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"password"}).AddRow(hashFor(t, "s3cret")))

	rec := ts.do(t, http.MethodPost, "/sign", `{"username":"alice","password":"wrong"}`, "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "incorrect password" {
		t.Errorf("message: %q", msg)
	}
}

func TestLogout(t *testing.T) {
	ts := newServer(t)

	rec := ts.do(t, http.MethodGet, "/logout", "", "alice")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("expected a clearing cookie")
	}
	if cookie.Value != "" || cookie.MaxAge != -1 {
		t.Errorf("cookie not cleared: value=%q maxAge=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestLogoutRequiresSession(t *testing.T) {
	ts := newServer(t)

	rec := ts.do(t, http.MethodGet, "/logout", "", "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
}
