// Package token issues and verifies the signed session tokens carried in the
// "token" cookie. Tokens are self-contained HS256 JWTs holding the username;
// once the signature verifies, no database lookup is needed to trust them.
package token

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the name of the session cookie sent to the browser.
const CookieName = "token"

// ErrInvalidToken is returned when a token parses but its claims are unusable.
var ErrInvalidToken = errors.New("invalid token")

// Claims defines the JWT payload: the username plus standard expiry fields.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Manager signs and verifies session tokens with a server secret.
type Manager struct {
	secret        []byte
	ttl           time.Duration
	refreshWindow time.Duration
}

// NewManager creates a Manager. ttl is the token lifetime; refreshWindow is
// how close to expiry a token must be before verification re-issues it.
func NewManager(secret string, ttl, refreshWindow time.Duration) *Manager {
	return &Manager{
		secret:        []byte(secret),
		ttl:           ttl,
		refreshWindow: refreshWindow,
	}
}

// TTL returns the configured token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a new token for the given username.
func (m *Manager) Issue(username string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: username,
	})
	return t.SignedString(m.secret)
}

// Parse verifies the signature and expiry of a raw token and returns its
// claims. Only HMAC-signed tokens are accepted.
func (m *Manager) Parse(raw string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || claims.Username == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// NearExpiry reports whether the token is within the refresh window of its
// expiry, meaning verification should issue a replacement to keep the
// session sliding.
func (m *Manager) NearExpiry(c *Claims) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return time.Until(c.ExpiresAt.Time) < m.refreshWindow
}

// SetCookie attaches the signed token to the response as an HTTP-only cookie.
func (m *Manager) SetCookie(w http.ResponseWriter, signed string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl.Seconds()),
	})
}

// ClearCookie expires the session cookie immediately.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
