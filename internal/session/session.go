package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stridehq/stride/internal/domain"
)

const keyPrefix = "session:"

// UserLoader resolves a stored user id back to a full user record.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Options configure cookie attributes and session lifetime.
type Options struct {
	CookieName string
	TTL        time.Duration
	// Secure marks the cookie HTTPS-only. Off in local development so the
	// cookie survives plain-HTTP testing.
	Secure bool
}

// Manager stores session tokens in Redis and plumbs them through an
// HTTP-only cookie. A session is a single key token -> user id with the
// configured TTL; expiry is enforced by Redis itself.
type Manager struct {
	rdb   *redis.Client
	users UserLoader
	opts  Options
}

// NewManager creates a session manager backed by the given Redis client.
func NewManager(rdb *redis.Client, users UserLoader, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "stride_session"
	}
	if opts.TTL == 0 {
		opts.TTL = 30 * 24 * time.Hour
	}
	return &Manager{rdb: rdb, users: users, opts: opts}
}

// generateToken creates an unguessable session token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Create persists a new session for the user and returns its token.
func (m *Manager) Create(ctx context.Context, user *domain.User) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	if err := m.rdb.Set(ctx, keyPrefix+token, user.ID, m.opts.TTL).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// SetCookie writes the session token into the response cookie.
func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Load resolves the request's session cookie to a user. A missing cookie,
// unknown or expired token, or vanished user all yield the anonymous state
// (nil user, nil error); only infrastructure failures are returned.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*domain.User, error) {
	cookie, err := r.Cookie(m.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	userID, err := m.rdb.Get(ctx, keyPrefix+cookie.Value).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	user, err := m.users.GetByID(ctx, userID)
	if err != nil {
		// The token outlived the account. Treat as anonymous.
		log.Printf("[session] token resolved to missing user %s: %v", userID, err)
		return nil, nil
	}
	return user, nil
}

// Destroy invalidates the request's session record and clears the cookie.
func (m *Manager) Destroy(ctx context.Context, r *http.Request, w http.ResponseWriter) {
	if cookie, err := r.Cookie(m.opts.CookieName); err == nil && cookie.Value != "" {
		if err := m.rdb.Del(ctx, keyPrefix+cookie.Value).Err(); err != nil {
			log.Printf("[session] delete token: %v", err)
		}
	}
	m.ClearCookie(w)
}
