// Package auth issues and checks bearer-token sessions backed by bcrypt
// password hashes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fintrack/internal/gateway"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const DefaultSessionTTL = 30 * 24 * time.Hour

type Manager struct {
	users    gateway.UserStore
	sessions gateway.SessionStore
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(users gateway.UserStore, sessions gateway.SessionStore, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Manager{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates a new user with a freshly hashed password.
func (m *Manager) Register(ctx context.Context, username, password string) (gateway.User, error) {
	if username == "" || password == "" {
		return gateway.User{}, ErrInvalidCredentials
	}
	hash, err := HashPassword(password)
	if err != nil {
		return gateway.User{}, err
	}
	return m.users.CreateUser(ctx, username, hash)
}

// Login checks the password and issues a session token. Bad username and bad
// password are indistinguishable to the caller.
func (m *Manager) Login(ctx context.Context, username, password string) (gateway.Session, error) {
	u, err := m.users.GetUserByName(ctx, username)
	if errors.Is(err, gateway.ErrNotFound) {
		return gateway.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return gateway.Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return gateway.Session{}, ErrInvalidCredentials
	}

	s := gateway.Session{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: m.now().Add(m.ttl),
	}
	if err := m.sessions.CreateSession(ctx, s); err != nil {
		return gateway.Session{}, err
	}

	slog.InfoContext(ctx, "Session issued", "user_id", u.ID)
	return s, nil
}

func (m *Manager) Logout(ctx context.Context, token string) error {
	return m.sessions.DeleteSession(ctx, token)
}

// Authenticate resolves a bearer token to its user. Expired sessions are
// removed on sight.
func (m *Manager) Authenticate(ctx context.Context, token string) (string, error) {
	s, err := m.sessions.GetSession(ctx, token)
	if err != nil {
		return "", err
	}
	if m.now().After(s.ExpiresAt) {
		_ = m.sessions.DeleteSession(ctx, token)
		return "", gateway.ErrSessionExpired
	}
	return s.UserID, nil
}

// PurgeExpired removes sessions past their expiry. The server runs this
// periodically so abandoned tokens do not pile up.
func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	return m.sessions.DeleteExpiredSessions(ctx, m.now())
}
