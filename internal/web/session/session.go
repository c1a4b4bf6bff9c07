// Package session keeps login sessions in a pluggable key/value storage and ties them to a cookie.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// ErrNoSession is returned when the request carries no cookie or the stored session is gone.
var ErrNoSession = errors.New("no session")

// Storage is the key/value interface implemented by every session driver.
// Get returns an empty value and no error for a missing key. An expiry of 0 means no expiry.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
}

// Data represents the session data structure.
// It only identifies the user; permissions are resolved again on every request.
type Data struct {
	UserID    uint64    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Manager reads and writes sessions of the current request.
type Manager struct {
	storage Storage
	expiry  time.Duration
	secure  bool
}

// NewManager creates a Manager. Cookies are marked secure when secure is set.
func NewManager(storage Storage, expiry time.Duration, secure bool) *Manager {
	if storage == nil {
		panic("storage is nil")
	}

	return &Manager{storage: storage, expiry: expiry, secure: secure}
}

// Storage returns the underlying session storage.
func (m *Manager) Storage() Storage {
	return m.storage
}

// Start stores data under a new session id and sets the cookie.
func (m *Manager) Start(c fiber.Ctx, data *Data) error {
	sessionID, err := GenerateSessionID()
	if err != nil {
		return fmt.Errorf("failed to generate session ID: %w", err)
	}

	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	out, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if err = m.storage.Set(sessionID, out, m.expiry); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(m.expiry.Seconds()),
		Secure:   m.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return nil
}

// Load reads the session of the request.
func (m *Manager) Load(c fiber.Ctx) (*Data, error) {
	sessionID := c.Cookies(CookieName)
	if sessionID == "" {
		return nil, ErrNoSession
	}

	raw, err := m.storage.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	if len(raw) == 0 {
		return nil, ErrNoSession
	}

	data := new(Data)
	if err = json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	if data.UserID == 0 {
		return nil, ErrNoSession
	}

	return data, nil
}

// Destroy deletes the session of the request and expires the cookie.
func (m *Manager) Destroy(c fiber.Ctx) error {
	if sessionID := c.Cookies(CookieName); sessionID != "" {
		if err := m.storage.Delete(sessionID); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}

	c.ClearCookie(CookieName)

	return nil
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
