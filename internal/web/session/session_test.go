package session_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbac-admin/rbac-admin/internal/config"
	"github.com/rbac-admin/rbac-admin/internal/web/session"
)

func TestGenerateSessionID(t *testing.T) {
	a, err := session.GenerateSessionID()
	require.NoError(t, err)

	b, err := session.GenerateSessionID()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

// storageContract runs the behaviour every driver shares.
func storageContract(t *testing.T, s session.Storage) {
	t.Helper()

	got, err := s.Get("missing")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Set("k", []byte("v1"), time.Minute))

	got, err = s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, s.Set("k", []byte("v2"), 0))

	got, err = s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, s.Delete("k"))
	require.NoError(t, s.Delete("k"), "deleting a missing key is not an error")

	got, err = s.Get("k")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStorage(t *testing.T) {
	storageContract(t, session.NewMemoryStorage())
}

func TestMemoryStorageCopiesValues(t *testing.T) {
	s := session.NewMemoryStorage()
	val := []byte("abc")

	require.NoError(t, s.Set("k", val, 0))
	val[0] = 'x'

	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestRedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s := session.NewRedisStorage(client, time.Second)
	t.Cleanup(func() { _ = s.Close() })

	storageContract(t, s)

	require.NoError(t, s.Set("ttl", []byte("v"), time.Minute))
	assert.True(t, mr.Exists("session:ttl"))

	mr.FastForward(2 * time.Minute)

	got, err := s.Get("ttl")
	require.NoError(t, err)
	assert.Empty(t, got, "expired in redis")
}

func TestNewStorage(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := session.NewStorage(&config.Config{})
	require.NoError(t, err)
	assert.IsType(t, &session.MemoryStorage{}, s)

	s, err = session.NewStorage(&config.Config{Webserver: config.Webserver{
		Session: config.Session{Driver: config.SessionRedis, RedisAddr: mr.Addr()},
	}})
	require.NoError(t, err)
	assert.IsType(t, &session.RedisStorage{}, s)

	_, err = session.NewStorage(&config.Config{Webserver: config.Webserver{
		Session: config.Session{Driver: "etcd"},
	}})
	require.ErrorIs(t, err, config.ErrUnknownSessionDriver)
}

func TestManagerLifecycle(t *testing.T) {
	m := session.NewManager(session.NewMemoryStorage(), time.Hour, false)

	app := fiber.New()
	app.Post("/start", func(c fiber.Ctx) error {
		return m.Start(c, &session.Data{UserID: 7, Name: "Ada", Email: "ada@example.com"})
	})
	app.Get("/load", func(c fiber.Ctx) error {
		data, err := m.Load(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).SendString(err.Error())
		}

		return c.JSON(data)
	})
	app.Post("/destroy", func(c fiber.Ctx) error {
		return m.Destroy(c)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/start", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}

	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	load := func(c *http.Cookie) *http.Response {
		req := httptest.NewRequest(fiber.MethodGet, "/load", nil)
		if c != nil {
			req.AddCookie(c)
		}

		resp, err := app.Test(req)
		require.NoError(t, err)

		return resp
	}

	resp = load(cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := new(strings.Builder)
	_, err = io.Copy(body, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), `"user_id":7`)

	assert.Equal(t, fiber.StatusUnauthorized, load(nil).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, load(&http.Cookie{Name: session.CookieName, Value: "forged"}).StatusCode)

	req := httptest.NewRequest(fiber.MethodPost, "/destroy", nil)
	req.AddCookie(cookie)

	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, fiber.StatusUnauthorized, load(cookie).StatusCode)
}
