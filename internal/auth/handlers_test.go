package auth

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"campus-backend/internal/middleware"
	"campus-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserFinder struct {
	user *models.User
	err  error
}

func (f *fakeUserFinder) FindByEmailAndPassword(email, password string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func setupAuthApp(t *testing.T, finder UserFinder) (*fiber.App, *redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	cfg := middleware.SessionConfig{Secret: "test-secret"}
	h := &Handlers{UserFinder: finder, Rdb: rdb, Config: cfg}

	app := fiber.New()
	app.Use(middleware.SessionWithClient(cfg, rdb))
	app.Post("/auth/login", h.Login)
	app.Get("/auth/me", h.Me)
	app.Delete("/auth/logout", h.Logout)
	return app, rdb, mr
}

func TestLogin_MissingCredentials(t *testing.T) {
	app, _, _ := setupAuthApp(t, &fakeUserFinder{err: ErrEmailPasswordRequired})

	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"","password":""}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin_InvalidEmail(t *testing.T) {
	app, _, _ := setupAuthApp(t, &fakeUserFinder{err: ErrInvalidEmail})

	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"nobody@campus.edu","password":"Secret#123"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_IncorrectPassword(t *testing.T) {
	app, _, _ := setupAuthApp(t, &fakeUserFinder{err: ErrIncorrectPassword})

	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"hr@campus.edu","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_Success(t *testing.T) {
	user := &models.User{
		UserID:   uuid.New(),
		Fullname: "HR Admin",
		Email:    "hr@campus.edu",
		Role:     "hr",
	}
	app, rdb, _ := setupAuthApp(t, &fakeUserFinder{user: user})

	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"hr@campus.edu","password":"Secret#123"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "success", out["status"])
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "hr@campus.edu", data["user"].(map[string]interface{})["email"])

	// Session cookie set and session tracked in user_sessions set
	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == "campus.sid" {
			cookie = c.Value
		}
	}
	require.NotEmpty(t, cookie)
	require.True(t, strings.HasPrefix(cookie, "s:"))

	members, err := rdb.SMembers(req.Context(), "user_sessions:"+user.UserID.String()).Result()
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestMe_NotAuthenticated(t *testing.T) {
	app, _, _ := setupAuthApp(t, &fakeUserFinder{})

	resp, err := app.Test(httptest.NewRequest("GET", "/auth/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMe_WithSession(t *testing.T) {
	user := &models.User{UserID: uuid.New(), Fullname: "HR Admin", Email: "hr@campus.edu", Role: "hr"}
	app, _, _ := setupAuthApp(t, &fakeUserFinder{user: user})

	loginReq := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"hr@campus.edu","password":"Secret#123"}`))
	loginReq.Header.Set("Content-Type", "application/json")
	loginResp, err := app.Test(loginReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, loginResp.StatusCode)

	var cookie string
	for _, c := range loginResp.Cookies() {
		if c.Name == "campus.sid" {
			cookie = c.Value
		}
	}
	require.NotEmpty(t, cookie)

	meReq := httptest.NewRequest("GET", "/auth/me", nil)
	meReq.Header.Set("Cookie", "campus.sid="+cookie)
	meResp, err := app.Test(meReq)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, meResp.StatusCode)

	body, _ := io.ReadAll(meResp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	me := out["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, user.UserID.String(), me["user_id"])
	assert.Equal(t, "hr", me["role"])
}

func TestLogout_ClearsSession(t *testing.T) {
	user := &models.User{UserID: uuid.New(), Fullname: "HR Admin", Email: "hr@campus.edu", Role: "hr"}
	app, rdb, _ := setupAuthApp(t, &fakeUserFinder{user: user})

	loginReq := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"hr@campus.edu","password":"Secret#123"}`))
	loginReq.Header.Set("Content-Type", "application/json")
	loginResp, err := app.Test(loginReq)
	require.NoError(t, err)

	var cookie string
	for _, c := range loginResp.Cookies() {
		if c.Name == "campus.sid" {
			cookie = c.Value
		}
	}
	require.NotEmpty(t, cookie)

	outReq := httptest.NewRequest("DELETE", "/auth/logout", nil)
	outReq.Header.Set("Cookie", "campus.sid="+cookie)
	outResp, err := app.Test(outReq)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, outResp.StatusCode)

	members, err := rdb.SMembers(outReq.Context(), "user_sessions:"+user.UserID.String()).Result()
	require.NoError(t, err)
	assert.Empty(t, members)
}
