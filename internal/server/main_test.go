package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps the in-memory database alive and serializes writers.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Port:      "8000",
		JWTSecret: "test-secret",
		Env:       "test",
	}
	s := NewServerWithDeps(cfg, db, nil)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	return body
}

// signupUser registers a user through the API and returns its id and token.
func signupUser(t *testing.T, app *fiber.App, email string) (uint, string) {
	t.Helper()
	req := jsonRequest(http.MethodPost, "/auth/signup", map[string]string{
		"first_name": "Test",
		"last_name":  "Author",
		"email":      email,
		"password":   "long enough password",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	id, _ := user["id"].(float64)
	require.NotZero(t, id)
	return uint(id), token
}

// createBlog creates a blog through the API as the given token's user.
func createBlog(t *testing.T, app *fiber.App, token, title string) uint {
	t.Helper()
	req := jsonRequest(http.MethodPost, "/blogs", map[string]string{
		"title": title,
		"tags":  "testing",
		"body":  "some words to read",
	})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	blog, _ := body["blog"].(map[string]any)
	require.NotNil(t, blog)
	id, _ := blog["id"].(float64)
	require.NotZero(t, id)
	return uint(id)
}

func publishBlog(t *testing.T, app *fiber.App, token string, id uint) {
	t.Helper()
	req := jsonRequest(http.MethodPut, fmt.Sprintf("/blogs/%d", id), map[string]string{
		"state": "published",
	})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}
