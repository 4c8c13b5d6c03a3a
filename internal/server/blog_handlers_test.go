package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listTitles(t *testing.T, app *fiber.App, target string, token string) []string {
	t.Helper()
	req := jsonRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	raw, _ := body["blogs"].([]any)
	titles := make([]string, 0, len(raw))
	for _, b := range raw {
		blog := b.(map[string]any)
		titles = append(titles, blog["title"].(string))
	}
	return titles
}

func TestBlogLifecycle(t *testing.T) {
	_, app := newTestServer(t)
	_, authorToken := signupUser(t, app, "author@example.com")
	_, otherToken := signupUser(t, app, "other@example.com")

	blogID := createBlog(t, app, authorToken, "My First Post")

	t.Run("new blog starts as a draft with a reading time", func(t *testing.T) {
		req := jsonRequest(http.MethodGet, "/blogs/my-blogs", nil)
		req.Header.Set("Authorization", "Bearer "+authorToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		blogs := body["blogs"].([]any)
		require.Len(t, blogs, 1)
		blog := blogs[0].(map[string]any)
		assert.Equal(t, "draft", blog["state"])
		assert.EqualValues(t, 1, blog["reading_time"])
		assert.EqualValues(t, 0, blog["read_count"])
	})

	t.Run("draft is hidden from the public listing", func(t *testing.T) {
		assert.Empty(t, listTitles(t, app, "/blogs/", ""))
	})

	t.Run("drafts stay hidden from other signed-in users", func(t *testing.T) {
		req := jsonRequest(http.MethodGet, "/blogs/my-blogs", nil)
		req.Header.Set("Authorization", "Bearer "+otherToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Empty(t, body["blogs"])
	})

	t.Run("non-owner cannot edit", func(t *testing.T) {
		req := jsonRequest(http.MethodPut, fmt.Sprintf("/blogs/%d", blogID), map[string]string{
			"title": "Hijacked",
		})
		req.Header.Set("Authorization", "Bearer "+otherToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("owner publishes", func(t *testing.T) {
		publishBlog(t, app, authorToken, blogID)
		assert.Equal(t, []string{"My First Post"}, listTitles(t, app, "/blogs/", ""))
	})

	t.Run("each public fetch counts a read", func(t *testing.T) {
		for i := 1; i <= 2; i++ {
			resp, err := app.Test(jsonRequest(http.MethodGet, fmt.Sprintf("/blogs/%d", blogID), nil))
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			body := decodeBody(t, resp)
			blog := body["blog"].(map[string]any)
			assert.EqualValues(t, i, blog["read_count"])
			author := blog["author"].(map[string]any)
			assert.Equal(t, "author@example.com", author["email"])
		}
	})

	t.Run("duplicate title is rejected", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/blogs", map[string]string{
			"title": "My First Post",
			"body":  "different body",
		})
		req.Header.Set("Authorization", "Bearer "+otherToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "DUPLICATE", body["code"])
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		req := jsonRequest(http.MethodDelete, fmt.Sprintf("/blogs/%d", blogID), nil)
		req.Header.Set("Authorization", "Bearer "+otherToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("owner deletes", func(t *testing.T) {
		req := jsonRequest(http.MethodDelete, fmt.Sprintf("/blogs/%d", blogID), nil)
		req.Header.Set("Authorization", "Bearer "+authorToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Blog deleted successfully", body["message"])
	})

	t.Run("deleted blog answers 404", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, fmt.Sprintf("/blogs/%d", blogID), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestBlogListingQueries(t *testing.T) {
	_, app := newTestServer(t)
	authorID, authorToken := signupUser(t, app, "author@example.com")
	otherID, otherToken := signupUser(t, app, "other@example.com")

	for token, titles := range map[string][]string{
		authorToken: {"Alpha", "Beta"},
		otherToken:  {"Gamma"},
	} {
		for _, title := range titles {
			id := createBlog(t, app, token, title)
			publishBlog(t, app, token, id)
		}
	}

	t.Run("filter by author", func(t *testing.T) {
		titles := listTitles(t, app, fmt.Sprintf("/blogs/?author=%d&order_by=title", authorID), "")
		assert.Equal(t, []string{"Alpha", "Beta"}, titles)

		titles = listTitles(t, app, fmt.Sprintf("/blogs/?author=%d", otherID), "")
		assert.Equal(t, []string{"Gamma"}, titles)
	})

	t.Run("filter by exact title", func(t *testing.T) {
		titles := listTitles(t, app, "/blogs/?title=Beta", "")
		assert.Equal(t, []string{"Beta"}, titles)
	})

	t.Run("pagination", func(t *testing.T) {
		titles := listTitles(t, app, "/blogs/?order_by=title&limit=2&page=1", "")
		assert.Equal(t, []string{"Alpha", "Beta"}, titles)

		titles = listTitles(t, app, "/blogs/?order_by=title&limit=2&page=2", "")
		assert.Equal(t, []string{"Gamma"}, titles)
	})

	t.Run("invalid state filter rejected", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/blogs/?state=archived", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("invalid id answers 400", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/blogs/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})
}
