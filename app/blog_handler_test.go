package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBlogHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	token := ts.registerAndLogin(t, "testuser", "Test User", "sekret")

	testCases := []struct {
		name       string
		payload    any
		token      *string
		wantStatus int
		wantBody   envelope
	}{
		{
			name: "Valid Request",
			payload: map[string]any{
				"title":  "IT",
				"author": "Prahal",
				"likes":  100000,
			},
			token:      &token,
			wantStatus: http.StatusCreated,
		},
		{
			name: "Likes Defaults To Zero",
			payload: map[string]any{
				"title":  "Untouched",
				"author": "Prahal",
			},
			token:      &token,
			wantStatus: http.StatusCreated,
		},
		{
			name: "Missing Title",
			payload: map[string]any{
				"author": "Prahal",
			},
			token:      &token,
			wantStatus: http.StatusBadRequest,
			wantBody:   envelope{"error": map[string]string{"title": "must be provided"}},
		},
		{
			name: "Negative Likes",
			payload: map[string]any{
				"title":  "Negative",
				"author": "Prahal",
				"likes":  -1,
			},
			token:      &token,
			wantStatus: http.StatusBadRequest,
			wantBody:   envelope{"error": map[string]string{"likes": "must not be negative"}},
		},
		{
			name: "Duplicate Title",
			payload: map[string]any{
				"title":  "IT",
				"author": "Someone Else",
			},
			token:      &token,
			wantStatus: http.StatusBadRequest,
			wantBody:   envelope{"error": map[string]string{"title": "a blog with this title already exists"}},
		},
		{
			name: "No Token",
			payload: map[string]any{
				"title":  "Anonymous Post",
				"author": "Prahal",
			},
			token:      nil,
			wantStatus: http.StatusUnauthorized,
		},
	}

	var wantCount int
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, gotBody := ts.post(t, "/api/blogs", tc.payload, tc.token)
			assert.Equal(t, tc.wantStatus, status)
			if tc.wantBody != nil {
				assert.JSONEq(t, tc.wantBody.JSON(), gotBody.JSON())
			}
			if tc.wantStatus == http.StatusCreated {
				wantCount++

				blog := gotBody["blog"].(map[string]any)
				assert.Equal(t, "testuser", blog["owner"].(map[string]any)["username"])
			}

			// a rejected write must not change the blog count
			var count int
			require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM blogs").Scan(&count))
			assert.Equal(t, wantCount, count)
		})
	}
}

func TestBlogRoundTrip(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	token := ts.registerAndLogin(t, "testuser", "Test User", "sekret")

	status, _, body := ts.post(t, "/api/blogs", map[string]any{
		"title":  "IT",
		"author": "Prahal",
		"likes":  100000,
	}, &token)
	require.Equal(t, http.StatusCreated, status)

	id := int(body["blog"].(map[string]any)["id"].(float64))

	status, _, body = ts.get(t, fmt.Sprintf("/api/blogs/%d", id), nil)
	assert.Equal(t, http.StatusOK, status)

	blog := body["blog"].(map[string]any)
	assert.Equal(t, "IT", blog["title"])
	assert.Equal(t, "Prahal", blog["author"])
	assert.Equal(t, float64(100000), blog["likes"])

	status, _, body = ts.get(t, "/api/blogs", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["blogs"].([]any), 1)
}

func TestUpdateBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	ownerToken := ts.registerAndLogin(t, "owner", "Owner User", "sekret")
	otherToken := ts.registerAndLogin(t, "intruder", "Other User", "sekret")

	status, _, body := ts.post(t, "/api/blogs", map[string]any{
		"title":  "Original Title",
		"author": "Owner User",
	}, &ownerToken)
	require.Equal(t, http.StatusCreated, status)

	id := int(body["blog"].(map[string]any)["id"].(float64))
	path := fmt.Sprintf("/api/blogs/%d", id)

	t.Run("Owner Updates", func(t *testing.T) {
		status, _, body := ts.put(t, path, &ownerToken, map[string]any{"title": "New Title"})
		assert.Equal(t, http.StatusOK, status)

		blog := body["blog"].(map[string]any)
		assert.Equal(t, "New Title", blog["title"])
		assert.Equal(t, "Owner User", blog["author"])
	})

	t.Run("Non-Owner Is Rejected", func(t *testing.T) {
		status, _, _ := ts.put(t, path, &otherToken, map[string]any{"title": "Hijacked"})
		assert.Equal(t, http.StatusUnauthorized, status)

		// the title is untouched
		status, _, body := ts.get(t, path, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "New Title", body["blog"].(map[string]any)["title"])
	})

	t.Run("No Token", func(t *testing.T) {
		status, _, _ := ts.put(t, path, nil, map[string]any{"title": "Hijacked"})
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("Missing Blog", func(t *testing.T) {
		status, _, _ := ts.put(t, "/api/blogs/999999", &ownerToken, map[string]any{"title": "Nothing"})
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestDeleteBlogHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	ownerToken := ts.registerAndLogin(t, "owner", "Owner User", "sekret")
	otherToken := ts.registerAndLogin(t, "intruder", "Other User", "sekret")

	status, _, body := ts.post(t, "/api/blogs", map[string]any{
		"title":  "Doomed Blog",
		"author": "Owner User",
	}, &ownerToken)
	require.Equal(t, http.StatusCreated, status)

	id := int(body["blog"].(map[string]any)["id"].(float64))
	path := fmt.Sprintf("/api/blogs/%d", id)

	t.Run("Non-Owner Is Rejected", func(t *testing.T) {
		status, _, _ := ts.delete(t, path, &otherToken)
		assert.Equal(t, http.StatusUnauthorized, status)

		// the blog is still there
		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM blogs WHERE id = $1", id).Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("No Token", func(t *testing.T) {
		status, _, _ := ts.delete(t, path, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("Owner Deletes", func(t *testing.T) {
		status, _, body := ts.delete(t, path, &ownerToken)
		assert.Equal(t, http.StatusNoContent, status)
		assert.Nil(t, body)

		status, _, _ = ts.get(t, path, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestLikeBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	token := ts.registerAndLogin(t, "testuser", "Test User", "sekret")

	status, _, body := ts.post(t, "/api/blogs", map[string]any{
		"title":  "Likeable",
		"author": "Test User",
	}, &token)
	require.Equal(t, http.StatusCreated, status)

	id := int(body["blog"].(map[string]any)["id"].(float64))

	// anyone can like, no token needed
	for want := 1; want <= 3; want++ {
		status, _, body := ts.post(t, fmt.Sprintf("/api/blogs/%d/like", id), map[string]any{}, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(want), body["likes"])
	}

	status, _, _ = ts.post(t, "/api/blogs/999999/like", map[string]any{}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAddCommentHandler(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	token := ts.registerAndLogin(t, "testuser", "Test User", "sekret")

	status, _, body := ts.post(t, "/api/blogs", map[string]any{
		"title":  "Discussed",
		"author": "Test User",
	}, &token)
	require.Equal(t, http.StatusCreated, status)

	id := int(body["blog"].(map[string]any)["id"].(float64))
	path := fmt.Sprintf("/api/blogs/%d/comments", id)

	// anyone can comment, no token needed
	status, _, body = ts.post(t, path, map[string]any{"comment": "first!"}, nil)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, []any{"first!"}, body["comments"])

	status, _, body = ts.post(t, path, map[string]any{"comment": "second"}, nil)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, []any{"first!", "second"}, body["comments"])

	status, _, _ = ts.post(t, path, map[string]any{"comment": ""}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestBlogStatsHandler(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	token := ts.registerAndLogin(t, "testuser", "Test User", "sekret")

	seed := []struct {
		title  string
		author string
		likes  int
	}{
		{"React patterns", "Michael Chan", 7},
		{"Go To Statement Considered Harmful", "Edsger W. Dijkstra", 5},
		{"Canonical string reduction", "Edsger W. Dijkstra", 12},
	}

	for _, b := range seed {
		status, _, _ := ts.post(t, "/api/blogs", map[string]any{
			"title":  b.title,
			"author": b.author,
			"likes":  b.likes,
		}, &token)
		require.Equal(t, http.StatusCreated, status)
	}

	status, _, body := ts.get(t, "/api/blogs/stats", nil)
	assert.Equal(t, http.StatusOK, status)

	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(24), stats["total_likes"])

	favorite := stats["favorite_blog"].(map[string]any)
	assert.Equal(t, "Canonical string reduction", favorite["title"])
	assert.Equal(t, float64(12), favorite["likes"])

	mostBlogs := stats["most_blogs"].(map[string]any)
	assert.Equal(t, "Edsger W. Dijkstra", mostBlogs["author"])
	assert.Equal(t, float64(2), mostBlogs["blogs"])

	mostLikes := stats["most_likes"].(map[string]any)
	assert.Equal(t, "Edsger W. Dijkstra", mostLikes["author"])
	assert.Equal(t, float64(17), mostLikes["likes"])
}
