package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/blogit/blogit-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blogResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Synopsis    string `json:"synopsis"`
	Content     string `json:"content"`
	FeaturedImg string `json:"featuredImg"`
	AuthorID    string `json:"authorId"`
	Author      *struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Username  string `json:"username"`
	} `json:"author"`
	IsDeleted bool `json:"isDeleted"`
}

type createBlogResponse struct {
	Message string       `json:"message"`
	Blog    blogResponse `json:"blog"`
}

// doJSON sends a JSON request with an optional bearer token.
func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestBlogHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	fullRequest := map[string]string{
		"title":       "My first post",
		"synopsis":    "A synopsis",
		"content":     "The body of the post",
		"featuredImg": "https://example.com/cover.png",
	}

	tests := []struct {
		name           string
		request        map[string]string
		token          string
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name:           "successful creation",
			request:        fullRequest,
			token:          token,
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result createBlogResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "Blog created successfully", result.Message)
				assert.Equal(t, "My first post", result.Blog.Title)
				assert.Equal(t, user.ID.String(), result.Blog.AuthorID)
				assert.False(t, result.Blog.IsDeleted)
				assert.NotEmpty(t, result.Blog.ID)
			},
		},
		{
			name: "missing fields",
			request: map[string]string{
				"title": "Only a title",
			},
			token:          token,
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp *http.Response) {
				testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "required")
			},
		},
		{
			name:           "no token",
			request:        fullRequest,
			token:          "",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, ts.URL("/api/blogs"), tt.token, tt.request)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestBlogHandler_ListAndGet(t *testing.T) {
	ts := testutil.NewTestServer(t)

	author, _ := testutil.NewUserBuilder().
		WithName("Jane", "Writer").
		WithUsername("janewriter").
		Build(t, ts.DB.DB)

	active := testutil.NewBlogBuilder(author.ID).WithTitle("public post").Build(t, ts.DB.DB)
	deleted := testutil.NewBlogBuilder(author.ID).Deleted().Build(t, ts.DB.DB)

	t.Run("list returns active posts with author projection", func(t *testing.T) {
		resp, err := http.Get(ts.URL("/api/blogs"))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var blogs []blogResponse
		testutil.AssertJSONResponse(t, resp, &blogs)
		require.Len(t, blogs, 1)
		assert.Equal(t, active.ID.String(), blogs[0].ID)
		require.NotNil(t, blogs[0].Author)
		assert.Equal(t, "Jane", blogs[0].Author.FirstName)
		assert.Equal(t, "janewriter", blogs[0].Author.Username)
	})

	t.Run("get by id returns the post", func(t *testing.T) {
		resp, err := http.Get(ts.URL("/api/blogs/" + active.ID.String()))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var blog blogResponse
		testutil.AssertJSONResponse(t, resp, &blog)
		assert.Equal(t, active.Title, blog.Title)
		require.NotNil(t, blog.Author)
		assert.Equal(t, "janewriter", blog.Author.Username)
	})

	t.Run("soft-deleted post reads as 404", func(t *testing.T) {
		resp, err := http.Get(ts.URL("/api/blogs/" + deleted.ID.String()))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Blog not found")
	})

	t.Run("unknown id reads as 404", func(t *testing.T) {
		resp, err := http.Get(ts.URL("/api/blogs/00000000-0000-0000-0000-000000000000"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Blog not found")
	})
}

func TestBlogHandler_OwnershipCollapse(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, _ := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, strangerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	blog := testutil.NewBlogBuilder(owner.ID).Build(t, ts.DB.DB)

	readBody := func(t *testing.T, resp *http.Response) string {
		t.Helper()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(body)
	}

	t.Run("patching someone else's post matches a nonexistent id exactly", func(t *testing.T) {
		patch := map[string]string{"title": "hijacked"}

		respOther := doJSON(t, http.MethodPatch, ts.URL("/api/blogs/"+blog.ID.String()), strangerToken, patch)
		defer respOther.Body.Close()
		respMissing := doJSON(t, http.MethodPatch, ts.URL("/api/blogs/00000000-0000-0000-0000-000000000000"), strangerToken, patch)
		defer respMissing.Body.Close()

		assert.Equal(t, http.StatusNotFound, respOther.StatusCode)
		assert.Equal(t, http.StatusNotFound, respMissing.StatusCode)
		assert.Equal(t, readBody(t, respMissing), readBody(t, respOther),
			"not-yours and not-there must be indistinguishable")
	})

	t.Run("deleting someone else's post matches a nonexistent id exactly", func(t *testing.T) {
		respOther := doJSON(t, http.MethodDelete, ts.URL("/api/blogs/"+blog.ID.String()), strangerToken, nil)
		defer respOther.Body.Close()
		respMissing := doJSON(t, http.MethodDelete, ts.URL("/api/blogs/00000000-0000-0000-0000-000000000000"), strangerToken, nil)
		defer respMissing.Body.Close()

		assert.Equal(t, http.StatusNotFound, respOther.StatusCode)
		assert.Equal(t, http.StatusNotFound, respMissing.StatusCode)
		assert.Equal(t, readBody(t, respMissing), readBody(t, respOther))
	})

	t.Run("the post is untouched afterwards", func(t *testing.T) {
		resp, err := http.Get(ts.URL("/api/blogs/" + blog.ID.String()))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got blogResponse
		testutil.AssertJSONResponse(t, resp, &got)
		assert.Equal(t, blog.Title, got.Title)
	})
}

func TestBlogHandler_UserBlogs(t *testing.T) {
	ts := testutil.NewTestServer(t)

	author, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	other, _ := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	mine := testutil.NewBlogBuilder(author.ID).Build(t, ts.DB.DB)
	testutil.NewBlogBuilder(author.ID).Deleted().Build(t, ts.DB.DB)
	testutil.NewBlogBuilder(other.ID).Build(t, ts.DB.DB)

	t.Run("authenticated user sees only their active posts", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.URL("/api/user/blogs"), token, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var blogs []blogResponse
		testutil.AssertJSONResponse(t, resp, &blogs)
		require.Len(t, blogs, 1)
		assert.Equal(t, mine.ID.String(), blogs[0].ID)
	})

	t.Run("requires a token", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.URL("/api/user/blogs"), "", nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("public author view applies the same active filter", func(t *testing.T) {
		resp, err := http.Get(ts.URL("/blogs/user/" + author.ID.String()))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var blogs []blogResponse
		testutil.AssertJSONResponse(t, resp, &blogs)
		require.Len(t, blogs, 1)
		assert.Equal(t, mine.ID.String(), blogs[0].ID)
	})
}

// TestBlogLifecycle walks the whole content lifecycle through the HTTP API:
// register, login, create, read, partial update, soft-delete, read again.
func TestBlogLifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)

	// Register
	registerBody := map[string]string{
		"firstName": "Lifecycle",
		"lastName":  "Tester",
		"email":     "lifecycle@example.com",
		"username":  "lifecycle",
		"password":  "password123",
	}
	resp := doJSON(t, http.MethodPost, ts.URL("/auth/register"), "", registerBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Login
	resp = doJSON(t, http.MethodPost, ts.URL("/auth/login"), "", map[string]string{
		"identifier": "lifecycle@example.com",
		"password":   "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp struct {
		Token string `json:"token"`
	}
	testutil.AssertJSONResponse(t, resp, &loginResp)
	resp.Body.Close()
	token := loginResp.Token
	require.NotEmpty(t, token)

	// Create
	resp = doJSON(t, http.MethodPost, ts.URL("/api/blogs"), token, map[string]string{
		"title":       "T",
		"synopsis":    "S",
		"content":     "C",
		"featuredImg": "https://x/y.png",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created createBlogResponse
	testutil.AssertJSONResponse(t, resp, &created)
	resp.Body.Close()
	blogID := created.Blog.ID
	require.NotEmpty(t, blogID)

	// Read back anonymously
	getResp, err := http.Get(ts.URL("/api/blogs/" + blogID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var fetched blogResponse
	testutil.AssertJSONResponse(t, getResp, &fetched)
	getResp.Body.Close()
	assert.Equal(t, "T", fetched.Title)
	assert.Equal(t, "S", fetched.Synopsis)
	assert.Equal(t, "C", fetched.Content)
	assert.Equal(t, "https://x/y.png", fetched.FeaturedImg)

	// Patch only the title
	resp = doJSON(t, http.MethodPatch, ts.URL("/api/blogs/"+blogID), token, map[string]string{
		"title": "T2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated blogResponse
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, "S", updated.Synopsis)
	assert.Equal(t, "C", updated.Content)
	assert.Equal(t, "https://x/y.png", updated.FeaturedImg)

	// Soft-delete
	resp = doJSON(t, http.MethodDelete, ts.URL("/api/blogs/"+blogID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Gone from the read path
	getResp, err = http.Get(ts.URL("/api/blogs/" + blogID))
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)

	// And gone from the listing
	listResp, err := http.Get(ts.URL("/api/blogs"))
	require.NoError(t, err)
	defer listResp.Body.Close()
	var blogs []blogResponse
	testutil.AssertJSONResponse(t, listResp, &blogs)
	for _, b := range blogs {
		assert.NotEqual(t, blogID, b.ID)
	}
}
