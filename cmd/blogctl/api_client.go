package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type Author struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
}

type Blog struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Synopsis    string    `json:"synopsis"`
	Content     string    `json:"content"`
	FeaturedImg string    `json:"featuredImg"`
	AuthorID    string    `json:"authorId"`
	Author      *Author   `json:"author"`
	IsDeleted   bool      `json:"isDeleted"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type CreateBlogResponse struct {
	Message string `json:"message"`
	Blog    Blog   `json:"blog"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ProtectedResponse struct {
	Message string   `json:"message"`
	User    Identity `json:"user"`
}

// Register creates a new user account and returns the issued token.
func (c *APIClient) Register(firstName, lastName, email, username, password string) (string, error) {
	body := map[string]string{
		"firstName": firstName,
		"lastName":  lastName,
		"email":     email,
		"username":  username,
		"password":  password,
	}

	var result RegisterResponse
	if err := c.do(http.MethodPost, "/auth/register", body, "", http.StatusCreated, &result); err != nil {
		return "", err
	}
	return result.Token, nil
}

// Login exchanges credentials for a token. The identifier may be an email or
// a username.
func (c *APIClient) Login(identifier, password string) (string, error) {
	body := map[string]string{
		"identifier": identifier,
		"password":   password,
	}

	var result LoginResponse
	if err := c.do(http.MethodPost, "/auth/login", body, "", http.StatusOK, &result); err != nil {
		return "", err
	}
	return result.Token, nil
}

// Protected asks the server to confirm the token is still accepted.
func (c *APIClient) Protected(token string) (*ProtectedResponse, error) {
	var result ProtectedResponse
	if err := c.do(http.MethodGet, "/protected", nil, token, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListBlogs fetches all active blogs.
func (c *APIClient) ListBlogs() ([]Blog, error) {
	var blogs []Blog
	if err := c.do(http.MethodGet, "/api/blogs", nil, "", http.StatusOK, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// GetBlog fetches a single blog by id.
func (c *APIClient) GetBlog(id string) (*Blog, error) {
	var blog Blog
	if err := c.do(http.MethodGet, "/api/blogs/"+id, nil, "", http.StatusOK, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// MyBlogs fetches the authenticated user's active blogs.
func (c *APIClient) MyBlogs(token string) ([]Blog, error) {
	var blogs []Blog
	if err := c.do(http.MethodGet, "/api/user/blogs", nil, token, http.StatusOK, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// UserBlogs fetches one author's public blogs.
func (c *APIClient) UserBlogs(userID string) ([]Blog, error) {
	var blogs []Blog
	if err := c.do(http.MethodGet, "/blogs/user/"+userID, nil, "", http.StatusOK, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// CreateBlog publishes a new blog.
func (c *APIClient) CreateBlog(token, title, synopsis, content, featuredImg string) (*Blog, error) {
	body := map[string]string{
		"title":       title,
		"synopsis":    synopsis,
		"content":     content,
		"featuredImg": featuredImg,
	}

	var result CreateBlogResponse
	if err := c.do(http.MethodPost, "/api/blogs", body, token, http.StatusCreated, &result); err != nil {
		return nil, err
	}
	return &result.Blog, nil
}

// UpdateBlog patches the given fields; empty fields are left unchanged.
func (c *APIClient) UpdateBlog(token, id string, fields map[string]string) (*Blog, error) {
	var blog Blog
	if err := c.do(http.MethodPatch, "/api/blogs/"+id, fields, token, http.StatusOK, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// DeleteBlog soft-deletes a blog the caller owns.
func (c *APIClient) DeleteBlog(token, id string) error {
	var result MessageResponse
	return c.do(http.MethodDelete, "/api/blogs/"+id, nil, token, http.StatusOK, &result)
}

func (c *APIClient) do(method, path string, body interface{}, token string, wantStatus int, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s failed (status %d): %s", method, path, resp.StatusCode, string(bodyBytes))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
