package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/blogit/blogit-api/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	firstName string
	lastName  string
	email     string
	username  string
	password  string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		firstName: "Test",
		lastName:  "User",
		email:     fmt.Sprintf("testuser_%s@example.com", suffix),
		username:  fmt.Sprintf("testuser_%s", suffix),
		password:  "testpassword123",
	}
}

// WithName sets the first and last name
func (b *UserBuilder) WithName(first, last string) *UserBuilder {
	b.firstName = first
	b.lastName = last
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		FirstName:    b.firstName,
		LastName:     b.lastName,
		Email:        b.email,
		Username:     b.username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// RegisterResponse matches the API register response
type RegisterResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// BuildAndAuthenticate creates a user via the API and returns the user and token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"firstName": b.firstName,
		"lastName":  b.lastName,
		"email":     b.email,
		"username":  b.username,
		"password":  b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.URL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var registerResp RegisterResponse
	if err := json.NewDecoder(resp.Body).Decode(&registerResp); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}

	claims, err := ts.Services.Auth.ValidateToken(registerResp.Token)
	if err != nil {
		t.Fatalf("register returned an invalid token: %v", err)
	}
	userID, err := claims.UserID()
	if err != nil {
		t.Fatalf("register token has an invalid subject: %v", err)
	}

	var user domain.User
	if err := ts.DB.DB.First(&user, "id = ?", userID).Error; err != nil {
		t.Fatalf("failed to load registered user: %v", err)
	}

	return &user, registerResp.Token
}

// BlogBuilder creates test blogs with a builder pattern
type BlogBuilder struct {
	title       string
	synopsis    string
	content     string
	featuredImg string
	authorID    uuid.UUID
	isDeleted   bool
	createdAt   time.Time
}

// NewBlogBuilder creates a new BlogBuilder with default values
func NewBlogBuilder(authorID uuid.UUID) *BlogBuilder {
	suffix := uuid.New().String()[:8]
	return &BlogBuilder{
		title:       fmt.Sprintf("Test Blog %s", suffix),
		synopsis:    "A short synopsis",
		content:     "Some longer blog content",
		featuredImg: "https://example.com/img.png",
		authorID:    authorID,
		createdAt:   time.Now(),
	}
}

// WithTitle sets the title
func (b *BlogBuilder) WithTitle(title string) *BlogBuilder {
	b.title = title
	return b
}

// WithCreatedAt sets the creation timestamp
func (b *BlogBuilder) WithCreatedAt(createdAt time.Time) *BlogBuilder {
	b.createdAt = createdAt
	return b
}

// Deleted marks the blog as soft-deleted
func (b *BlogBuilder) Deleted() *BlogBuilder {
	b.isDeleted = true
	return b
}

// Build creates the blog in the database
func (b *BlogBuilder) Build(t *testing.T, db *gorm.DB) *domain.Blog {
	t.Helper()

	blog := &domain.Blog{
		ID:          uuid.New(),
		Title:       b.title,
		Synopsis:    b.synopsis,
		Content:     b.content,
		FeaturedImg: b.featuredImg,
		AuthorID:    b.authorID,
		IsDeleted:   b.isDeleted,
		CreatedAt:   b.createdAt,
		UpdatedAt:   b.createdAt,
	}

	if err := db.Create(blog).Error; err != nil {
		t.Fatalf("failed to create blog: %v", err)
	}

	return blog
}
