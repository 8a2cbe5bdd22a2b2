package repository

import (
	"context"

	"github.com/blogit/blogit-api/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetByIdentifier matches the identifier against email OR username.
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}

type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) error
	// GetActiveByID returns only non-deleted blogs; a soft-deleted blog is
	// indistinguishable from an absent one.
	GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error)
	ListActive(ctx context.Context) ([]*domain.Blog, error)
	ListActiveByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Blog, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	User UserRepository
	Blog BlogRepository
}
