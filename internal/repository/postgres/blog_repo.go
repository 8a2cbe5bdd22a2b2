package postgres

import (
	"context"
	"errors"

	"github.com/blogit/blogit-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *blogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

// GetActiveByID folds nonexistence and soft-deletion into a single lookup so
// callers cannot tell a deleted blog from one that never existed.
func (r *blogRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	var blog domain.Blog
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&blog, "id = ? AND is_deleted = ?", id, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) ListActive(ctx context.Context) ([]*domain.Blog, error) {
	var blogs []*domain.Blog
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) ListActiveByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Blog, error) {
	var blogs []*domain.Blog
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ? AND is_deleted = ?", authorID, false).
		Order("created_at DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&domain.Blog{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *blogRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Blog{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}
