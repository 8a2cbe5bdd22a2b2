package service

import (
	"context"
	"strings"
	"time"

	"github.com/blogit/blogit-api/internal/domain"
	"github.com/blogit/blogit-api/internal/repository"
	"github.com/google/uuid"
)

// MissingFieldsError reports which required blog fields were empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

type BlogService struct {
	blogRepo repository.BlogRepository
}

func NewBlogService(blogRepo repository.BlogRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo}
}

type CreateBlogInput struct {
	Title       string
	Synopsis    string
	Content     string
	FeaturedImg string
}

// UpdateBlogInput supports partial updates: nil fields keep their prior values.
type UpdateBlogInput struct {
	Title       *string
	Synopsis    *string
	Content     *string
	FeaturedImg *string
}

func (s *BlogService) Create(ctx context.Context, authorID uuid.UUID, input CreateBlogInput) (*domain.Blog, error) {
	var missing []string
	if input.Title == "" {
		missing = append(missing, "title")
	}
	if input.Synopsis == "" {
		missing = append(missing, "synopsis")
	}
	if input.Content == "" {
		missing = append(missing, "content")
	}
	if input.FeaturedImg == "" {
		missing = append(missing, "featuredImg")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	blog := &domain.Blog{
		ID:          uuid.New(),
		Title:       input.Title,
		Synopsis:    input.Synopsis,
		Content:     input.Content,
		FeaturedImg: input.FeaturedImg,
		AuthorID:    authorID,
		IsDeleted:   false,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}

	return blog, nil
}

func (s *BlogService) ListActive(ctx context.Context) ([]*domain.Blog, error) {
	return s.blogRepo.ListActive(ctx)
}

func (s *BlogService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Blog, error) {
	return s.blogRepo.ListActiveByAuthor(ctx, authorID)
}

func (s *BlogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	return s.blogRepo.GetActiveByID(ctx, id)
}

// loadOwned runs the existence check (which folds in soft-deletion) before
// the ownership check. The ordering matters: a caller probing someone else's
// blog gets the same not-found shape as a nonexistent id.
func (s *BlogService) loadOwned(ctx context.Context, userID, blogID uuid.UUID) (*domain.Blog, error) {
	blog, err := s.blogRepo.GetActiveByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != userID {
		return nil, domain.ErrNotBlogOwner
	}
	return blog, nil
}

func (s *BlogService) Update(ctx context.Context, userID, blogID uuid.UUID, input UpdateBlogInput) (*domain.Blog, error) {
	blog, err := s.loadOwned(ctx, userID, blogID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
		blog.Title = *input.Title
	}
	if input.Synopsis != nil {
		fields["synopsis"] = *input.Synopsis
		blog.Synopsis = *input.Synopsis
	}
	if input.Content != nil {
		fields["content"] = *input.Content
		blog.Content = *input.Content
	}
	if input.FeaturedImg != nil {
		fields["featured_img"] = *input.FeaturedImg
		blog.FeaturedImg = *input.FeaturedImg
	}
	if len(fields) == 0 {
		return blog, nil
	}
	fields["updated_at"] = time.Now()

	if err := s.blogRepo.UpdateFields(ctx, blogID, fields); err != nil {
		return nil, err
	}

	return blog, nil
}

// SoftDelete is single-shot: once a blog is deleted the existence check no
// longer sees it, so a repeat call reports not found.
func (s *BlogService) SoftDelete(ctx context.Context, userID, blogID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, blogID); err != nil {
		return err
	}
	return s.blogRepo.SoftDelete(ctx, blogID)
}
