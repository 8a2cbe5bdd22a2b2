package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/blogit/blogit-api/internal/domain"
	"github.com/blogit/blogit-api/internal/repository/postgres"
	"github.com/blogit/blogit-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogRepository_GetActiveByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewBlogRepository(testDB.DB)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	active := testutil.NewBlogBuilder(author.ID).WithTitle("active post").Build(t, testDB.DB)
	deleted := testutil.NewBlogBuilder(author.ID).Deleted().Build(t, testDB.DB)

	tests := []struct {
		name    string
		id      uuid.UUID
		wantErr error
	}{
		{
			name: "active blog",
			id:   active.ID,
		},
		{
			name:    "soft-deleted blog looks absent",
			id:      deleted.ID,
			wantErr: domain.ErrBlogNotFound,
		},
		{
			name:    "non-existent blog",
			id:      uuid.New(),
			wantErr: domain.ErrBlogNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetActiveByID(ctx, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, active.ID, got.ID)
			assert.Equal(t, "active post", got.Title)
			require.NotNil(t, got.Author, "author should be preloaded")
			assert.Equal(t, author.Username, got.Author.Username)
		})
	}
}

func TestBlogRepository_ListActive(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewBlogRepository(testDB.DB)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	older := testutil.NewBlogBuilder(author.ID).
		WithTitle("older").
		WithCreatedAt(time.Now().Add(-2 * time.Hour)).
		Build(t, testDB.DB)
	newer := testutil.NewBlogBuilder(author.ID).
		WithTitle("newer").
		WithCreatedAt(time.Now().Add(-1 * time.Hour)).
		Build(t, testDB.DB)
	testutil.NewBlogBuilder(author.ID).Deleted().Build(t, testDB.DB)

	blogs, err := repo.ListActive(ctx)
	require.NoError(t, err)

	require.Len(t, blogs, 2, "deleted blogs must be filtered out")
	assert.Equal(t, newer.ID, blogs[0].ID, "newest first")
	assert.Equal(t, older.ID, blogs[1].ID)
	require.NotNil(t, blogs[0].Author, "author should be preloaded")
	assert.Equal(t, author.Username, blogs[0].Author.Username)
}

func TestBlogRepository_ListActiveByAuthor(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewBlogRepository(testDB.DB)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	mine := testutil.NewBlogBuilder(author.ID).Build(t, testDB.DB)
	testutil.NewBlogBuilder(author.ID).Deleted().Build(t, testDB.DB)
	testutil.NewBlogBuilder(other.ID).Build(t, testDB.DB)

	blogs, err := repo.ListActiveByAuthor(ctx, author.ID)
	require.NoError(t, err)

	require.Len(t, blogs, 1)
	assert.Equal(t, mine.ID, blogs[0].ID)
}

func TestBlogRepository_UpdateFields(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewBlogRepository(testDB.DB)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	blog := testutil.NewBlogBuilder(author.ID).WithTitle("before").Build(t, testDB.DB)

	err := repo.UpdateFields(ctx, blog.ID, map[string]interface{}{
		"title": "after",
	})
	require.NoError(t, err)

	got, err := repo.GetActiveByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, blog.Synopsis, got.Synopsis, "untouched fields keep prior values")
	assert.Equal(t, blog.Content, got.Content)
}

func TestBlogRepository_SoftDelete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewBlogRepository(testDB.DB)
	ctx := context.Background()

	author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	blog := testutil.NewBlogBuilder(author.ID).Build(t, testDB.DB)

	require.NoError(t, repo.SoftDelete(ctx, blog.ID))

	_, err := repo.GetActiveByID(ctx, blog.ID)
	assert.ErrorIs(t, err, domain.ErrBlogNotFound)

	// The row itself survives; only the flag flips.
	var raw domain.Blog
	require.NoError(t, testDB.DB.First(&raw, "id = ?", blog.ID).Error)
	assert.True(t, raw.IsDeleted)
}
