package repository

import (
	"context"
	"testing"
	"time"

	"glimpse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPost(t *testing.T, repo PostRepository, authorID uint, username string, at time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:      authorID,
		Username:    username,
		Description: "a post",
		FileLink:    "https://cdn.example.com/v.mp4",
		FileType:    "video",
		CreatedAt:   at,
	}
	require.NoError(t, repo.Create(context.Background(), post))
	return post
}

func TestPostRepository_CreateAndGet(t *testing.T) {
	repo := NewPostRepository(setupTestDB(t))
	ctx := context.Background()

	created := newTestPost(t, repo, 1, "ada", time.Now())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Username)
	assert.Empty(t, got.Likes)
}

func TestPostRepository_GetByIDNotFound(t *testing.T) {
	repo := NewPostRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), 999)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostRepository_ListNewestFirst(t *testing.T) {
	repo := NewPostRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p1 := newTestPost(t, repo, 1, "ada", base)
	p2 := newTestPost(t, repo, 1, "ada", base.Add(time.Hour))

	posts, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, p2.ID, posts[0].ID)
	assert.Equal(t, p1.ID, posts[1].ID)
}

func TestPostRepository_ListIDsByAuthors(t *testing.T) {
	repo := NewPostRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p1 := newTestPost(t, repo, 1, "ada", base)
	p2 := newTestPost(t, repo, 1, "ada", base.Add(time.Hour))
	p3 := newTestPost(t, repo, 2, "grace", base)

	refs, err := repo.ListIDsByAuthors(ctx, []uint{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []uint{p2.ID, p1.ID}, refs[1], "newest first per author")
	assert.Equal(t, []uint{p3.ID}, refs[2])
	_, ok := refs[3]
	assert.False(t, ok, "authors with no posts are absent")
}

func TestPostRepository_Likes(t *testing.T) {
	repo := NewPostRepository(setupTestDB(t))
	ctx := context.Background()

	post := newTestPost(t, repo, 1, "ada", time.Now())

	require.NoError(t, repo.AddLike(ctx, &models.Like{PostID: post.ID, UserID: 2}))

	err := repo.AddLike(ctx, &models.Like{PostID: post.ID, UserID: 2})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Likes, 1)
	assert.Equal(t, uint(2), got.Likes[0].UserID)

	require.NoError(t, repo.RemoveLike(ctx, post.ID, 2))

	err = repo.RemoveLike(ctx, post.ID, 2)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestPostRepository_SavesAndListSavedByUser(t *testing.T) {
	repo := NewPostRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p1 := newTestPost(t, repo, 1, "ada", base)
	p2 := newTestPost(t, repo, 1, "ada", base.Add(time.Hour))

	require.NoError(t, repo.AddSave(ctx, &models.SavedPost{PostID: p1.ID, UserID: 5}))
	require.NoError(t, repo.AddSave(ctx, &models.SavedPost{PostID: p2.ID, UserID: 5}))
	require.NoError(t, repo.AddSave(ctx, &models.SavedPost{PostID: p1.ID, UserID: 6}))

	saved, err := repo.ListSavedByUser(ctx, 5)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, p2.ID, saved[0].ID, "newest first")

	require.NoError(t, repo.RemoveSave(ctx, p2.ID, 5))
	saved, err = repo.ListSavedByUser(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, saved, 1)

	// Deleting a post clears every user's save of it.
	require.NoError(t, repo.RemoveSavesForPost(ctx, p1.ID))
	saved, err = repo.ListSavedByUser(ctx, 6)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestPostRepository_Comments(t *testing.T) {
	repo := NewPostRepository(setupTestDB(t))
	ctx := context.Background()

	post := newTestPost(t, repo, 1, "ada", time.Now())

	comment := &models.Comment{PostID: post.ID, UserID: 2, Username: "grace", Text: "nice"}
	require.NoError(t, repo.AddComment(ctx, comment))
	require.NotZero(t, comment.ID)

	got, err := repo.GetComment(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "nice", got.Text)

	require.NoError(t, repo.DeleteComment(ctx, comment.ID))
	_, err = repo.GetComment(ctx, comment.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostRepository_UpdateAuthorSnapshot(t *testing.T) {
	repo := NewPostRepository(setupTestDB(t))
	ctx := context.Background()

	p1 := newTestPost(t, repo, 1, "ada", time.Now())
	p2 := newTestPost(t, repo, 2, "grace", time.Now())

	require.NoError(t, repo.UpdateAuthorSnapshot(ctx, 1, "new.png"))

	got, err := repo.GetByID(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, "new.png", got.Avatar)

	got, err = repo.GetByID(ctx, p2.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Avatar, "other authors are untouched")
}
