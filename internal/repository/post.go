package repository

import (
	"context"
	"errors"

	"glimpse/internal/cache"
	"glimpse/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts and their embedded
// likes, saves and comments.
type PostRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Post, error)
	List(ctx context.Context, limit, offset int) ([]models.Post, error)
	ListByAuthorUsername(ctx context.Context, username string) ([]models.Post, error)
	ListIDsByAuthors(ctx context.Context, authorIDs []uint) (map[uint][]uint, error)
	ListSavedByUser(ctx context.Context, userID uint) ([]models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	UpdateAuthorSnapshot(ctx context.Context, authorID uint, avatar string) error

	AddLike(ctx context.Context, like *models.Like) error
	RemoveLike(ctx context.Context, postID, userID uint) error
	AddSave(ctx context.Context, save *models.SavedPost) error
	RemoveSave(ctx context.Context, postID, userID uint) error
	RemoveSavesForPost(ctx context.Context, postID uint) error
	AddComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, commentID uint) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func withEmbedded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Saves")
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := withEmbedded(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByIDs resolves a batch of post IDs in a single query. Refs that no longer
// resolve are absent from the result; callers drop them silently.
func (r *postRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var posts []models.Post
	if err := withEmbedded(r.db.WithContext(ctx)).Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := withEmbedded(r.db.WithContext(ctx)).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByAuthorUsername(ctx context.Context, username string) ([]models.Post, error) {
	var posts []models.Post
	if err := withEmbedded(r.db.WithContext(ctx)).
		Where("username = ?", username).
		Order("created_at DESC, id DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ListIDsByAuthors returns the post-ref list for each author in one query,
// newest first per author. Authors with no posts are absent from the map.
func (r *postRepository) ListIDsByAuthors(ctx context.Context, authorIDs []uint) (map[uint][]uint, error) {
	if len(authorIDs) == 0 {
		return map[uint][]uint{}, nil
	}
	var rows []struct {
		ID     uint
		UserID uint
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("id", "user_id").
		Where("user_id IN ?", authorIDs).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	out := make(map[uint][]uint, len(authorIDs))
	for _, row := range rows {
		out[row.UserID] = append(out[row.UserID], row.ID)
	}
	return out, nil
}

func (r *postRepository) ListSavedByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := withEmbedded(r.db.WithContext(ctx)).
		Joins("JOIN saved_posts sp ON sp.post_id = posts.id").
		Where("sp.user_id = ?", userID).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// UpdateAuthorSnapshot rewrites the denormalized avatar on every post authored
// by the given user. Called when the author changes their avatar.
func (r *postRepository) UpdateAuthorSnapshot(ctx context.Context, authorID uint, avatar string) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("user_id = ?", authorID).
		Update("avatar", avatar).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) AddLike(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Post already liked")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, like.PostID)
	return nil
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewValidationError("Post has not yet been liked")
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

func (r *postRepository) AddSave(ctx context.Context, save *models.SavedPost) error {
	if err := r.db.WithContext(ctx).Create(save).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Post already saved")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, save.PostID)
	return nil
}

func (r *postRepository) RemoveSave(ctx context.Context, postID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.SavedPost{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewValidationError("Post has not yet been saved")
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

// RemoveSavesForPost clears all saved refs pointing at a post. Referential
// cleanup on post deletion is the caller's responsibility, not a cascade.
func (r *postRepository) RemoveSavesForPost(ctx context.Context, postID uint) error {
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.SavedPost{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

func (r *postRepository) GetComment(ctx context.Context, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", commentID)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *postRepository) DeleteComment(ctx context.Context, commentID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, commentID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
