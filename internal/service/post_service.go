package service

import (
	"context"

	"glimpse/internal/middleware"
	"glimpse/internal/models"
	"glimpse/internal/notifications"
	"glimpse/internal/repository"
)

// PostService manages posts and their likes, saves and comments.
type PostService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	notifier notifications.Publisher
}

func NewPostService(userRepo repository.UserRepository, postRepo repository.PostRepository, notifier notifications.Publisher) *PostService {
	return &PostService{
		userRepo: userRepo,
		postRepo: postRepo,
		notifier: notifier,
	}
}

// CreatePost creates a post for the author, stamping the author's current
// username and avatar onto the post row.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, description, fileLink, fileType string) (*models.Post, error) {
	if description == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if fileLink == "" || fileType == "" {
		return nil, models.NewValidationError("File link and type are required")
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:      author.ID,
		Username:    author.Username,
		Avatar:      author.Avatar,
		Description: description,
		FileLink:    fileLink,
		FileType:    fileType,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns a single post with the viewer's saved flag set.
func (s *PostService) GetPost(ctx context.Context, viewerID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	markSaved(post, viewerID)
	return post, nil
}

// ListPosts returns a page of posts, newest first, with the viewer's saved
// flags set.
func (s *PostService) ListPosts(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	posts, err := s.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		markSaved(&posts[i], viewerID)
	}
	return posts, nil
}

// PostsByUsername returns the named user's posts as grid tiles, newest first.
func (s *PostService) PostsByUsername(ctx context.Context, username string) ([]models.PostTile, error) {
	posts, err := s.postRepo.ListByAuthorUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return tiles(posts), nil
}

// SavedPosts returns the posts the user has saved, as grid tiles.
func (s *PostService) SavedPosts(ctx context.Context, userID uint) ([]models.PostTile, error) {
	posts, err := s.postRepo.ListSavedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return tiles(posts), nil
}

// DeletePost deletes a post. Only the author may delete it. Saves held by
// other users are removed alongside the post.
func (s *PostService) DeletePost(ctx context.Context, requesterID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != requesterID {
		return models.NewUnauthorizedError("only the author can delete a post")
	}
	if err := s.postRepo.RemoveSavesForPost(ctx, postID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

// Like records a like. Liking twice surfaces the unique-constraint violation
// as a validation error.
func (s *PostService) Like(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.postRepo.AddLike(ctx, &models.Like{PostID: postID, UserID: userID}); err != nil {
		return err
	}
	s.publish(ctx, notifications.Event{
		Type:    notifications.EventLike,
		ActorID: userID,
		UserID:  post.UserID,
		PostID:  postID,
	})
	return nil
}

// Unlike removes a like.
func (s *PostService) Unlike(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.postRepo.RemoveLike(ctx, postID, userID)
}

// Save bookmarks a post for the user.
func (s *PostService) Save(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.postRepo.AddSave(ctx, &models.SavedPost{PostID: postID, UserID: userID})
}

// Unsave removes a bookmark.
func (s *PostService) Unsave(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.postRepo.RemoveSave(ctx, postID, userID)
}

// Comment adds a comment to a post, stamping the commenter's current
// username and avatar, and returns the created comment.
func (s *PostService) Comment(ctx context.Context, userID, postID uint, text string) (*models.Comment, error) {
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   user.ID,
		Username: user.Username,
		Avatar:   user.Avatar,
		Text:     text,
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	s.publish(ctx, notifications.Event{
		Type:      notifications.EventComment,
		ActorID:   userID,
		UserID:    post.UserID,
		PostID:    postID,
		CommentID: comment.ID,
	})
	return comment, nil
}

// DeleteComment deletes a comment. Only its author may delete it.
func (s *PostService) DeleteComment(ctx context.Context, requesterID, postID, commentID uint) error {
	comment, err := s.postRepo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.PostID != postID {
		return models.NewNotFoundError("Comment", commentID)
	}
	if comment.UserID != requesterID {
		return models.NewUnauthorizedError("only the author can delete a comment")
	}
	return s.postRepo.DeleteComment(ctx, commentID)
}

func (s *PostService) publish(ctx context.Context, event notifications.Event) {
	if s.notifier == nil || event.UserID == event.ActorID {
		return
	}
	if err := s.notifier.Publish(ctx, event); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish notification", "type", event.Type, "error", err)
	}
}

// markSaved sets the viewer-specific saved flag from the preloaded saves.
func markSaved(post *models.Post, viewerID uint) {
	for _, save := range post.Saves {
		if save.UserID == viewerID {
			post.Saved = true
			return
		}
	}
}

// tiles projects posts onto the grid-tile shape used by profile pages.
func tiles(posts []models.Post) []models.PostTile {
	out := make([]models.PostTile, 0, len(posts))
	for _, p := range posts {
		out = append(out, models.PostTile{
			ID:       p.ID,
			FileLink: p.FileLink,
			FileType: p.FileType,
			Likes:    len(p.Likes),
			Comments: len(p.Comments),
		})
	}
	return out
}
