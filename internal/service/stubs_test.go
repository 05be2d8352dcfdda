package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"glimpse/internal/models"
	"glimpse/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByIDsFn          func(context.Context, []uint) ([]models.User, error)
	getByEmailFn        func(context.Context, string) (*models.User, error)
	getByUsernameFn     func(context.Context, string) (*models.User, error)
	findManyExcludingFn func(context.Context, []uint, int) ([]models.User, error)
	listFn              func(context.Context, int, int) ([]models.User, error)
	searchFn            func(context.Context, []string) ([]models.User, error)
	createFn            func(context.Context, *models.User) error
	updateFn            func(context.Context, *models.User) error
	deleteFn            func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) FindManyExcluding(ctx context.Context, excludeIDs []uint, limit int) ([]models.User, error) {
	return s.findManyExcludingFn(ctx, excludeIDs, limit)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Search(ctx context.Context, terms []string) ([]models.User, error) {
	return s.searchFn(ctx, terms)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByIDsFn:      func(_ context.Context, ids []uint) ([]models.User, error) { return usersFromIDs(ids), nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		findManyExcludingFn: func(_ context.Context, _ []uint, _ int) ([]models.User, error) {
			return nil, nil
		},
		listFn:   func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		searchFn: func(_ context.Context, _ []string) ([]models.User, error) { return nil, nil },
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		updateFn: func(_ context.Context, _ *models.User) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// usersFromIDs fakes a batch lookup where every ID resolves.
func usersFromIDs(ids []uint) []models.User {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, models.User{ID: id, Username: usernameFor(id)})
	}
	return users
}

func usernameFor(id uint) string {
	return fmt.Sprintf("user%d", id)
}

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByUserIDFn   func(context.Context, uint) (*models.Profile, error)
	getByUsernameFn func(context.Context, string) (*models.Profile, error)
	getByUserIDsFn  func(context.Context, []uint) ([]models.Profile, error)
	createFn        func(context.Context, *models.Profile) error
	updateFn        func(context.Context, *models.Profile) error
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *profileRepoStub) GetByUserIDs(ctx context.Context, userIDs []uint) ([]models.Profile, error) {
	return s.getByUserIDsFn(ctx, userIDs)
}
func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByUserIDFn: func(_ context.Context, userID uint) (*models.Profile, error) {
			return &models.Profile{ID: userID, UserID: userID}, nil
		},
		getByUsernameFn: func(_ context.Context, username string) (*models.Profile, error) {
			return &models.Profile{UserID: 1, Username: username}, nil
		},
		getByUserIDsFn: func(_ context.Context, userIDs []uint) ([]models.Profile, error) {
			profiles := make([]models.Profile, 0, len(userIDs))
			for _, id := range userIDs {
				profiles = append(profiles, models.Profile{ID: id, UserID: id})
			}
			return profiles, nil
		},
		createFn: func(_ context.Context, _ *models.Profile) error { return nil },
		updateFn: func(_ context.Context, _ *models.Profile) error { return nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	createFn           func(context.Context, *models.Follow) error
	deleteFn           func(context.Context, uint, uint) error
	isFollowingFn      func(context.Context, uint, uint) (bool, error)
	followerIDsFn      func(context.Context, uint) ([]uint, error)
	followingIDsFn     func(context.Context, uint) ([]uint, error)
	followingEdgesOfFn func(context.Context, []uint) ([]models.Follow, error)
	countsFn           func(context.Context, uint) (int64, int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uint) error {
	return s.deleteFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followerIDsFn(ctx, userID)
}
func (s *followRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, userID)
}
func (s *followRepoStub) FollowingEdgesOf(ctx context.Context, followerIDs []uint) ([]models.Follow, error) {
	return s.followingEdgesOfFn(ctx, followerIDs)
}
func (s *followRepoStub) Counts(ctx context.Context, userID uint) (int64, int64, error) {
	return s.countsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:           func(_ context.Context, _ *models.Follow) error { return nil },
		deleteFn:           func(_ context.Context, _, _ uint) error { return nil },
		isFollowingFn:      func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		followerIDsFn:      func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		followingIDsFn:     func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		followingEdgesOfFn: func(_ context.Context, _ []uint) ([]models.Follow, error) { return nil, nil },
		countsFn:           func(_ context.Context, _ uint) (int64, int64, error) { return 0, 0, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	getByIDFn              func(context.Context, uint) (*models.Post, error)
	getByIDsFn             func(context.Context, []uint) ([]models.Post, error)
	listFn                 func(context.Context, int, int) ([]models.Post, error)
	listByAuthorUsernameFn func(context.Context, string) ([]models.Post, error)
	listIDsByAuthorsFn     func(context.Context, []uint) (map[uint][]uint, error)
	listSavedByUserFn      func(context.Context, uint) ([]models.Post, error)
	createFn               func(context.Context, *models.Post) error
	deleteFn               func(context.Context, uint) error
	updateAuthorSnapshotFn func(context.Context, uint, string) error
	addLikeFn              func(context.Context, *models.Like) error
	removeLikeFn           func(context.Context, uint, uint) error
	addSaveFn              func(context.Context, *models.SavedPost) error
	removeSaveFn           func(context.Context, uint, uint) error
	removeSavesForPostFn   func(context.Context, uint) error
	addCommentFn           func(context.Context, *models.Comment) error
	getCommentFn           func(context.Context, uint) (*models.Comment, error)
	deleteCommentFn        func(context.Context, uint) error
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) ListByAuthorUsername(ctx context.Context, username string) ([]models.Post, error) {
	return s.listByAuthorUsernameFn(ctx, username)
}
func (s *postRepoStub) ListIDsByAuthors(ctx context.Context, authorIDs []uint) (map[uint][]uint, error) {
	return s.listIDsByAuthorsFn(ctx, authorIDs)
}
func (s *postRepoStub) ListSavedByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	return s.listSavedByUserFn(ctx, userID)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) UpdateAuthorSnapshot(ctx context.Context, authorID uint, avatar string) error {
	return s.updateAuthorSnapshotFn(ctx, authorID, avatar)
}
func (s *postRepoStub) AddLike(ctx context.Context, like *models.Like) error {
	return s.addLikeFn(ctx, like)
}
func (s *postRepoStub) RemoveLike(ctx context.Context, postID, userID uint) error {
	return s.removeLikeFn(ctx, postID, userID)
}
func (s *postRepoStub) AddSave(ctx context.Context, save *models.SavedPost) error {
	return s.addSaveFn(ctx, save)
}
func (s *postRepoStub) RemoveSave(ctx context.Context, postID, userID uint) error {
	return s.removeSaveFn(ctx, postID, userID)
}
func (s *postRepoStub) RemoveSavesForPost(ctx context.Context, postID uint) error {
	return s.removeSavesForPostFn(ctx, postID)
}
func (s *postRepoStub) AddComment(ctx context.Context, comment *models.Comment) error {
	return s.addCommentFn(ctx, comment)
}
func (s *postRepoStub) GetComment(ctx context.Context, commentID uint) (*models.Comment, error) {
	return s.getCommentFn(ctx, commentID)
}
func (s *postRepoStub) DeleteComment(ctx context.Context, commentID uint) error {
	return s.deleteCommentFn(ctx, commentID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		getByIDFn:  func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		getByIDsFn: func(_ context.Context, _ []uint) ([]models.Post, error) { return nil, nil },
		listFn:     func(_ context.Context, _, _ int) ([]models.Post, error) { return nil, nil },
		listByAuthorUsernameFn: func(_ context.Context, _ string) ([]models.Post, error) {
			return nil, nil
		},
		listIDsByAuthorsFn: func(_ context.Context, _ []uint) (map[uint][]uint, error) {
			return map[uint][]uint{}, nil
		},
		listSavedByUserFn:      func(_ context.Context, _ uint) ([]models.Post, error) { return nil, nil },
		createFn:               func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:               func(_ context.Context, _ uint) error { return nil },
		updateAuthorSnapshotFn: func(_ context.Context, _ uint, _ string) error { return nil },
		addLikeFn:              func(_ context.Context, _ *models.Like) error { return nil },
		removeLikeFn:           func(_ context.Context, _, _ uint) error { return nil },
		addSaveFn:              func(_ context.Context, _ *models.SavedPost) error { return nil },
		removeSaveFn:           func(_ context.Context, _, _ uint) error { return nil },
		removeSavesForPostFn:   func(_ context.Context, _ uint) error { return nil },
		addCommentFn:           func(_ context.Context, _ *models.Comment) error { return nil },
		getCommentFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		deleteCommentFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// notifierStub records published events.
type notifierStub struct {
	events []notifications.Event
	err    error
}

func (s *notifierStub) Publish(_ context.Context, event notifications.Event) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}
