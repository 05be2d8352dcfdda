package service

import (
	"context"

	"glimpse/internal/middleware"
	"glimpse/internal/models"
	"glimpse/internal/notifications"
	"glimpse/internal/repository"
)

// ProfileService manages profile reads and the follow graph.
type ProfileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	followRepo  repository.FollowRepository
	postRepo    repository.PostRepository
	notifier    notifications.Publisher
}

func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, followRepo repository.FollowRepository, postRepo repository.PostRepository, notifier notifications.Publisher) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		followRepo:  followRepo,
		postRepo:    postRepo,
		notifier:    notifier,
	}
}

// GetOwnProfile returns the authenticated user's profile with all derived
// reference lists attached, including saved posts.
func (s *ProfileService) GetOwnProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.attachLists(ctx, profile); err != nil {
		return nil, err
	}

	saved, err := s.postRepo.ListSavedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.Saved = make([]uint, 0, len(saved))
	for _, p := range saved {
		profile.Saved = append(profile.Saved, p.ID)
	}
	return profile, nil
}

// GetByUsername returns a public profile view. Saved posts are private and
// stay empty here.
func (s *ProfileService) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.attachLists(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Followers lists the accounts following the named profile, newest first.
func (s *ProfileService) Followers(ctx context.Context, username string) ([]models.UserSummary, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	ids, err := s.followRepo.FollowerIDs(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, ids)
}

// Following lists the accounts the named profile follows, newest first.
func (s *ProfileService) Following(ctx context.Context, username string) ([]models.UserSummary, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	ids, err := s.followRepo.FollowingIDs(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, ids)
}

// Follow creates a follow edge from the requester to the target. Following
// yourself or a non-existent user is rejected; following someone twice
// surfaces the unique-edge violation as a validation error.
func (s *ProfileService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.profileRepo.GetByUserID(ctx, followeeID); err != nil {
		return err
	}
	if err := s.followRepo.Create(ctx, &models.Follow{FollowerID: followerID, FolloweeID: followeeID}); err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.Publish(ctx, notifications.Event{
			Type:    notifications.EventFollow,
			ActorID: followerID,
			UserID:  followeeID,
		}); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to publish follow event", "error", err)
		}
	}
	return nil
}

// Unfollow removes the follow edge from the requester to the target.
func (s *ProfileService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return s.followRepo.Delete(ctx, followerID, followeeID)
}

// RemoveFollower removes the reverse edge: the requester ejects one of their
// own followers.
func (s *ProfileService) RemoveFollower(ctx context.Context, userID, followerID uint) error {
	return s.followRepo.Delete(ctx, followerID, userID)
}

// ChangeAvatar updates the avatar on the user record, the profile, and the
// denormalized author snapshot on every post the user authored. The writes
// are sequential; a failure part-way leaves earlier writes in place and is
// reported to the caller.
func (s *ProfileService) ChangeAvatar(ctx context.Context, userID uint, avatar string) (*models.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Avatar = avatar
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.Avatar = avatar
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	if err := s.postRepo.UpdateAuthorSnapshot(ctx, userID, avatar); err != nil {
		return nil, err
	}
	return profile, nil
}

// attachLists populates the derived follower, following and post reference
// lists on a profile.
func (s *ProfileService) attachLists(ctx context.Context, profile *models.Profile) error {
	followers, err := s.followRepo.FollowerIDs(ctx, profile.UserID)
	if err != nil {
		return err
	}
	following, err := s.followRepo.FollowingIDs(ctx, profile.UserID)
	if err != nil {
		return err
	}
	refsByAuthor, err := s.postRepo.ListIDsByAuthors(ctx, []uint{profile.UserID})
	if err != nil {
		return err
	}
	profile.Followers = followers
	profile.Following = following
	profile.Posts = refsByAuthor[profile.UserID]
	return nil
}

// summaries resolves user IDs into summaries in order, skipping IDs that no
// longer resolve.
func (s *ProfileService) summaries(ctx context.Context, ids []uint) ([]models.UserSummary, error) {
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	out := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		u, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, models.UserSummary{
			User:     u.ID,
			Username: u.Username,
			Avatar:   u.Avatar,
			FullName: u.FullName,
		})
	}
	return out, nil
}
