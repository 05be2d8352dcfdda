package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profiles/me
// @Summary Get the authenticated user's profile
// @Description Includes follower, following, post and saved-post reference lists
// @Tags profiles
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /profiles/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetOwnProfile(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetProfile handles GET /api/profiles/:username
// @Summary Get a public profile by username
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.Profile
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /profiles/{username} [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetFollowers handles GET /api/profiles/:username/followers
// @Summary List a profile's followers
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} models.UserSummary
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /profiles/{username}/followers [get]
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	followers, err := s.profileService.Followers(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(followers)
}

// GetFollowing handles GET /api/profiles/:username/following
// @Summary List the accounts a profile follows
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} models.UserSummary
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /profiles/{username}/following [get]
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	following, err := s.profileService.Following(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(following)
}

// FollowUser handles POST /api/follows/:id
// @Summary Follow a user
// @Tags follows
// @Produce json
// @Param id path int true "User ID to follow"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /follows/{id} [post]
func (s *Server) FollowUser(c *fiber.Ctx) error {
	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.profileService.Follow(c.Context(), currentUserID(c), followeeID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Followed"})
}

// UnfollowUser handles DELETE /api/follows/:id
// @Summary Unfollow a user
// @Tags follows
// @Produce json
// @Param id path int true "User ID to unfollow"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /follows/{id} [delete]
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.profileService.Unfollow(c.Context(), currentUserID(c), followeeID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Unfollowed"})
}

// RemoveFollower handles DELETE /api/follows/followers/:id
// @Summary Remove one of the authenticated user's followers
// @Tags follows
// @Produce json
// @Param id path int true "Follower user ID to remove"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /follows/followers/{id} [delete]
func (s *Server) RemoveFollower(c *fiber.Ctx) error {
	followerID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.profileService.RemoveFollower(c.Context(), currentUserID(c), followerID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Follower removed"})
}
