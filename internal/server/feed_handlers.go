package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFollowingFeed handles GET /api/profiles/:username/feed
// @Summary Following feed for a profile
// @Description All posts authored by the accounts the profile follows, plus the profile's own posts, newest first
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} models.Post
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /profiles/{username}/feed [get]
func (s *Server) GetFollowingFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.FollowingFeed(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}
