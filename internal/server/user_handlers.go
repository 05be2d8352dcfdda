package server

import (
	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/users
// @Summary List users
// @Tags users
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} models.User
// @Security BearerAuth
// @Router /users [get]
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	users, err := s.userService.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetUser handles GET /api/users/:id
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /users/{id} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.userService.GetByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// SearchUsers handles GET /api/users/search?q=term
// @Summary Search users by username or full name
// @Tags users
// @Produce json
// @Param q query string true "Whitespace-separated search terms"
// @Success 200 {array} models.User
// @Security BearerAuth
// @Router /users/search [get]
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	users, err := s.userService.Search(c.Context(), c.Query("q"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetRecommendedUsers handles GET /api/users/recommended
// @Summary Follow recommendations for the authenticated user
// @Description Returns at most 5 users drawn from the follow graph, topped up with arbitrary users when the graph is sparse
// @Tags users
// @Produce json
// @Success 200 {array} models.UserSummary
// @Security BearerAuth
// @Router /users/recommended [get]
func (s *Server) GetRecommendedUsers(c *fiber.Ctx) error {
	recommendations, err := s.recommendationService.Recommend(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(recommendations)
}

// ChangeAvatar handles PUT /api/users/avatar
// @Summary Change the authenticated user's avatar
// @Description Updates the user record, the profile, and the author snapshot on every post
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{avatar=string} true "New avatar URL"
// @Success 200 {object} models.Profile
// @Failure 400 {object} object{error=string}
// @Security BearerAuth
// @Router /users/avatar [put]
func (s *Server) ChangeAvatar(c *fiber.Ctx) error {
	var req struct {
		Avatar string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Avatar == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Avatar is required"))
	}

	profile, err := s.profileService.ChangeAvatar(c.Context(), currentUserID(c), req.Avatar)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}
