package service

import (
	"context"
	"strings"

	"glimpse/internal/models"
	"glimpse/internal/repository"
)

// UserService exposes user lookups and search.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID returns a single user.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// List returns a page of users.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// Search matches users whose username or full name contains any of the
// whitespace-separated terms, case-insensitively. Blank input matches nobody.
func (s *UserService) Search(ctx context.Context, query string) ([]models.User, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return []models.User{}, nil
	}
	return s.userRepo.Search(ctx, terms)
}
