// Package service contains the business logic sitting between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"math/rand"

	"glimpse/internal/models"
	"glimpse/internal/observability"
	"glimpse/internal/repository"
)

// maxRecommendations caps how many follow suggestions a single request returns.
const maxRecommendations = 5

// RecommendationService computes follow suggestions for a user from the
// follow graph, falling back to arbitrary users when the graph is too sparse.
type RecommendationService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	followRepo  repository.FollowRepository
	rng         *rand.Rand
}

// NewRecommendationService returns a new RecommendationService. The random
// source drives the shuffle of oversized candidate pools; tests inject a
// seeded source for deterministic output.
func NewRecommendationService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, followRepo repository.FollowRepository, rng *rand.Rand) *RecommendationService {
	return &RecommendationService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		followRepo:  followRepo,
		rng:         rng,
	}
}

// Recommend returns at most 5 distinct users for the requester to follow,
// never including the requester or anyone already followed.
//
// Candidates are drawn from two graph sources, in order: followers the
// requester does not follow back, then accounts followed by the requester's
// followees (friends of friends). If fewer than 5 graph candidates survive
// filtering, the remainder is filled with arbitrary users; if more, the pool
// is shuffled uniformly and truncated.
func (s *RecommendationService) Recommend(ctx context.Context, requesterID uint) ([]models.UserSummary, error) {
	// The requester must have a profile; everything else degrades gracefully.
	if _, err := s.profileRepo.GetByUserID(ctx, requesterID); err != nil {
		return nil, err
	}

	followers, err := s.followRepo.FollowerIDs(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.FollowingIDs(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	followingSet := make(map[uint]bool, len(following))
	for _, id := range following {
		followingSet[id] = true
	}

	// Followers the requester does not follow back.
	var candidateIDs []uint
	for _, id := range followers {
		if !followingSet[id] {
			candidateIDs = append(candidateIDs, id)
		}
	}

	// Friends of friends: everyone followed by someone the requester follows.
	// The expansion is a single batch query over all followees.
	edges, err := s.followRepo.FollowingEdgesOf(ctx, following)
	if err != nil {
		return nil, err
	}
	edgesByFollowee := make(map[uint][]uint, len(following))
	for _, e := range edges {
		edgesByFollowee[e.FollowerID] = append(edgesByFollowee[e.FollowerID], e.FolloweeID)
	}
	for _, followee := range following {
		candidateIDs = append(candidateIDs, edgesByFollowee[followee]...)
	}

	// Drop the requester and anyone already followed, de-duplicate by user id
	// keeping the first occurrence.
	seen := make(map[uint]bool, len(candidateIDs))
	filtered := candidateIDs[:0]
	for _, id := range candidateIDs {
		if id == requesterID || followingSet[id] || seen[id] {
			continue
		}
		seen[id] = true
		filtered = append(filtered, id)
	}
	candidateIDs = filtered

	recommendations, err := s.resolveSummaries(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}
	if len(recommendations) >= maxRecommendations {
		s.shuffle(recommendations)
		recommendations = recommendations[:maxRecommendations]
	}
	observability.RecommendationFill.WithLabelValues("graph").Add(float64(len(recommendations)))

	// Sparse graph: top up with arbitrary users, excluding the requester,
	// the current candidates and everyone already followed.
	if len(recommendations) < maxRecommendations {
		exclude := make([]uint, 0, len(recommendations)+len(following)+1)
		exclude = append(exclude, requesterID)
		for _, rec := range recommendations {
			exclude = append(exclude, rec.User)
		}
		exclude = append(exclude, following...)

		fill, err := s.userRepo.FindManyExcluding(ctx, exclude, maxRecommendations-len(recommendations))
		if err != nil {
			return nil, err
		}
		for _, user := range fill {
			recommendations = append(recommendations, models.UserSummary{
				User:     user.ID,
				Username: user.Username,
				Avatar:   user.Avatar,
			})
		}
		observability.RecommendationFill.WithLabelValues("random").Add(float64(len(fill)))
	}

	return recommendations, nil
}

// resolveSummaries turns candidate IDs into summaries with one batch lookup,
// preserving candidate order. IDs that no longer resolve are skipped.
func (s *RecommendationService) resolveSummaries(ctx context.Context, ids []uint) ([]models.UserSummary, error) {
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	summaries := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		user, ok := byID[id]
		if !ok {
			continue
		}
		summaries = append(summaries, models.UserSummary{
			User:     user.ID,
			Username: user.Username,
			Avatar:   user.Avatar,
		})
	}
	return summaries, nil
}

// shuffle performs an in-place Fisher-Yates shuffle.
func (s *RecommendationService) shuffle(summaries []models.UserSummary) {
	for i := len(summaries) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		summaries[i], summaries[j] = summaries[j], summaries[i]
	}
}
