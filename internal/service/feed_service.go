package service

import (
	"context"
	"sort"

	"glimpse/internal/middleware"
	"glimpse/internal/models"
	"glimpse/internal/observability"
	"glimpse/internal/repository"
)

// FeedService assembles the following feed: all posts authored by the
// accounts a user follows, plus the user's own posts, newest first.
type FeedService struct {
	profileRepo repository.ProfileRepository
	followRepo  repository.FollowRepository
	postRepo    repository.PostRepository
}

func NewFeedService(profileRepo repository.ProfileRepository, followRepo repository.FollowRepository, postRepo repository.PostRepository) *FeedService {
	return &FeedService{
		profileRepo: profileRepo,
		followRepo:  followRepo,
		postRepo:    postRepo,
	}
}

// FollowingFeed builds the feed for the named profile. The profile itself
// must exist; a missing followee profile or a dangling post reference only
// removes that contribution from the result.
func (s *FeedService) FollowingFeed(ctx context.Context, username string) ([]models.Post, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	following, err := s.followRepo.FollowingIDs(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	observability.FeedFanoutWidth.Observe(float64(len(following)))

	followees, err := s.profileRepo.GetByUserIDs(ctx, following)
	if err != nil {
		return nil, err
	}
	followeeByID := make(map[uint]models.Profile, len(followees))
	for _, f := range followees {
		followeeByID[f.UserID] = f
	}

	// Fan-out: the feed is sourced from the followees whose profiles still
	// resolve, plus the requester. Missing followee profiles drop out.
	authors := make([]uint, 0, len(following)+1)
	skippedProfiles := 0
	for _, id := range following {
		if _, ok := followeeByID[id]; !ok {
			skippedProfiles++
			continue
		}
		authors = append(authors, id)
	}
	authors = append(authors, profile.UserID)
	if skippedProfiles > 0 {
		observability.FeedSkippedRefs.WithLabelValues("profile").Add(float64(skippedProfiles))
		middleware.Logger.WarnContext(ctx, "feed skipped unresolvable followee profiles",
			"username", username, "skipped", skippedProfiles)
	}

	refsByAuthor, err := s.postRepo.ListIDsByAuthors(ctx, authors)
	if err != nil {
		return nil, err
	}
	var refs []uint
	for _, author := range authors {
		refs = append(refs, refsByAuthor[author]...)
	}

	posts, err := s.postRepo.GetByIDs(ctx, refs)
	if err != nil {
		return nil, err
	}
	postByID := make(map[uint]models.Post, len(posts))
	for _, p := range posts {
		postByID[p.ID] = p
	}

	// Resolve references preserving order, dropping dangling ones and
	// de-duplicating on first occurrence.
	feed := make([]models.Post, 0, len(refs))
	seen := make(map[uint]bool, len(refs))
	skippedPosts := 0
	for _, ref := range refs {
		post, ok := postByID[ref]
		if !ok {
			skippedPosts++
			continue
		}
		if seen[ref] {
			continue
		}
		seen[ref] = true
		feed = append(feed, post)
	}
	if skippedPosts > 0 {
		observability.FeedSkippedRefs.WithLabelValues("post").Add(float64(skippedPosts))
		middleware.Logger.WarnContext(ctx, "feed skipped dangling post references",
			"username", username, "skipped", skippedPosts)
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].CreatedAt.After(feed[j].CreatedAt)
	})
	return feed, nil
}
