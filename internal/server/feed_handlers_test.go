package server

import (
	"net/http"
	"testing"
	"time"

	"glimpse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFollowingFeedEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	ada := seedUser(t, s, "ada")
	grace := seedUser(t, s, "grace")
	linus := seedUser(t, s, "linus")
	seedFollow(t, s, ada.ID, grace.ID)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	old := seedPost(t, s, grace, "older")
	require.NoError(t, s.db.Model(old).Update("created_at", base).Error)
	own := seedPost(t, s, ada, "own post")
	require.NoError(t, s.db.Model(own).Update("created_at", base.Add(time.Hour)).Error)
	latest := seedPost(t, s, grace, "newest")
	require.NoError(t, s.db.Model(latest).Update("created_at", base.Add(2*time.Hour)).Error)
	unfollowed := seedPost(t, s, linus, "not in feed")

	app := newTestApp(ada.ID)
	app.Get("/api/profiles/:username/feed", s.GetFollowingFeed)

	resp := doJSON(t, app, http.MethodGet, "/api/profiles/ada/feed", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var feed []models.Post
	decodeBody(t, resp, &feed)
	require.Len(t, feed, 3)
	assert.Equal(t, latest.ID, feed[0].ID)
	assert.Equal(t, own.ID, feed[1].ID, "own posts are part of the feed")
	assert.Equal(t, old.ID, feed[2].ID)
	for _, p := range feed {
		assert.NotEqual(t, unfollowed.ID, p.ID)
	}
}

func TestGetFollowingFeedUnknownProfile(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	app := newTestApp(1)
	app.Get("/api/profiles/:username/feed", s.GetFollowingFeed)

	resp := doJSON(t, app, http.MethodGet, "/api/profiles/ghost/feed", nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetRecommendedUsersEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	ada := seedUser(t, s, "ada")
	grace := seedUser(t, s, "grace")
	linus := seedUser(t, s, "linus")

	// grace follows ada; ada does not follow back, so grace is a graph
	// candidate. linus fills the remainder.
	seedFollow(t, s, grace.ID, ada.ID)

	app := newTestApp(ada.ID)
	app.Get("/api/users/recommended", s.GetRecommendedUsers)

	resp := doJSON(t, app, http.MethodGet, "/api/users/recommended", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var recs []models.UserSummary
	decodeBody(t, resp, &recs)
	require.Len(t, recs, 2)
	assert.Equal(t, grace.ID, recs[0].User, "graph candidates come first")
	assert.Equal(t, linus.ID, recs[1].User)
	for _, r := range recs {
		assert.NotEqual(t, ada.ID, r.User, "the requester is never recommended")
	}
}

func TestSearchUsersEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	ada := seedUser(t, s, "ada_lovelace")
	seedUser(t, s, "grace_hopper")

	app := newTestApp(ada.ID)
	app.Get("/api/users/search", s.SearchUsers)

	resp := doJSON(t, app, http.MethodGet, "/api/users/search?q=lovelace", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []models.User
	decodeBody(t, resp, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "ada_lovelace", users[0].Username)

	// Blank queries return an empty list rather than everyone.
	resp = doJSON(t, app, http.MethodGet, "/api/users/search?q=", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users = nil
	decodeBody(t, resp, &users)
	assert.Empty(t, users)
}
