package server

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"glimpse/internal/config"
	"glimpse/internal/models"
	"glimpse/internal/repository"
	"glimpse/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a Server against an in-memory sqlite database, without
// the metrics middleware or Redis so it can be constructed repeatedly.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Follow{},
		&models.Post{},
		&models.Like{},
		&models.SavedPost{},
		&models.Comment{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)

	return &Server{
		config:      &config.Config{JWTSecret: "test-secret-key-12345678901234567890123456789012", Port: "8425"},
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		followRepo:  followRepo,
		postRepo:    postRepo,

		userService:           service.NewUserService(userRepo),
		profileService:        service.NewProfileService(userRepo, profileRepo, followRepo, postRepo, nil),
		postService:           service.NewPostService(userRepo, postRepo, nil),
		feedService:           service.NewFeedService(profileRepo, followRepo, postRepo),
		recommendationService: service.NewRecommendationService(userRepo, profileRepo, followRepo, rand.New(rand.NewSource(1))),
	}
}

// newTestApp returns a Fiber app that authenticates every request as userID.
func newTestApp(userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	return app
}

// seedUser creates a user and its profile directly through the database.
func seedUser(t *testing.T, s *Server, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "hashed"}
	require.NoError(t, s.db.Create(user).Error)
	require.NoError(t, s.db.Create(&models.Profile{UserID: user.ID, Username: username}).Error)
	return user
}

func seedFollow(t *testing.T, s *Server, followerID, followeeID uint) {
	t.Helper()
	require.NoError(t, s.db.Create(&models.Follow{FollowerID: followerID, FolloweeID: followeeID}).Error)
}

func seedPost(t *testing.T, s *Server, author *models.User, description string) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:      author.ID,
		Username:    author.Username,
		Description: description,
		FileLink:    "https://cdn.example.com/v.mp4",
		FileType:    "video",
	}
	require.NoError(t, s.db.Create(post).Error)
	return post
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}
