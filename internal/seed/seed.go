package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"glimpse/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	SkipBcrypt  bool
	// MaxDays spreads generated post timestamps over the last N days.
	MaxDays int
	// FollowFanout is the average number of accounts each user follows.
	FollowFanout int
}

// Seed populates the database with test data: users with profiles, a follow
// mesh, posts, and a sprinkling of likes, saves and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	if err := createFollowMesh(factory, users, opts.FollowFanout); err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}

	posts, err := createPosts(factory, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if err := createEngagement(factory, users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	log.Println("Database seeding completed successfully")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, saved_posts, follows, posts, profiles, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a few known accounts for manual testing.
	if count >= 3 {
		for _, name := range []string{"ada", "linus", "grace"} {
			name := name
			user, err := factory.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
				u.Avatar = fmt.Sprintf("https://i.pravatar.cc/150?u=%s", name)
			})
			if err != nil {
				continue
			}
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("created %d users...", i)
		}
	}
	return users, nil
}

// createFollowMesh wires a follow graph. Each user follows roughly fanout
// other users picked at random; duplicate edges are skipped by the unique
// index and ignored here.
func createFollowMesh(factory *Factory, users []*models.User, fanout int) error {
	if fanout <= 0 {
		fanout = 5
	}
	if len(users) < 2 {
		return nil
	}
	//nolint:gosec // weak randomness is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, follower := range users {
		for i := 0; i < fanout; i++ {
			followee := users[r.Intn(len(users))]
			if followee.ID == follower.ID {
				continue
			}
			if err := factory.CreateFollow(follower, followee); err != nil {
				continue
			}
		}
	}
	return nil
}

func createPosts(factory *Factory, users []*models.User, count int) ([]*models.Post, error) {
	//nolint:gosec // weak randomness is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]*models.Post, 0, count)

	for i := 0; i < count; i++ {
		user := users[r.Intn(len(users))]
		post, err := factory.CreatePost(user)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i > 0 && i%100 == 0 {
			log.Printf("created %d posts...", i)
		}
	}
	return posts, nil
}

// createEngagement sprinkles likes, saves and comments over the seeded posts.
func createEngagement(factory *Factory, users []*models.User, posts []*models.Post) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}
	//nolint:gosec // weak randomness is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, post := range posts {
		for i := 0; i < r.Intn(8); i++ {
			_ = factory.CreateLike(users[r.Intn(len(users))], post)
		}
		for i := 0; i < r.Intn(3); i++ {
			_ = factory.CreateSave(users[r.Intn(len(users))], post)
		}
		for i := 0; i < r.Intn(4); i++ {
			if _, err := factory.CreateComment(users[r.Intn(len(users))], post); err != nil {
				continue
			}
		}
	}
	return nil
}
