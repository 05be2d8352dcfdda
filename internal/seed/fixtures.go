package seed

import (
	"fmt"
	"os"

	"glimpse/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// FixtureUser is a named account declared in a fixtures file. Each entry
// creates a user plus profile, optional posts, and optional follow edges to
// other fixture accounts by username.
type FixtureUser struct {
	Username string   `yaml:"username"`
	Email    string   `yaml:"email"`
	FullName string   `yaml:"full_name"`
	Avatar   string   `yaml:"avatar"`
	Posts    []string `yaml:"posts"`
	Follows  []string `yaml:"follows"`
}

type fixtureFile struct {
	Users []FixtureUser `yaml:"users"`
}

// LoadFixtures reads a YAML fixtures file and persists its accounts. Follow
// edges are resolved after all accounts exist, so forward references between
// fixture users are fine.
func LoadFixtures(db *gorm.DB, path string, opts Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixtures: %w", err)
	}

	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse fixtures: %w", err)
	}

	factory := NewFactory(db, opts)
	created := make(map[string]*models.User, len(file.Users))

	for _, fu := range file.Users {
		fu := fu
		if fu.Username == "" {
			return fmt.Errorf("fixture user without username")
		}
		email := fu.Email
		if email == "" {
			email = fmt.Sprintf("%s@example.com", fu.Username)
		}
		user, err := factory.CreateUser(func(u *models.User) {
			u.Username = fu.Username
			u.Email = email
			u.FullName = fu.FullName
			if fu.Avatar != "" {
				u.Avatar = fu.Avatar
			}
		})
		if err != nil {
			return fmt.Errorf("create fixture user %q: %w", fu.Username, err)
		}
		created[fu.Username] = user

		for _, description := range fu.Posts {
			description := description
			if _, err := factory.CreatePost(user, func(p *models.Post) {
				p.Description = description
			}); err != nil {
				return fmt.Errorf("create fixture post for %q: %w", fu.Username, err)
			}
		}
	}

	for _, fu := range file.Users {
		follower := created[fu.Username]
		for _, target := range fu.Follows {
			followee, ok := created[target]
			if !ok {
				return fmt.Errorf("fixture user %q follows unknown user %q", fu.Username, target)
			}
			if err := factory.CreateFollow(follower, followee); err != nil {
				return fmt.Errorf("create fixture follow %q -> %q: %w", fu.Username, target, err)
			}
		}
	}
	return nil
}
