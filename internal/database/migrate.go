package database

import (
	"fmt"

	"glimpse/internal/models"

	"gorm.io/gorm"
)

// RegisteredModels lists every model that participates in automigration,
// ordered so foreign-key targets migrate before their referents.
func RegisteredModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Post{},
		&models.Like{},
		&models.SavedPost{},
		&models.Comment{},
		&models.Follow{},
	}
}

// Migrate runs gorm automigration for all registered models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(RegisteredModels()...); err != nil {
		return fmt.Errorf("automigration failed: %w", err)
	}
	return nil
}
