// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile is the social-graph-facing record for a user. The follower/following
// lists are not stored on the profile row; they are derived from the follows
// edge table and attached at read time, newest edge first.
type Profile struct {
	ID        uint           `gorm:"primaryKey" json:"_id"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user"`
	Username  string         `gorm:"uniqueIndex;not null" json:"username"`
	FullName  string         `json:"full_name"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"date"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Derived reference lists, populated by the service layer.
	Followers []uint `gorm:"-" json:"followers"`
	Following []uint `gorm:"-" json:"following"`
	Posts     []uint `gorm:"-" json:"posts"`
	Saved     []uint `gorm:"-" json:"saved,omitempty"`
}

// Follow is a single directed edge in the follow graph: FollowerID follows
// FolloweeID. Storing the edge once and querying it from both directions
// replaces the mirrored per-profile lists, so there is no dual write to keep
// consistent.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_edge;index" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_edge;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
