// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a published post. Username and Avatar are denormalized
// snapshots of the author at creation time; they are only rewritten when the
// author changes their avatar.
type Post struct {
	ID          uint   `gorm:"primaryKey" json:"_id"`
	UserID      uint   `gorm:"not null;index" json:"user"`
	Username    string `gorm:"index" json:"username"`
	Avatar      string `json:"avatar"`
	Description string `gorm:"type:text;not null" json:"description"`
	FileLink    string `gorm:"not null" json:"file_link"`
	FileType    string `gorm:"not null" json:"file_type"`

	Likes    []Like      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes"`
	Comments []Comment   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
	Saves    []SavedPost `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`

	// Saved indicates whether the requesting viewer saved this post (computed)
	Saved bool `gorm:"-" json:"saved"`

	CreatedAt time.Time      `json:"date"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Like records that a user liked a post. One like per user per post.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_once;index" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_once" json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedPost records that a user saved a post. One save per user per post.
type SavedPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_save_once;index" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_save_once;index" json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a comment on a post with a denormalized author snapshot.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null" json:"user"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"date"`
}

// PostTile is the compact projection used by profile post grids and the
// saved-posts listing.
type PostTile struct {
	ID       uint   `json:"_id"`
	FileLink string `json:"file_link"`
	FileType string `json:"file_type"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
}
