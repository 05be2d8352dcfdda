package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix           = "user:%d"
	PostKeyPrefix           = "post:%d"
	ProfileKeyPrefix        = "profile:user:%d"
	ProfileUsernamePrefix   = "profile:name:%s"
	RecommendationKeyPrefix = "recommendation:%d"
)

const (
	UserTTL           = 5 * time.Minute
	ProfileTTL        = 2 * time.Minute
	PostTTL           = 30 * time.Minute
	RecommendationTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func ProfileUsernameKey(username string) string {
	return fmt.Sprintf(ProfileUsernamePrefix, username)
}

func RecommendationKey(userID uint) string {
	return fmt.Sprintf(RecommendationKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateProfile drops both lookup paths for a profile.
func InvalidateProfile(ctx context.Context, userID uint, username string) {
	Invalidate(ctx, ProfileKey(userID))
	if username != "" {
		Invalidate(ctx, ProfileUsernameKey(username))
	}
}
