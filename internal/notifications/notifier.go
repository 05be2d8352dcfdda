// Package notifications provides real-time notification delivery over Redis
// pub/sub and websockets.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"glimpse/internal/middleware"
	"glimpse/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Event types published by the service layer.
const (
	EventFollow  = "follow"
	EventLike    = "like"
	EventComment = "comment"
)

// Event is a single realtime notification. UserID is the recipient, ActorID
// is the user whose action triggered it.
type Event struct {
	Type      string    `json:"type"`
	UserID    uint      `json:"user_id"`
	ActorID   uint      `json:"actor_id"`
	PostID    uint      `json:"post_id,omitempty"`
	CommentID uint      `json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher is what the service layer needs from the notification system.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Notifier publishes events into per-user Redis channels. A nil Redis client
// turns every method into a no-op, which keeps tests and redis-less
// deployments working.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Publish sends an event to the recipient's channel.
func (n *Notifier) Publish(ctx context.Context, event Event) error {
	if n.rdb == nil {
		return nil
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	observability.NotificationEventsTotal.WithLabelValues(event.Type).Inc()
	return n.rdb.Publish(ctx, UserChannel(event.UserID), string(payload)).Err()
}

// PublishBroadcast sends a raw payload to all connected users.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, "notifications:broadcast", payload).Err()
}

// StartPatternSubscriber subscribes to `notifications:user:*` and the
// broadcast channel, calling onMessage for each incoming message. The
// subscription runs until ctx is cancelled.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "notifications:user:*", "notifications:broadcast")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in notification subscriber", "panic", r)
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "notifications:user:" + strconv.FormatUint(uint64(userID), 10)
}
