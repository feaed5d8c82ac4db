// Package notifications pushes realtime events (incoming chat messages,
// goal progress) to connected clients through Redis pub/sub.
package notifications

import (
	"context"
	"runtime/debug"
	"strconv"

	"github.com/redis/go-redis/v9"

	"find/internal/middleware"
)

// Notifier publishes events into per-user and broadcast Redis channels.
// A nil Redis client turns every method into a no-op, which is how the
// API runs in tests and in minimal deployments.
type Notifier struct {
	rdb *redis.Client
}

func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishUser delivers a payload to one user's channel. The payload is
// already serialized; the notifier does not inspect it.
func (n *Notifier) PublishUser(
	ctx context.Context, userID uint, payload string,
) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// PublishBroadcast delivers a payload to every connected client.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, "notifications:broadcast", payload).Err()
}

// StartPatternSubscriber consumes all user channels plus the broadcast
// channel and hands each message to onMessage. It returns immediately;
// consumption runs until ctx is canceled. A panicking callback is logged
// and must not take the subscriber down with it.
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
				deliver(ctx, onMessage, msg.Channel, msg.Payload)
			}
		}
	}()
	return nil
}

func deliver(ctx context.Context, onMessage func(string, string), channel, payload string) {
	defer func() {
		if r := recover(); r != nil {
			middleware.Logger.ErrorContext(ctx, "notification callback panicked",
				"panic", r, "channel", channel, "stack", string(debug.Stack()))
		}
	}()
	onMessage(channel, payload)
}

// UserChannel is the Redis channel carrying one user's notifications.
func UserChannel(userID uint) string {
	return "notifications:user:" + strconv.FormatUint(uint64(userID), 10)
}
