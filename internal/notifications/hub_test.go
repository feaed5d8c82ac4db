package notifications

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(10, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(10, nil)
	require.NoError(t, err)
	other, err := hub.Register(20, nil)
	require.NoError(t, err)

	hub.Broadcast(10, "hello")

	assert.Equal(t, "hello", string(<-clientA.Send))
	assert.Equal(t, "hello", string(<-clientB.Send))
	select {
	case msg := <-other.Send:
		t.Fatalf("unexpected message for other user: %s", msg)
	default:
	}
}

func TestHub_BroadcastAll(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(1, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(2, nil)
	require.NoError(t, err)

	hub.BroadcastAll("everyone")

	assert.Equal(t, "everyone", string(<-clientA.Send))
	assert.Equal(t, "everyone", string(<-clientB.Send))
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(7, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(7, nil)
	assert.EqualError(t, err, "user connection limit reached")

	// A different user is unaffected by the per-user cap.
	_, err = hub.Register(8, nil)
	assert.NoError(t, err)
}

func TestHub_UnregisterFreesSlot(t *testing.T) {
	hub := NewHub()

	client, err := hub.Register(5, nil)
	require.NoError(t, err)
	assert.True(t, hub.IsOnline(5))

	hub.UnregisterClient(client)
	assert.False(t, hub.IsOnline(5))

	// Double unregister must not corrupt the connection count.
	hub.UnregisterClient(client)
	_, err = hub.Register(5, nil)
	assert.NoError(t, err)
}

func TestHub_StartWiringForwardsUserMessages(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	hub := NewHub()
	notifier := NewNotifier(rdb)

	client, err := hub.Register(42, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.StartWiring(ctx, notifier))

	// PSubscribe needs a moment before publishes are visible.
	assert.Eventually(t, func() bool {
		require.NoError(t, notifier.PublishUser(context.Background(), 42, `{"type":"ping"}`))
		select {
		case msg := <-client.Send:
			return string(msg) == `{"type":"ping"}`
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestHub_StartWiringForwardsBroadcasts(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	hub := NewHub()
	notifier := NewNotifier(rdb)

	client, err := hub.Register(9, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.StartWiring(ctx, notifier))

	assert.Eventually(t, func() bool {
		require.NoError(t, notifier.PublishBroadcast(context.Background(), "maintenance"))
		select {
		case msg := <-client.Send:
			return string(msg) == "maintenance"
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestHub_ShutdownClearsConnections(t *testing.T) {
	hub := NewHub()

	for i := 1; i <= 3; i++ {
		_, err := hub.Register(uint(i), nil)
		require.NoError(t, err, fmt.Sprintf("register user %d", i))
	}

	require.NoError(t, hub.Shutdown(context.Background()))

	for i := 1; i <= 3; i++ {
		assert.False(t, hub.IsOnline(uint(i)))
	}
}
