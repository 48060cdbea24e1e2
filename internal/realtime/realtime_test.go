package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishSubscribe(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	svc := NewServiceWithClient(client, zap.NewNop())
	defer svc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan string, 2)
	require.NoError(t, svc.Subscribe(ctx, func(table string) {
		received <- table
	}))

	svc.Publish(ctx, TableContacts)
	svc.Publish(ctx, TableMarketplace)

	for _, expected := range []string{TableContacts, TableMarketplace} {
		select {
		case got := <-received:
			require.Equal(t, expected, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s signal", expected)
		}
	}
}

func TestWatchFanOut(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	svc := NewServiceWithClient(client, zap.NewNop())
	defer svc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, svc.Listen(ctx))

	a := svc.Watch()
	b := svc.Watch()
	defer svc.Unwatch(b)

	svc.Publish(ctx, TableContacts)

	for _, ch := range []chan string{a, b} {
		select {
		case got := <-ch:
			require.Equal(t, TableContacts, got)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for a fan-out signal")
		}
	}

	svc.Unwatch(a)
	_, open := <-a
	require.False(t, open)
}
