// Package realtime carries table-change signals between API instances over
// Redis pub/sub. Subscribers only invalidate and refetch; the payload is the
// table name and nothing in it is otherwise inspected.
package realtime

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channel = "table-changes"

// Tables whose changes are broadcast.
const (
	TableContacts    = "contacts"
	TableMarketplace = "marketplace_registrations"
)

type Service struct {
	client *redis.Client
	logger *zap.Logger

	mu       sync.Mutex
	watchers map[chan string]struct{}
}

func NewService(logger *zap.Logger) (*Service, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	return &Service{client: client, logger: logger, watchers: map[chan string]struct{}{}}, nil
}

// NewServiceWithClient wires an existing client, used by tests.
func NewServiceWithClient(client *redis.Client, logger *zap.Logger) *Service {
	return &Service{client: client, logger: logger, watchers: map[chan string]struct{}{}}
}

// Publish broadcasts that a table changed. Failures are logged and
// swallowed: a missed invalidation only delays the next refetch.
func (s *Service) Publish(ctx context.Context, table string) {
	if err := s.client.Publish(ctx, channel, table).Err(); err != nil {
		s.logger.Warn("failed to publish table change",
			zap.String("table", table),
			zap.Error(err))
	}
}

// Subscribe invokes fn with the table name for every change signal until
// ctx is cancelled.
func (s *Service) Subscribe(ctx context.Context, fn func(table string)) error {
	sub := s.client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				fn(msg.Payload)
			}
		}
	}()

	return nil
}

// Listen consumes change signals from the channel and fans them out to the
// watchers registered through Watch. Called once at server startup.
func (s *Service) Listen(ctx context.Context) error {
	return s.Subscribe(ctx, s.broadcast)
}

func (s *Service) broadcast(table string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.watchers {
		select {
		case ch <- table:
		default:
			// A stalled watcher misses this signal and catches up on the next.
		}
	}
}

// Watch registers a change-signal receiver, typically one per connected
// console client.
func (s *Service) Watch() chan string {
	ch := make(chan string, 8)
	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

// Unwatch removes a receiver registered with Watch and closes its channel.
func (s *Service) Unwatch(ch chan string) {
	s.mu.Lock()
	delete(s.watchers, ch)
	s.mu.Unlock()
	close(ch)
}

// Close releases the underlying Redis connection.
func (s *Service) Close() error {
	return s.client.Close()
}
