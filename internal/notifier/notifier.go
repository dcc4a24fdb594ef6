package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/segyhp/shelfmark/internal/domain"
)

// Notifier delivers composed notification candidates.
type Notifier interface {
	Notify(ctx context.Context, n domain.NotificationCandidate) error
}

// LogNotifier writes each candidate to the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, c domain.NotificationCandidate) error {
	n.logger.InfoContext(ctx, "notification",
		"kind", c.Kind,
		"user_id", c.UserID,
		"email", c.UserEmail,
		"catalog_item_id", c.CatalogItemID,
		"message", c.Message,
	)
	return nil
}

type listPusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// RedisNotifier appends JSON-encoded candidates to a Redis list for a mail worker to drain.
type RedisNotifier struct {
	client listPusher
	queue  string
}

func NewRedisNotifier(client *redis.Client, queue string) *RedisNotifier {
	return &RedisNotifier{client: client, queue: queue}
}

func (n *RedisNotifier) Notify(ctx context.Context, c domain.NotificationCandidate) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}
	if err := n.client.RPush(ctx, n.queue, payload).Err(); err != nil {
		return fmt.Errorf("queueing notification on %s: %w", n.queue, err)
	}
	return nil
}

// Dispatch hands every candidate to sink. Failures are logged and skipped;
// it returns how many were accepted.
func Dispatch(ctx context.Context, sink Notifier, logger *slog.Logger, candidates []domain.NotificationCandidate) int {
	if logger == nil {
		logger = slog.Default()
	}
	sent := 0
	for _, c := range candidates {
		if err := sink.Notify(ctx, c); err != nil {
			logger.WarnContext(ctx, "notification delivery failed",
				"kind", c.Kind,
				"user_id", c.UserID,
				"catalog_item_id", c.CatalogItemID,
				"error", err,
			)
			continue
		}
		sent++
	}
	return sent
}
