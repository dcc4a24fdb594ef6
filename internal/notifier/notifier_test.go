package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/shelfmark/internal/domain"
)

type fakePusher struct {
	key    string
	values []interface{}
	err    error
}

func (f *fakePusher) RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	f.key = key
	f.values = append(f.values, values...)
	return redis.NewIntResult(int64(len(f.values)), f.err)
}

type failingNotifier struct {
	failFor uuid.UUID
	got     []domain.NotificationCandidate
}

func (f *failingNotifier) Notify(ctx context.Context, n domain.NotificationCandidate) error {
	if n.UserID == f.failFor {
		return errors.New("smtp down")
	}
	f.got = append(f.got, n)
	return nil
}

func candidate() domain.NotificationCandidate {
	return domain.NotificationCandidate{
		Kind:          domain.NotificationAvailable,
		UserID:        uuid.New(),
		UserEmail:     "u1@example.com",
		CatalogItemID: "OL1W",
		Message:       `The book "Dune" is now available!`,
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, n.Notify(context.Background(), candidate()))

	assert.Contains(t, buf.String(), `"email":"u1@example.com"`)
	assert.Contains(t, buf.String(), `"catalog_item_id":"OL1W"`)
}

func TestRedisNotifier_PushesJSON(t *testing.T) {
	pusher := &fakePusher{}
	n := &RedisNotifier{client: pusher, queue: "shelfmark:notifications"}
	c := candidate()

	require.NoError(t, n.Notify(context.Background(), c))

	assert.Equal(t, "shelfmark:notifications", pusher.key)
	require.Len(t, pusher.values, 1)

	var decoded domain.NotificationCandidate
	require.NoError(t, json.Unmarshal(pusher.values[0].([]byte), &decoded))
	assert.Equal(t, c, decoded)
}

func TestRedisNotifier_Error(t *testing.T) {
	n := &RedisNotifier{client: &fakePusher{err: errors.New("connection refused")}, queue: "q"}

	err := n.Notify(context.Background(), candidate())

	assert.ErrorContains(t, err, "connection refused")
}

func TestDispatch_SkipsFailures(t *testing.T) {
	first, second, third := candidate(), candidate(), candidate()
	sink := &failingNotifier{failFor: second.UserID}

	sent := Dispatch(context.Background(), sink, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
		[]domain.NotificationCandidate{first, second, third})

	assert.Equal(t, 2, sent)
	assert.Equal(t, []domain.NotificationCandidate{first, third}, sink.got)
}
