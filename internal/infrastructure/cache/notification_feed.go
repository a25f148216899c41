package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dealerfin/dealerfin/internal/domain/model"
)

const (
	feedKeyPrefix = "dealerfin:notifications:"
	seenKeyPrefix = "dealerfin:notifications:seen:"

	// seenTTL bounds how long a redelivered event is recognised.
	seenTTL = 7 * 24 * time.Hour
)

// pushOnce records the notification id and prepends the entry in one step,
// so a redelivered event neither duplicates nor loses its entry.
//
//	KEYS[1] feed list, KEYS[2] seen marker
//	ARGV[1] payload, ARGV[2] capacity, ARGV[3] marker ttl seconds
var pushOnce = redis.NewScript(`
if not redis.call("SET", KEYS[2], "1", "NX", "EX", tonumber(ARGV[3])) then
	return 0
end
redis.call("LPUSH", KEYS[1], ARGV[1])
redis.call("LTRIM", KEYS[1], 0, tonumber(ARGV[2]) - 1)
return 1
`)

// NotificationFeed implements port.NotificationFeed as one capped Redis list
// per user, newest entry at the head. Pushes are idempotent per notification id.
type NotificationFeed struct {
	rdb      redis.UniversalClient
	capacity int64
}

func NewNotificationFeed(rdb redis.UniversalClient, capacity int) *NotificationFeed {
	return &NotificationFeed{rdb: rdb, capacity: int64(capacity)}
}

func feedKey(userID uuid.UUID) string {
	return feedKeyPrefix + userID.String()
}

func seenKey(id uuid.UUID) string {
	return seenKeyPrefix + id.String()
}

// Push prepends n and trims the list to capacity. A notification id already
// pushed is ignored.
func (f *NotificationFeed) Push(ctx context.Context, n model.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	keys := []string{feedKey(n.UserID), seenKey(n.ID)}
	err = pushOnce.Run(ctx, f.rdb, keys, payload, f.capacity, int64(seenTTL/time.Second)).Err()
	if err != nil {
		return fmt.Errorf("redis push notification: %w", err)
	}
	return nil
}

// List returns up to limit notifications, newest first.
func (f *NotificationFeed) List(ctx context.Context, userID uuid.UUID, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		return nil, nil
	}
	raw, err := f.rdb.LRange(ctx, feedKey(userID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list notifications: %w", err)
	}

	out := make([]model.Notification, 0, len(raw))
	for _, item := range raw {
		var n model.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}
