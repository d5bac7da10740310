package redis

import (
	"context"
	"encoding/json"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/voxflow/voxflow/pkg/domain"
)

// CallLog implements ports.CallLogStore as a capped Redis list, newest
// first.
type CallLog struct {
	client   *backend.Client
	key      string
	capacity int64
}

// NewCallLog creates a Redis call log. capacity <= 0 defaults to 1000.
func NewCallLog(client *backend.Client, keyPrefix string, capacity int64) *CallLog {
	if keyPrefix == "" {
		keyPrefix = "voxflow:"
	}
	if capacity <= 0 {
		capacity = 1000
	}
	return &CallLog{
		client:   client,
		key:      keyPrefix + "calllog",
		capacity: capacity,
	}
}

// Append records one call-progress event and trims the list to capacity.
func (l *CallLog) Append(ctx context.Context, entry domain.CallLog) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshalling call log entry: %w", err)
	}

	pipe := l.client.Pipeline()
	pipe.LPush(ctx, l.key, data)
	pipe.LTrim(ctx, l.key, 0, l.capacity-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("appending call log to redis: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (l *CallLog) Recent(ctx context.Context, n int) ([]domain.CallLog, error) {
	if n <= 0 {
		n = int(l.capacity)
	}

	vals, err := l.client.LRange(ctx, l.key, 0, int64(n)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading call log from redis: %w", err)
	}

	entries := make([]domain.CallLog, 0, len(vals))
	for _, v := range vals {
		var e domain.CallLog
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			return nil, fmt.Errorf("unmarshalling call log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
