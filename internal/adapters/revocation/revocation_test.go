package revocation

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Revoke(ctx, "jti-1", time.Hour))
	require.NoError(t, s.Revoke(ctx, "jti-expired", 0))

	tests := []struct {
		name    string
		jti     string
		advance time.Duration
		want    bool
	}{
		{"revoked token", "jti-1", 0, true},
		{"unknown token", "jti-2", 0, false},
		{"zero ttl ignored", "jti-expired", 0, false},
		{"forgotten after expiry", "jti-1", 2 * time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now = now.Add(tt.advance)
			got, err := s.IsRevoked(ctx, tt.jti)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRedisStore_Integration(t *testing.T) {
	host := os.Getenv("KANSO_REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	rdb := redis.NewClient(&redis.Options{Addr: host + ":6379", DB: 3})
	defer rdb.Close()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	require.NoError(t, rdb.FlushDB(ctx).Err())

	s := NewRedisStore(rdb)
	require.NoError(t, s.Revoke(ctx, "abc", time.Minute))

	revoked, err := s.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = s.IsRevoked(ctx, "other")
	require.NoError(t, err)
	assert.False(t, revoked)

	ttl, err := rdb.TTL(ctx, "revoked:abc").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
