package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, nat.Port("6379/tcp"))
	require.NoError(t, err)
	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestRedisBlacklistStore(t *testing.T) {
	ctx := context.Background()
	client, err := ConnectRedis(ctx, startRedis(t), "", 0)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	store := NewRedisBlacklistStore(client)

	ok, err := store.IsBlacklisted(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.AddToBlacklist(ctx, "token-a", time.Now().Add(time.Minute)))
	ok, err = store.IsBlacklisted(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := client.TTL(ctx, store.key("token-a")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	require.NoError(t, store.AddToBlacklist(ctx, "token-old", time.Now().Add(-time.Minute)))
	ok, err = store.IsBlacklisted(ctx, "token-old")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConnectRedis_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := ConnectRedis(ctx, "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
