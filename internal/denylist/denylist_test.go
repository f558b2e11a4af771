package denylist

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

// startRedis — поднимает miniredis и возвращает подключённый denylist.
func startRedis(t *testing.T) (Denylist, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	dl, err := NewRedis("redis://"+mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = dl.Close() })

	return dl, mr
}

func TestDenylist_AddAndContains(t *testing.T) {
	dl, _ := startRedis(t)
	ctx := context.Background()

	ok, err := dl.Contains(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, dl.Add(ctx, "jti-1", time.Minute))

	ok, err = dl.Contains(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, ok)

	// Другой jti не задет.
	ok, err = dl.Contains(ctx, "jti-2")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDenylist_EntryExpiresWithTTL(t *testing.T) {
	dl, mr := startRedis(t)
	ctx := context.Background()

	require.NoError(t, dl.Add(ctx, "jti-1", time.Minute))

	// Промотаем время miniredis за пределы TTL.
	mr.FastForward(2 * time.Minute)

	ok, err := dl.Contains(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDenylist_NonPositiveTTLIsNoop(t *testing.T) {
	dl, _ := startRedis(t)
	ctx := context.Background()

	// Токен уже истёк: хранить нечего, ошибка не нужна.
	require.NoError(t, dl.Add(ctx, "jti-1", 0))
	require.NoError(t, dl.Add(ctx, "jti-2", -time.Minute))

	ok, err := dl.Contains(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNewRedis_BadURLOrUnreachable(t *testing.T) {
	_, err := NewRedis("://broken", "")
	require.Error(t, err)

	// Несуществующий адрес — fail-fast на Ping.
	_, err = NewRedis("redis://127.0.0.1:1", "")
	require.Error(t, err)
}
