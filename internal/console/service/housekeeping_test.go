package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zancompute/zanconfig/internal/console/domain"
	"github.com/zancompute/zanconfig/internal/console/service"
)

func TestHousekeepingCleanup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, st := newSessions(t)
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	for _, s := range []domain.Session{
		{ID: "old", TokenSealed: []byte{0}, CreatedAt: now.Add(-24 * time.Hour), ExpiresAt: now.Add(-time.Hour)},
		{ID: "live", TokenSealed: []byte{0}, CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
	} {
		require.NoError(t, st.Sessions().CreateSession(ctx, s))
	}

	hk := service.NewHousekeepingService(st, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour)
	hk.Now = func() time.Time { return now }

	require.Equal(t, int64(1), hk.Cleanup(ctx))
	require.Equal(t, int64(0), hk.Cleanup(ctx))

	_, err := st.Sessions().GetSessionByID(ctx, "live")
	require.NoError(t, err)

	hk.Start()
	hk.Stop()
}
