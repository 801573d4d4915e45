package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
)

func TestListActiveSanitizesAndCaches(t *testing.T) {
	db := setupServiceDB(t)
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	now := time.Now()
	require.NoError(t, db.Create(&models.Announcement{
		Title:    "Kajian Subuh",
		Body:     `<p>Ba'da subuh</p><script>alert("x")</script>`,
		StartsAt: now.Add(-time.Hour),
	}).Error)

	svc := NewAnnouncementService(repository.NewAnnouncementRepository(db), cache, time.Minute, testLogger())
	ctx := context.Background()

	first, err := svc.ListActive(ctx, 1, 10)
	require.NoError(t, err)
	require.False(t, first.CacheHit)
	require.Len(t, first.Items, 1)
	require.NotContains(t, first.Items[0].Body, "<script>")
	require.Contains(t, first.Items[0].Body, "Ba'da subuh")

	second, err := svc.ListActive(ctx, 1, 10)
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.Items, second.Items)
}

func TestListActiveSkipsExpiredUnlessPinned(t *testing.T) {
	db := setupServiceDB(t)

	now := time.Now()
	past := now.Add(-time.Hour)
	require.NoError(t, db.Create(&models.Announcement{
		Title:    "Lewat",
		Body:     "sudah selesai",
		StartsAt: now.Add(-48 * time.Hour),
		EndsAt:   &past,
	}).Error)
	require.NoError(t, db.Create(&models.Announcement{
		Title:    "Tetap Tayang",
		Body:     "disematkan",
		StartsAt: now.Add(-48 * time.Hour),
		EndsAt:   &past,
		IsPinned: true,
	}).Error)

	svc := NewAnnouncementService(repository.NewAnnouncementRepository(db), nil, time.Minute, testLogger())

	resp, err := svc.ListActive(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "Tetap Tayang", resp.Items[0].Title)
}
