package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
)

func newGradeSettingService(t *testing.T) (GradeSettingService, *miniredis.Miniredis) {
	t.Helper()
	db := setupServiceDB(t)
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })
	return NewGradeSettingService(repository.NewGradeRangeRepository(db), cache, 0, testValidator(), testLogger()), mr
}

func intPtr(v int) *int { return &v }

func TestActiveRangesFallsBackToDefaults(t *testing.T) {
	svc, _ := newGradeSettingService(t)

	ranges, err := svc.ActiveRanges(context.Background())
	require.NoError(t, err)
	require.Len(t, ranges, 11)
	require.Equal(t, "F", ranges[0].Grade)
	require.Equal(t, "A+", ranges[len(ranges)-1].Grade)
}

func TestReplacePersistsAndInvalidatesCache(t *testing.T) {
	svc, mr := newGradeSettingService(t)
	ctx := context.Background()

	// Prime the cache with the defaults.
	_, err := svc.ActiveRanges(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists(gradeRangeCacheKey))

	_, problems, err := svc.Replace(ctx, dto.GradeRangeUpdateRequest{
		Ranges: []dto.GradeRangeItem{
			{Grade: "Gagal", Min: 0, Max: intPtr(59)},
			{Grade: "Lulus", Min: 60, Max: intPtr(100)},
		},
	})
	require.NoError(t, err)
	require.Empty(t, problems)
	require.False(t, mr.Exists(gradeRangeCacheKey))

	ranges, err := svc.ActiveRanges(ctx)
	require.NoError(t, err)
	require.Len(t, ranges, 2)
	require.Equal(t, "Gagal", ranges[0].Grade)
	require.Equal(t, 60, ranges[1].Min)
}

func TestReplaceRejectsBrokenPartitionWholesale(t *testing.T) {
	svc, _ := newGradeSettingService(t)
	ctx := context.Background()

	_, problems, err := svc.Replace(ctx, dto.GradeRangeUpdateRequest{
		Ranges: []dto.GradeRangeItem{
			{Grade: "F", Min: 0, Max: intPtr(49)},
			{Grade: "A", Min: 55, Max: intPtr(90)},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, problems, "gap and last-bound problems must be reported")

	// The stored set is untouched, so derivation still sees the defaults.
	ranges, err := svc.ActiveRanges(ctx)
	require.NoError(t, err)
	require.Len(t, ranges, 11)
}

func TestReplaceAccumulatesAllProblems(t *testing.T) {
	svc, _ := newGradeSettingService(t)

	_, problems, err := svc.Replace(context.Background(), dto.GradeRangeUpdateRequest{
		Ranges: []dto.GradeRangeItem{
			{Grade: "", Min: 5, Max: intPtr(40)},
			{Grade: "B", Min: 50, Max: intPtr(80)},
			{Grade: "B", Min: 81, Max: intPtr(90)},
		},
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(problems), 4)
}
