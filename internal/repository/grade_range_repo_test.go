package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

func TestGradeRangeReplaceAllIsWholesale(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGradeRangeRepository(db)
	ctx := context.Background()

	fifty := 50
	require.NoError(t, repo.ReplaceAll(ctx, []models.GradeRange{
		{Grade: "Fail", Min: 0, Max: &fifty, Position: 0},
		{Grade: "Pass", Min: 51, Max: nil, Position: 1},
	}))

	ranges, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, ranges, 2)
	require.Equal(t, "Fail", ranges[0].Grade)

	hundred := 100
	require.NoError(t, repo.ReplaceAll(ctx, []models.GradeRange{
		{Grade: "All", Min: 0, Max: &hundred, Position: 0},
	}))

	ranges, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, ranges, 1, "replace must drop the previous partition entirely")
	require.Equal(t, "All", ranges[0].Grade)
}

func TestGradeRangeLoadOrdersByMin(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGradeRangeRepository(db)
	ctx := context.Background()

	forty := 40
	require.NoError(t, repo.ReplaceAll(ctx, []models.GradeRange{
		{Grade: "High", Min: 41, Max: nil, Position: 1},
		{Grade: "Low", Min: 0, Max: &forty, Position: 0},
	}))

	ranges, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "Low", ranges[0].Grade)
	require.Equal(t, "High", ranges[1].Grade)
}
