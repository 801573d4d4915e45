package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/models"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
)

type resultFixture struct {
	db      *gorm.DB
	actions *actionLogService
	results ResultService
	admin   Actor
}

func newResultFixture(t *testing.T) *resultFixture {
	t.Helper()
	db := setupServiceDB(t)

	actions := NewActionLogService(repository.NewAdminActionRepository(db), testLogger()).(*actionLogService)
	actions.RegisterRestorer("result", ModelRestorer[models.ExamResult]{})

	settings := NewGradeSettingService(repository.NewGradeRangeRepository(db), nil, 0, testValidator(), testLogger())
	results := NewResultService(repository.NewResultRepository(db), settings, actions, testValidator(), testLogger())

	return &resultFixture{
		db:      db,
		actions: actions,
		results: results,
		admin:   Actor{ID: 1, Role: models.RoleAdmin},
	}
}

func TestResultGradeDerivedServerSide(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	passing, err := f.results.Create(ctx, dto.ResultRequest{StudentID: 1, Subject: "Tahfidz", Term: "2026-1", Score: 95}, f.admin)
	require.NoError(t, err)
	require.Equal(t, "A+", passing.Grade)
	require.Equal(t, models.ResultStatusLulus, passing.Status)

	failing, err := f.results.Create(ctx, dto.ResultRequest{StudentID: 2, Subject: "Tahfidz", Term: "2026-1", Score: 12}, f.admin)
	require.NoError(t, err)
	require.Equal(t, "F", failing.Grade)
	require.Equal(t, models.ResultStatusGagal, failing.Status)
}

func TestResultUpdateRederivesGrade(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	created, err := f.results.Create(ctx, dto.ResultRequest{StudentID: 3, Subject: "Fiqh", Term: "2026-1", Score: 49}, f.admin)
	require.NoError(t, err)
	require.Equal(t, "F", created.Grade)

	updated, err := f.results.Update(ctx, created.ID, dto.ResultUpdateRequest{Score: 92}, f.admin)
	require.NoError(t, err)
	require.Equal(t, "A", updated.Grade)
	require.Equal(t, models.ResultStatusLulus, updated.Status)
}

func TestResultUpdateIsUndoable(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	created, err := f.results.Create(ctx, dto.ResultRequest{StudentID: 4, Subject: "Sirah", Term: "2026-1", Score: 77}, f.admin)
	require.NoError(t, err)

	_, err = f.results.Update(ctx, created.ID, dto.ResultUpdateRequest{Score: 30}, f.admin)
	require.NoError(t, err)

	var action models.AdminAction
	require.NoError(t, f.db.Order("id DESC").First(&action).Error)
	require.Equal(t, models.OperationUpdate, action.Operation)

	_, err = f.actions.Undo(ctx, action.ID, f.admin)
	require.NoError(t, err)

	var restored models.ExamResult
	require.NoError(t, f.db.First(&restored, created.ID).Error)
	require.Equal(t, 77.0, restored.Score)
	require.Equal(t, "B", restored.Grade)
}

func TestResultDeleteNotFound(t *testing.T) {
	f := newResultFixture(t)

	err := f.results.Delete(context.Background(), 404, f.admin)
	require.ErrorIs(t, err, ErrResultNotFound)
}
