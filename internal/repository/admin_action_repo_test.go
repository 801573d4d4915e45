package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.AdminAction{},
		&models.Announcement{},
		&models.Student{},
		&models.Teacher{},
		&models.Class{},
		&models.Attendance{},
		&models.FeePayment{},
		&models.ExamResult{},
		&models.GradeRange{},
		&models.User{},
	))
	return db
}

func newAction(entityType, entityID string, op models.Operation) *models.AdminAction {
	now := time.Now()
	return &models.AdminAction{
		EntityType: entityType,
		EntityID:   entityID,
		Operation:  op,
		CreatedBy:  1,
		CreatedAt:  now,
		ExpiresAt:  now.Add(25 * time.Hour),
	}
}

func TestListEligibleSkipsConsumedAndExpired(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminActionRepository(db)
	ctx := context.Background()

	eligible := newAction("student", "1", models.OperationUpdate)
	require.NoError(t, db.Create(eligible).Error)

	expired := newAction("student", "2", models.OperationUpdate)
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, db.Create(expired).Error)

	consumedAt := time.Now()
	consumed := newAction("student", "3", models.OperationDelete)
	consumed.ConsumedAt = &consumedAt
	require.NoError(t, db.Create(consumed).Error)

	entries, total, err := repo.ListEligible(ctx, AdminActionFilter{PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	require.Equal(t, eligible.ID, entries[0].ID)
}

func TestListEligibleFiltersByEntityType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminActionRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(newAction("student", "1", models.OperationUpdate)).Error)
	require.NoError(t, db.Create(newAction("announcement", "1", models.OperationDelete)).Error)

	entries, total, err := repo.ListEligible(ctx, AdminActionFilter{PageSize: 10, EntityType: "announcement"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "announcement", entries[0].EntityType)
}

func TestConsumeAndRestoreIsExclusive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminActionRepository(db)
	ctx := context.Background()

	action := newAction("student", "1", models.OperationUpdate)
	require.NoError(t, db.Create(action).Error)

	restored := 0
	err := repo.ConsumeAndRestore(ctx, action.ID, func(tx *gorm.DB) error {
		restored++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, restored)

	err = repo.ConsumeAndRestore(ctx, action.ID, func(tx *gorm.DB) error {
		restored++
		return nil
	})
	require.ErrorIs(t, err, ErrActionConsumed)
	require.Equal(t, 1, restored, "restore callback must not run for a consumed entry")
}

func TestConsumeAndRestoreRollsBackOnRestoreFailure(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminActionRepository(db)
	ctx := context.Background()

	action := newAction("student", "1", models.OperationUpdate)
	require.NoError(t, db.Create(action).Error)

	boom := gorm.ErrInvalidData
	err := repo.ConsumeAndRestore(ctx, action.ID, func(tx *gorm.DB) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	var reloaded models.AdminAction
	require.NoError(t, db.First(&reloaded, action.ID).Error)
	require.Nil(t, reloaded.ConsumedAt, "failed restore must not leave the entry consumed")
}

func TestTrackedCreateFillsEntityIDAndSupersedes(t *testing.T) {
	db := setupTestDB(t)
	students := NewStudentRepository(db)
	ctx := context.Background()

	student := &models.Student{NIS: "2024001", Name: "Ahmad", Status: models.StudentStatusActive}
	createAction := newAction("student", "", models.OperationCreate)
	require.NoError(t, students.Create(ctx, student, createAction))
	require.Equal(t, entityIdentifier(student.ID), createAction.EntityID)

	// A later mutation on the same entity supersedes the earlier snapshot.
	student.Name = "Ahmad Fauzi"
	updateAction := newAction("student", createAction.EntityID, models.OperationUpdate)
	require.NoError(t, students.Update(ctx, student, updateAction))

	var first models.AdminAction
	require.NoError(t, db.First(&first, createAction.ID).Error)
	require.NotNil(t, first.ConsumedAt)

	var second models.AdminAction
	require.NoError(t, db.First(&second, updateAction.ID).Error)
	require.Nil(t, second.ConsumedAt)
}
