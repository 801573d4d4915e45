package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/models"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.AdminAction{},
		&models.Announcement{},
		&models.Student{},
		&models.Teacher{},
		&models.ExamResult{},
		&models.GradeRange{},
		&models.User{},
	))
	return db
}

type undoFixture struct {
	db       *gorm.DB
	actions  *actionLogService
	students StudentService
	admin    Actor
}

func newUndoFixture(t *testing.T) *undoFixture {
	t.Helper()
	db := setupServiceDB(t)

	actions := NewActionLogService(repository.NewAdminActionRepository(db), testLogger()).(*actionLogService)
	actions.RegisterRestorer("student", ModelRestorer[models.Student]{})

	students := NewStudentService(repository.NewStudentRepository(db), actions, testValidator(), testLogger())

	return &undoFixture{
		db:       db,
		actions:  actions,
		students: students,
		admin:    Actor{ID: 1, Role: models.RoleAdmin},
	}
}

func (f *undoFixture) latestAction(t *testing.T) models.AdminAction {
	t.Helper()
	var action models.AdminAction
	require.NoError(t, f.db.Order("id DESC").First(&action).Error)
	return action
}

func TestUndoCreateDeletesEntity(t *testing.T) {
	f := newUndoFixture(t)
	ctx := context.Background()

	created, err := f.students.Create(ctx, dto.StudentCreateRequest{NIS: "2024001", Name: "Ahmad"}, f.admin)
	require.NoError(t, err)

	action := f.latestAction(t)
	require.Equal(t, models.OperationCreate, action.Operation)
	require.Empty(t, []byte(action.BeforeState))

	resp, err := f.actions.Undo(ctx, action.ID, f.admin)
	require.NoError(t, err)
	require.Equal(t, "student", resp.EntityType)

	err = f.db.First(&models.Student{}, created.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUndoUpdateRestoresBeforeState(t *testing.T) {
	f := newUndoFixture(t)
	ctx := context.Background()

	created, err := f.students.Create(ctx, dto.StudentCreateRequest{NIS: "2024002", Name: "Fatimah", Phone: "0812"}, f.admin)
	require.NoError(t, err)

	newName := "Fatimah Azzahra"
	newPhone := "0899"
	_, err = f.students.Update(ctx, created.ID, dto.StudentUpdateRequest{Name: &newName, Phone: &newPhone}, f.admin)
	require.NoError(t, err)

	action := f.latestAction(t)
	require.Equal(t, models.OperationUpdate, action.Operation)

	_, err = f.actions.Undo(ctx, action.ID, f.admin)
	require.NoError(t, err)

	var restored models.Student
	require.NoError(t, f.db.First(&restored, created.ID).Error)
	require.Equal(t, "Fatimah", restored.Name)
	require.Equal(t, "0812", restored.Phone)
}

func TestUndoDeleteReinsertsEntity(t *testing.T) {
	f := newUndoFixture(t)
	ctx := context.Background()

	created, err := f.students.Create(ctx, dto.StudentCreateRequest{NIS: "2024003", Name: "Umar"}, f.admin)
	require.NoError(t, err)
	require.NoError(t, f.students.Delete(ctx, created.ID, f.admin))

	err = f.db.First(&models.Student{}, created.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	action := f.latestAction(t)
	require.Equal(t, models.OperationDelete, action.Operation)

	_, err = f.actions.Undo(ctx, action.ID, f.admin)
	require.NoError(t, err)

	var restored models.Student
	require.NoError(t, f.db.First(&restored, created.ID).Error)
	require.Equal(t, "Umar", restored.Name)
	require.Equal(t, "2024003", restored.NIS)
}

func TestUndoTwiceReturnsConsumed(t *testing.T) {
	f := newUndoFixture(t)
	ctx := context.Background()

	_, err := f.students.Create(ctx, dto.StudentCreateRequest{NIS: "2024004", Name: "Zaid"}, f.admin)
	require.NoError(t, err)
	action := f.latestAction(t)

	_, err = f.actions.Undo(ctx, action.ID, f.admin)
	require.NoError(t, err)

	_, err = f.actions.Undo(ctx, action.ID, f.admin)
	require.ErrorIs(t, err, ErrActionConsumed)
}

func TestUndoExpiryBoundary(t *testing.T) {
	f := newUndoFixture(t)
	ctx := context.Background()

	_, err := f.students.Create(ctx, dto.StudentCreateRequest{NIS: "2024005", Name: "Bilal"}, f.admin)
	require.NoError(t, err)
	action := f.latestAction(t)

	// One second past the deadline the entry is permanently ineligible.
	f.actions.now = func() time.Time { return action.ExpiresAt.Add(time.Second) }
	_, err = f.actions.Undo(ctx, action.ID, f.admin)
	require.ErrorIs(t, err, ErrActionExpired)

	// One second before the deadline it still works.
	f.actions.now = func() time.Time { return action.ExpiresAt.Add(-time.Second) }
	_, err = f.actions.Undo(ctx, action.ID, f.admin)
	require.NoError(t, err)
}

func TestUndoRequiresAdminRole(t *testing.T) {
	f := newUndoFixture(t)
	ctx := context.Background()

	_, err := f.students.Create(ctx, dto.StudentCreateRequest{NIS: "2024006", Name: "Hasan"}, f.admin)
	require.NoError(t, err)
	action := f.latestAction(t)

	_, err = f.actions.Undo(ctx, action.ID, Actor{ID: 9, Role: models.RoleTeacher})
	require.ErrorIs(t, err, ErrUndoForbidden)
}

func TestUndoUnknownActionReturnsNotFound(t *testing.T) {
	f := newUndoFixture(t)

	_, err := f.actions.Undo(context.Background(), 9999, f.admin)
	require.ErrorIs(t, err, ErrActionNotFound)
}

func TestUndoWithoutRestorerFails(t *testing.T) {
	f := newUndoFixture(t)
	ctx := context.Background()

	entry, err := f.actions.NewAction("unknown", models.OperationUpdate, map[string]string{"x": "y"}, nil, f.admin)
	require.NoError(t, err)
	entry.EntityID = "1"
	require.NoError(t, f.db.Create(entry).Error)

	_, err = f.actions.Undo(ctx, entry.ID, f.admin)
	require.ErrorIs(t, err, ErrNoRestorer)
}

func TestNewActionEnforcesBeforeStateRules(t *testing.T) {
	f := newUndoFixture(t)

	_, err := f.actions.NewAction("student", models.OperationCreate, models.Student{}, nil, f.admin)
	require.Error(t, err, "create must not carry a before state")

	_, err = f.actions.NewAction("student", models.OperationUpdate, nil, nil, f.admin)
	require.Error(t, err, "update requires a before state")

	_, err = f.actions.NewAction("student", "rename", nil, nil, f.admin)
	require.Error(t, err, "unknown operations are rejected")
}

func TestNewActionStampsFixedWindow(t *testing.T) {
	f := newUndoFixture(t)

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	f.actions.now = func() time.Time { return at }

	entry, err := f.actions.NewAction("student", models.OperationDelete, models.Student{Name: "x"}, nil, f.admin)
	require.NoError(t, err)
	require.Equal(t, at, entry.CreatedAt)
	require.Equal(t, at.Add(UndoWindow), entry.ExpiresAt)
}

func TestListReturnsOnlyEligibleNewestFirst(t *testing.T) {
	f := newUndoFixture(t)
	ctx := context.Background()

	_, err := f.students.Create(ctx, dto.StudentCreateRequest{NIS: "2024007", Name: "Salman"}, f.admin)
	require.NoError(t, err)
	first := f.latestAction(t)

	_, err = f.students.Create(ctx, dto.StudentCreateRequest{NIS: "2024008", Name: "Khalid"}, f.admin)
	require.NoError(t, err)
	second := f.latestAction(t)

	_, err = f.actions.Undo(ctx, first.ID, f.admin)
	require.NoError(t, err)

	listed, err := f.actions.List(ctx, repository.AdminActionFilter{PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), listed.Pagination.TotalItems)
	require.Equal(t, second.ID, listed.Items[0].ID)
}
