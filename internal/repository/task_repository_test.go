package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockTaskRepository wires a GormTaskRepository to a mocked SQL
// connection so the emitted statements can be asserted directly.
func newMockTaskRepository(t *testing.T) (TaskRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewTaskRepository(gormDB), mock, mockDB
}

func TestGormTaskRepository_Transition_CompareAndSwap(t *testing.T) {
	repo, mock, mockDB := newMockTaskRepository(t)
	defer mockDB.Close()

	// The prior status is part of the WHERE clause, so a stale caller
	// updates zero rows instead of clobbering a concurrent transition.
	mock.ExpectExec(`UPDATE "tasks" SET .+ WHERE id = \$[0-9]+ AND status = \$[0-9]+ AND active = \$[0-9]+`).
		WithArgs(string(models.TaskStatusInProgress), sqlmock.AnyArg(), uint64(42), string(models.TaskStatusPending), true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	swapped, err := repo.Transition(42, models.TaskStatusPending, models.TaskStatusInProgress)
	require.NoError(t, err)
	require.True(t, swapped)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_Transition_ConcurrentLoser(t *testing.T) {
	repo, mock, mockDB := newMockTaskRepository(t)
	defer mockDB.Close()

	mock.ExpectExec(`UPDATE "tasks" SET .+ WHERE id = \$[0-9]+ AND status = \$[0-9]+ AND active = \$[0-9]+`).
		WithArgs(string(models.TaskStatusCompleted), sqlmock.AnyArg(), uint64(42), string(models.TaskStatusInProgress), true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	swapped, err := repo.Transition(42, models.TaskStatusInProgress, models.TaskStatusCompleted)
	require.NoError(t, err)
	require.False(t, swapped)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_CompleteWithAward_LoserRollsNothing(t *testing.T) {
	repo, mock, mockDB := newMockTaskRepository(t)
	defer mockDB.Close()

	task := &models.Task{
		ID:         42,
		AssignedTo: 7,
		Status:     models.TaskStatusInProgress,
		Points:     80,
	}
	now := time.Now()

	// When the CAS update touches zero rows the transaction commits
	// without ever crediting points.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET .+ WHERE id = \$[0-9]+ AND status = \$[0-9]+ AND active = \$[0-9]+`).
		WithArgs(sqlmock.AnyArg(), string(models.TaskStatusCompleted), sqlmock.AnyArg(), uint64(42), string(models.TaskStatusInProgress), true).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	swapped, err := repo.CompleteWithAward(task, now)
	require.NoError(t, err)
	require.False(t, swapped)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_CompleteWithAward_CreditsAndReranks(t *testing.T) {
	repo, mock, mockDB := newMockTaskRepository(t)
	defer mockDB.Close()

	task := &models.Task{
		ID:         42,
		AssignedTo: 7,
		Status:     models.TaskStatusInProgress,
		Points:     300,
	}
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET .+ WHERE id = \$[0-9]+ AND status = \$[0-9]+ AND active = \$[0-9]+`).
		WithArgs(sqlmock.AnyArg(), string(models.TaskStatusCompleted), sqlmock.AnyArg(), uint64(42), string(models.TaskStatusInProgress), true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "employees" SET "points"=points \+ \$[0-9]+`).
		WithArgs(300, sqlmock.AnyArg(), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT "points" FROM "employees"`).
		WithArgs(uint64(7), 1).
		WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(300))
	mock.ExpectExec(`UPDATE "employees" SET "rank"=\$[0-9]+`).
		WithArgs("Bronze", sqlmock.AnyArg(), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	swapped, err := repo.CompleteWithAward(task, now)
	require.NoError(t, err)
	require.True(t, swapped)
	require.NoError(t, mock.ExpectationsWereMet())
}
