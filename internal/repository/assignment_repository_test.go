package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/internal/grading"
	"github.com/noah-isme/portfolio-api/internal/models"
)

func TestAssignmentRepositoryListByCourse(t *testing.T) {
	db, mock, cleanup := newPortfolioMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "course_id", "user_id", "name", "assignment_type", "total_points", "earned_points", "weight_percentage", "due_date", "created_at", "updated_at"}).
		AddRow("a1", "c1", "u1", "Unit test", "Test", 100.0, 85.0, 0.0, now, now, now).
		AddRow("a2", "c1", "u1", "Final", "FinalExam", 200.0, nil, 0.0, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM assignments WHERE course_id = $1 AND user_id = $2")).
		WithArgs("c1", "u1").
		WillReturnRows(rows)

	assignments, err := repo.ListByCourse(context.Background(), "u1", "c1")
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	assert.Equal(t, grading.AssignmentTest, assignments[0].AssignmentType)
	assert.Nil(t, assignments[1].EarnedPoints)
	assert.Nil(t, assignments[1].DueDate)

	converted := models.GradingAssignments(assignments)
	assert.True(t, converted[0].Graded())
	assert.False(t, converted[1].Graded())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newPortfolioMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec("INSERT INTO assignments").
		WithArgs(sqlmock.AnyArg(), "c1", "u1", "Quiz 1", grading.AssignmentQuiz, 20.0, sqlmock.AnyArg(), 0.0, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	earned := 18.0
	assignment := &models.Assignment{CourseID: "c1", UserID: "u1", Name: "Quiz 1", AssignmentType: grading.AssignmentQuiz, TotalPoints: 20, EarnedPoints: &earned}
	require.NoError(t, repo.Create(context.Background(), assignment))
	assert.NotEmpty(t, assignment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryUpdateMissing(t *testing.T) {
	db, mock, cleanup := newPortfolioMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec("UPDATE assignments SET").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Assignment{ID: "a1", UserID: "u1"})
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newPortfolioMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignments WHERE id = $1 AND user_id = $2")).
		WithArgs("a1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "u1", "a1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
