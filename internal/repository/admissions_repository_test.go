package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/internal/models"
)

func TestUniversityRepositoryListTargets(t *testing.T) {
	db, mock, cleanup := newPortfolioMock(t)
	defer cleanup()
	repo := NewUniversityRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "location", "avg_gpa", "avg_sat", "acceptance_rate"}).
		AddRow("uni-1", "Coastal State", "CA", 3.4, 1180.0, 0.6).
		AddRow("uni-2", "Northern Tech", nil, nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("JOIN user_universities uu ON uu.university_id = u.id")).
		WithArgs("u1").
		WillReturnRows(rows)

	unis, err := repo.ListTargets(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, unis, 2)
	require.NotNil(t, unis[0].Stats().AvgGPA)
	assert.Equal(t, 3.4, *unis[0].Stats().AvgGPA)
	assert.Nil(t, unis[1].Location)
	assert.Nil(t, unis[1].Stats().AcceptanceRate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTestScoreRepositoryBestScore(t *testing.T) {
	db, mock, cleanup := newPortfolioMock(t)
	defer cleanup()
	repo := NewTestScoreRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(score) FROM test_scores WHERE user_id = $1 AND test_type = $2")).
		WithArgs("u1", models.TestTypeSAT).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(1480.0))

	best, err := repo.BestScore(context.Background(), "u1", models.TestTypeSAT)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 1480.0, *best)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTestScoreRepositoryBestScoreNone(t *testing.T) {
	db, mock, cleanup := newPortfolioMock(t)
	defer cleanup()
	repo := NewTestScoreRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(score)")).
		WithArgs("u1", models.TestTypeSAT).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	best, err := repo.BestScore(context.Background(), "u1", models.TestTypeSAT)
	require.NoError(t, err)
	assert.Nil(t, best)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTestScoreRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newPortfolioMock(t)
	defer cleanup()
	repo := NewTestScoreRepository(db)

	taken := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO test_scores").
		WithArgs(sqlmock.AnyArg(), "u1", models.TestTypeSAT, 1390.0, taken, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	score := &models.TestScore{UserID: "u1", TestType: models.TestTypeSAT, Score: 1390, TakenAt: taken}
	require.NoError(t, repo.Create(context.Background(), score))
	assert.NotEmpty(t, score.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
