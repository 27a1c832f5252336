package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/portfolio-api/internal/models"
)

// UniversityRepository reads university statistics and a user's target list.
type UniversityRepository struct {
	db *sqlx.DB
}

// NewUniversityRepository creates a new university repository.
func NewUniversityRepository(db *sqlx.DB) *UniversityRepository {
	return &UniversityRepository{db: db}
}

// FindByID returns a university. sql.ErrNoRows is returned untouched.
func (r *UniversityRepository) FindByID(ctx context.Context, id string) (*models.University, error) {
	const query = `SELECT id, name, location, avg_gpa, avg_sat, acceptance_rate FROM universities WHERE id = $1`
	var uni models.University
	if err := r.db.GetContext(ctx, &uni, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get university: %w", err)
	}
	return &uni, nil
}

// ListTargets returns the universities the user is targeting.
func (r *UniversityRepository) ListTargets(ctx context.Context, userID string) ([]models.University, error) {
	const query = `SELECT u.id, u.name, u.location, u.avg_gpa, u.avg_sat, u.acceptance_rate
        FROM universities u
        JOIN user_universities uu ON uu.university_id = u.id
        WHERE uu.user_id = $1
        ORDER BY u.name`
	var unis []models.University
	if err := r.db.SelectContext(ctx, &unis, query, userID); err != nil {
		return nil, fmt.Errorf("list target universities: %w", err)
	}
	return unis, nil
}

// TestScoreRepository persists standardized test results.
type TestScoreRepository struct {
	db *sqlx.DB
}

// NewTestScoreRepository creates a new test score repository.
func NewTestScoreRepository(db *sqlx.DB) *TestScoreRepository {
	return &TestScoreRepository{db: db}
}

// List returns the user's test scores, newest first.
func (r *TestScoreRepository) List(ctx context.Context, userID string) ([]models.TestScore, error) {
	const query = `SELECT id, user_id, test_type, score, taken_at, created_at FROM test_scores WHERE user_id = $1 ORDER BY taken_at DESC`
	var scores []models.TestScore
	if err := r.db.SelectContext(ctx, &scores, query, userID); err != nil {
		return nil, fmt.Errorf("list test scores: %w", err)
	}
	return scores, nil
}

// Create inserts a test score.
func (r *TestScoreRepository) Create(ctx context.Context, score *models.TestScore) error {
	if score.ID == "" {
		score.ID = uuid.NewString()
	}
	score.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO test_scores (id, user_id, test_type, score, taken_at, created_at)
        VALUES (:id, :user_id, :test_type, :score, :taken_at, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, score); err != nil {
		return fmt.Errorf("create test score: %w", err)
	}
	return nil
}

// BestScore returns the highest score of a test type, or nil when none exists.
func (r *TestScoreRepository) BestScore(ctx context.Context, userID string, testType models.TestType) (*float64, error) {
	const query = `SELECT MAX(score) FROM test_scores WHERE user_id = $1 AND test_type = $2`
	var best sql.NullFloat64
	if err := r.db.GetContext(ctx, &best, query, userID, testType); err != nil {
		return nil, fmt.Errorf("best test score: %w", err)
	}
	if !best.Valid {
		return nil, nil
	}
	return &best.Float64, nil
}
