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

const courseColumns = `id, user_id, name, year, semester, level, grade, created_at, updated_at`

// CourseRepository handles course persistence.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns the user's courses ordered chronologically.
func (r *CourseRepository) List(ctx context.Context, userID string) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE user_id = $1
        ORDER BY year ASC, CASE semester WHEN 'Fall' THEN 1 WHEN 'Winter' THEN 2 WHEN 'Spring' THEN 3 ELSE 4 END, name ASC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, userID); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// ListUserIDs returns every user owning at least one course.
func (r *CourseRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT DISTINCT user_id FROM courses ORDER BY user_id`); err != nil {
		return nil, fmt.Errorf("list course owners: %w", err)
	}
	return ids, nil
}

// FindByID returns a course owned by the user. sql.ErrNoRows is returned untouched.
func (r *CourseRepository) FindByID(ctx context.Context, userID, id string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1 AND user_id = $2`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	return &course, nil
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	const query = `INSERT INTO courses (id, user_id, name, year, semester, level, grade, created_at, updated_at)
        VALUES (:id, :user_id, :name, :year, :semester, :level, :grade, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update persists editable course fields.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET name = :name, year = :year, semester = :semester, level = :level, grade = :grade, updated_at = :updated_at
        WHERE id = :id AND user_id = :user_id`
	res, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return expectAffected(res)
}

// UpdateGrade writes the derived grade of a course. A nil grade clears it.
func (r *CourseRepository) UpdateGrade(ctx context.Context, id string, grade *float64) error {
	const query = `UPDATE courses SET grade = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, grade, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update course grade: %w", err)
	}
	return expectAffected(res)
}

// Delete removes a course with its assignments and weights.
func (r *CourseRepository) Delete(ctx context.Context, userID, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete course: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE course_id = $1 AND user_id = $2`, id, userID); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("delete course assignments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM course_weights WHERE course_id = $1`, id); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("delete course weights: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("delete course: %w", err)
	}
	if err := expectAffected(res); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete course: %w", err)
	}
	return nil
}

// Weights returns the category weight overrides for a course.
func (r *CourseRepository) Weights(ctx context.Context, courseID string) ([]models.CourseWeight, error) {
	const query = `SELECT course_id, assignment_type, weight FROM course_weights WHERE course_id = $1 ORDER BY assignment_type`
	var weights []models.CourseWeight
	if err := r.db.SelectContext(ctx, &weights, query, courseID); err != nil {
		return nil, fmt.Errorf("list course weights: %w", err)
	}
	return weights, nil
}

// ReplaceWeights swaps the full set of overrides for a course.
func (r *CourseRepository) ReplaceWeights(ctx context.Context, courseID string, weights []models.CourseWeight) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace weights: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM course_weights WHERE course_id = $1`, courseID); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("clear course weights: %w", err)
	}
	for i := range weights {
		weights[i].CourseID = courseID
		const query = `INSERT INTO course_weights (course_id, assignment_type, weight) VALUES (:course_id, :assignment_type, :weight)`
		if _, err := tx.NamedExecContext(ctx, query, weights[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("insert course weight: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit course weights: %w", err)
	}
	return nil
}

func expectAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
