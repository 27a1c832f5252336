package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/grading"
	"github.com/noah-isme/portfolio-api/internal/models"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
)

type assignmentRepository interface {
	ListByCourse(ctx context.Context, userID, courseID string) ([]models.Assignment, error)
	FindByID(ctx context.Context, userID, id string) (*models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, userID, id string) error
}

type courseGradeStore interface {
	FindByID(ctx context.Context, userID, id string) (*models.Course, error)
	UpdateGrade(ctx context.Context, id string, grade *float64) error
	Weights(ctx context.Context, courseID string) ([]models.CourseWeight, error)
	ReplaceWeights(ctx context.Context, courseID string, weights []models.CourseWeight) error
}

// AssignmentRequest is the payload for creating or replacing an assignment.
type AssignmentRequest struct {
	Name             string                 `json:"name" validate:"required,max=200"`
	AssignmentType   grading.AssignmentType `json:"assignment_type" validate:"required,oneof=Homework Quiz Test Project Lab Participation Midterm FinalExam Other"`
	TotalPoints      float64                `json:"total_points" validate:"gt=0"`
	EarnedPoints     *float64               `json:"earned_points" validate:"omitempty,min=0"`
	WeightPercentage float64                `json:"weight_percentage" validate:"min=0,max=100"`
	DueDate          *time.Time             `json:"due_date"`
}

// SetWeightsRequest replaces a course's category weight overrides.
type SetWeightsRequest struct {
	Weights map[grading.AssignmentType]float64 `json:"weights" validate:"dive,keys,oneof=Homework Quiz Test Project Lab Participation Midterm FinalExam Other,endkeys,min=0,max=100"`
}

// AssignmentService manages assignments and keeps the owning course's
// derived grade in step with them.
type AssignmentService struct {
	assignments assignmentRepository
	courses     courseGradeStore
	cache       *CacheService
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger

	locks sync.Map
}

// NewAssignmentService constructs AssignmentService.
func NewAssignmentService(assignments assignmentRepository, courses courseGradeStore, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{
		assignments: assignments,
		courses:     courses,
		cache:       cache,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
	}
}

// ListByCourse returns a course's assignments.
func (s *AssignmentService) ListByCourse(ctx context.Context, userID, courseID string) ([]models.Assignment, error) {
	if _, err := loadCourse(ctx, s.courses, userID, courseID); err != nil {
		return nil, err
	}
	assignments, err := s.assignments.ListByCourse(ctx, userID, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return assignments, nil
}

// Create stores an assignment and recomputes the course grade. The stored
// assignment is returned even when the recompute fails.
func (s *AssignmentService) Create(ctx context.Context, userID, courseID string, req AssignmentRequest) (*models.Assignment, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	course, err := loadCourse(ctx, s.courses, userID, courseID)
	if err != nil {
		return nil, err
	}
	assignment := &models.Assignment{CourseID: course.ID, UserID: userID}
	applyAssignmentRequest(assignment, req)

	unlock := s.lockCourse(course.ID)
	defer unlock()
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	s.settle(ctx, course)
	return assignment, nil
}

// Update replaces an assignment and recomputes the course grade.
func (s *AssignmentService) Update(ctx context.Context, userID, id string, req AssignmentRequest) (*models.Assignment, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	assignment, err := s.loadAssignment(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	course, err := loadCourse(ctx, s.courses, userID, assignment.CourseID)
	if err != nil {
		return nil, err
	}
	applyAssignmentRequest(assignment, req)

	unlock := s.lockCourse(course.ID)
	defer unlock()
	if err := s.assignments.Update(ctx, assignment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
	}
	s.settle(ctx, course)
	return assignment, nil
}

// Delete removes an assignment and recomputes the course grade.
func (s *AssignmentService) Delete(ctx context.Context, userID, id string) error {
	assignment, err := s.loadAssignment(ctx, userID, id)
	if err != nil {
		return err
	}
	course, err := loadCourse(ctx, s.courses, userID, assignment.CourseID)
	if err != nil {
		return err
	}

	unlock := s.lockCourse(course.ID)
	defer unlock()
	if err := s.assignments.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	s.settle(ctx, course)
	return nil
}

// Breakdown returns the live grade of a course with its boosted display value.
func (s *AssignmentService) Breakdown(ctx context.Context, userID, courseID string) (*dto.CourseBreakdownResponse, error) {
	course, err := loadCourse(ctx, s.courses, userID, courseID)
	if err != nil {
		return nil, err
	}
	breakdown, weights, err := s.calculate(ctx, course)
	if err != nil {
		return nil, err
	}
	display := grading.Round2(grading.LevelBoost(breakdown.CalculatedGrade, course.Level))
	return &dto.CourseBreakdownResponse{
		CourseID:     course.ID,
		Level:        course.Level,
		Breakdown:    breakdown,
		DisplayGrade: display,
		LetterGrade:  grading.LetterGrade(display),
		GradePoint:   grading.GradePoint(breakdown.CalculatedGrade),
		Weights:      weights,
	}, nil
}

// SetWeights replaces a course's weight overrides and recomputes its grade.
func (s *AssignmentService) SetWeights(ctx context.Context, userID, courseID string, req SetWeightsRequest) (*dto.CourseBreakdownResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidWeights.Code, appErrors.ErrInvalidWeights.Status, "weights must be known categories between 0 and 100")
	}
	course, err := loadCourse(ctx, s.courses, userID, courseID)
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(req.Weights))
	for category := range req.Weights {
		categories = append(categories, string(category))
	}
	sort.Strings(categories)
	rows := make([]models.CourseWeight, 0, len(categories))
	for _, category := range categories {
		t := grading.AssignmentType(category)
		rows = append(rows, models.CourseWeight{CourseID: course.ID, AssignmentType: t, Weight: req.Weights[t]})
	}

	unlock := s.lockCourse(course.ID)
	if err := s.courses.ReplaceWeights(ctx, course.ID, rows); err != nil {
		unlock()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store weights")
	}
	s.settle(ctx, course)
	unlock()
	return s.Breakdown(ctx, userID, courseID)
}

// Recompute refreshes the derived grade of one course. It returns the stored
// grade, nil when the course has no graded work.
func (s *AssignmentService) Recompute(ctx context.Context, userID, courseID string) (*float64, error) {
	course, err := loadCourse(ctx, s.courses, userID, courseID)
	if err != nil {
		return nil, err
	}
	unlock := s.lockCourse(course.ID)
	defer unlock()
	return s.recompute(ctx, course)
}

// settle recomputes the course grade after a committed write. A failed
// recompute does not undo the write: the stored grade stays at its previous
// value until the next recompute or a recalculation job refreshes it.
func (s *AssignmentService) settle(ctx context.Context, course *models.Course) {
	if _, err := s.recompute(ctx, course); err != nil {
		s.logger.Warn("course grade left stale after write",
			zap.String("course_id", course.ID),
			zap.String("user_id", course.UserID),
			zap.Error(err),
		)
	}
}

func (s *AssignmentService) recompute(ctx context.Context, course *models.Course) (*float64, error) {
	breakdown, _, err := s.calculate(ctx, course)
	if err != nil {
		s.metrics.RecordGradeRecompute(RecomputeFailed)
		return nil, err
	}
	var grade *float64
	outcome := RecomputeUngraded
	if breakdown.HasGradedWork() {
		value := grading.Round2(breakdown.CalculatedGrade)
		grade = &value
		outcome = RecomputeGraded
	}
	if err := s.courses.UpdateGrade(ctx, course.ID, grade); err != nil {
		s.metrics.RecordGradeRecompute(RecomputeFailed)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store course grade")
	}
	s.metrics.RecordGradeRecompute(outcome)
	course.Grade = grade
	invalidateGPASummary(ctx, s.cache, s.logger, course.UserID)
	s.logger.Debug("course grade recomputed",
		zap.String("course_id", course.ID),
		zap.String("outcome", outcome),
		zap.Float64("weight_used", breakdown.TotalWeightUsed),
	)
	return grade, nil
}

func (s *AssignmentService) calculate(ctx context.Context, course *models.Course) (grading.GradeBreakdown, grading.WeightConfig, error) {
	assignments, err := s.assignments.ListByCourse(ctx, course.UserID, course.ID)
	if err != nil {
		return grading.GradeBreakdown{}, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	stored, err := s.courses.Weights(ctx, course.ID)
	if err != nil {
		return grading.GradeBreakdown{}, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load weights")
	}
	weights := models.WeightConfigFrom(stored)
	return grading.Calculate(models.GradingAssignments(assignments), weights), weights, nil
}

func (s *AssignmentService) validate(req AssignmentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	if req.EarnedPoints != nil && *req.EarnedPoints > req.TotalPoints {
		return appErrors.Clone(appErrors.ErrValidation, "earned points cannot exceed total points")
	}
	return nil
}

func (s *AssignmentService) loadAssignment(ctx context.Context, userID, id string) (*models.Assignment, error) {
	assignment, err := s.assignments.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	return assignment, nil
}

// lockCourse serialises mutate-then-recompute sequences per course.
func (s *AssignmentService) lockCourse(courseID string) func() {
	value, _ := s.locks.LoadOrStore(courseID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func applyAssignmentRequest(assignment *models.Assignment, req AssignmentRequest) {
	assignment.Name = req.Name
	assignment.AssignmentType = req.AssignmentType
	assignment.TotalPoints = req.TotalPoints
	assignment.EarnedPoints = req.EarnedPoints
	assignment.WeightPercentage = req.WeightPercentage
	assignment.DueDate = req.DueDate
}
