package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/portfolio-api/internal/grading"
	"github.com/noah-isme/portfolio-api/internal/models"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, userID string) ([]models.Course, error)
	FindByID(ctx context.Context, userID, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, userID, id string) error
}

// CourseRequest is the payload for creating or replacing a course.
type CourseRequest struct {
	Name     string              `json:"name" validate:"required,max=200"`
	Year     int                 `json:"year" validate:"required,min=9,max=2100"`
	Semester grading.Semester    `json:"semester" validate:"required,oneof=Fall Spring Summer Winter"`
	Level    grading.CourseLevel `json:"level" validate:"required,oneof=Regular Honors AP IB DualEnrollment"`
	Grade    *float64            `json:"grade" validate:"omitempty,min=0,max=100"`
}

// CourseService manages a user's courses.
type CourseService struct {
	courses   courseRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(courses courseRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{courses: courses, cache: cache, validator: validate, logger: logger}
}

// List returns the user's courses.
func (s *CourseService) List(ctx context.Context, userID string) ([]models.Course, error) {
	courses, err := s.courses.List(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// Get returns one course owned by the user.
func (s *CourseService) Get(ctx context.Context, userID, id string) (*models.Course, error) {
	return loadCourse(ctx, s.courses, userID, id)
}

// Create validates and stores a new course.
func (s *CourseService) Create(ctx context.Context, userID string, req CourseRequest) (*models.Course, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	course := &models.Course{
		UserID:   userID,
		Name:     req.Name,
		Year:     req.Year,
		Semester: req.Semester,
		Level:    req.Level,
		Grade:    req.Grade,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	invalidateGPASummary(ctx, s.cache, s.logger, userID)
	return course, nil
}

// Update replaces the editable fields of a course.
func (s *CourseService) Update(ctx context.Context, userID, id string, req CourseRequest) (*models.Course, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	course, err := loadCourse(ctx, s.courses, userID, id)
	if err != nil {
		return nil, err
	}
	course.Name = req.Name
	course.Year = req.Year
	course.Semester = req.Semester
	course.Level = req.Level
	course.Grade = req.Grade
	if err := s.courses.Update(ctx, course); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	invalidateGPASummary(ctx, s.cache, s.logger, userID)
	return course, nil
}

// Delete removes a course together with its assignments.
func (s *CourseService) Delete(ctx context.Context, userID, id string) error {
	if err := s.courses.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	invalidateGPASummary(ctx, s.cache, s.logger, userID)
	return nil
}

func (s *CourseService) validate(req CourseRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	// grade levels 9-12 or a calendar year
	if req.Year > 12 && req.Year < 1900 {
		return appErrors.Clone(appErrors.ErrValidation, "year must be a grade level (9-12) or a calendar year")
	}
	return nil
}

type courseFinder interface {
	FindByID(ctx context.Context, userID, id string) (*models.Course, error)
}

func loadCourse(ctx context.Context, courses courseFinder, userID, id string) (*models.Course, error) {
	course, err := courses.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}
