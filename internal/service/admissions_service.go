package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/grading"
	"github.com/noah-isme/portfolio-api/internal/models"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
)

type universityReader interface {
	FindByID(ctx context.Context, id string) (*models.University, error)
	ListTargets(ctx context.Context, userID string) ([]models.University, error)
}

type testScoreRepository interface {
	List(ctx context.Context, userID string) ([]models.TestScore, error)
	Create(ctx context.Context, score *models.TestScore) error
	BestScore(ctx context.Context, userID string, testType models.TestType) (*float64, error)
}

// AdmissionsService classifies universities by admission difficulty for a user.
type AdmissionsService struct {
	courses      courseLister
	universities universityReader
	scores       testScoreRepository
	logger       *zap.Logger
}

// NewAdmissionsService constructs AdmissionsService.
func NewAdmissionsService(courses courseLister, universities universityReader, scores testScoreRepository, logger *zap.Logger) *AdmissionsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdmissionsService{courses: courses, universities: universities, scores: scores, logger: logger}
}

// Assess classifies a single university.
func (s *AdmissionsService) Assess(ctx context.Context, userID, universityID string) (*dto.AdmissionRiskResponse, error) {
	uni, err := s.universities.FindByID(ctx, universityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "university not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load university")
	}
	gpa, sat, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := assessUniversity(*uni, gpa, sat)
	return &result, nil
}

// AssessAll classifies every university on the user's target list.
func (s *AdmissionsService) AssessAll(ctx context.Context, userID string) ([]dto.AdmissionRiskResponse, error) {
	unis, err := s.universities.ListTargets(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list target universities")
	}
	results := make([]dto.AdmissionRiskResponse, 0, len(unis))
	if len(unis) == 0 {
		return results, nil
	}
	gpa, sat, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, uni := range unis {
		results = append(results, assessUniversity(uni, gpa, sat))
	}
	return results, nil
}

func (s *AdmissionsService) profile(ctx context.Context, userID string) (float64, *float64, error) {
	courses, err := s.courses.List(ctx, userID)
	if err != nil {
		return 0, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	sat, err := s.scores.BestScore(ctx, userID, models.TestTypeSAT)
	if err != nil {
		return 0, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load test scores")
	}
	gpa := grading.StatsGPA(models.GradingCourses(courses))
	s.logger.Debug("admissions profile", zap.String("user_id", userID), zap.Float64("gpa", gpa), zap.Bool("has_sat", sat != nil))
	return gpa, sat, nil
}

func assessUniversity(uni models.University, gpa float64, sat *float64) dto.AdmissionRiskResponse {
	return dto.AdmissionRiskResponse{
		UniversityID:   uni.ID,
		UniversityName: uni.Name,
		StudentGPA:     gpa,
		StudentSAT:     sat,
		Assessment:     grading.EstimateRiskDetailed(gpa, sat, uni.Stats()),
	}
}

const dateLayout = "2006-01-02"

// TestScoreRequest records a standardized test result.
type TestScoreRequest struct {
	TestType models.TestType `json:"test_type" validate:"required,oneof=SAT ACT"`
	Score    float64         `json:"score" validate:"required,gt=0"`
	TakenAt  string          `json:"taken_at" validate:"required,datetime=2006-01-02"`
}

// TestScoreService manages a user's standardized test results.
type TestScoreService struct {
	scores    testScoreRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTestScoreService constructs TestScoreService.
func NewTestScoreService(scores testScoreRepository, validate *validator.Validate, logger *zap.Logger) *TestScoreService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TestScoreService{scores: scores, validator: validate, logger: logger}
}

// List returns the user's test scores.
func (s *TestScoreService) List(ctx context.Context, userID string) ([]models.TestScore, error) {
	scores, err := s.scores.List(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list test scores")
	}
	return scores, nil
}

// Create validates and stores a test score.
func (s *TestScoreService) Create(ctx context.Context, userID string, req TestScoreRequest) (*models.TestScore, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid test score payload")
	}
	if !scoreInRange(req.TestType, req.Score) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "score outside the range of the test")
	}
	takenAt, err := time.Parse(dateLayout, req.TakenAt)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid taken_at")
	}
	score := &models.TestScore{UserID: userID, TestType: req.TestType, Score: req.Score, TakenAt: takenAt}
	if err := s.scores.Create(ctx, score); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create test score")
	}
	return score, nil
}

func scoreInRange(testType models.TestType, score float64) bool {
	switch testType {
	case models.TestTypeSAT:
		return score >= 400 && score <= 1600
	case models.TestTypeACT:
		return score >= 1 && score <= 36
	default:
		return false
	}
}
