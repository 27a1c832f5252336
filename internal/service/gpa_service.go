package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/grading"
	"github.com/noah-isme/portfolio-api/internal/models"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
)

type courseLister interface {
	List(ctx context.Context, userID string) ([]models.Course, error)
}

// GPAService computes GPA summaries over a user's stored courses.
type GPAService struct {
	courses courseLister
	cache   *CacheService
	ttl     time.Duration
	logger  *zap.Logger
}

// NewGPAService constructs GPAService. A nil cache disables caching.
func NewGPAService(courses courseLister, cache *CacheService, ttl time.Duration, logger *zap.Logger) *GPAService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GPAService{courses: courses, cache: cache, ttl: ttl, logger: logger}
}

// Summary returns the user's GPA overview and whether it was served from cache.
// Summaries are cached under the user's current generation, so a write that
// races an invalidation lands on a key no reader asks for again.
func (s *GPAService) Summary(ctx context.Context, userID string) (*dto.GPASummaryResponse, bool, error) {
	gen, cacheable := s.cache.Generation(ctx, gpaGenerationKey(userID))
	key := gpaSummaryKey(userID, gen)
	if cacheable {
		var cached dto.GPASummaryResponse
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	courses, err := s.courses.List(ctx, userID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	summary := BuildGPASummary(courses)

	if !cacheable {
		return summary, false, nil
	}
	if err := s.cache.Set(ctx, key, summary, s.ttl); err != nil {
		s.logger.Debug("gpa summary not cached", zap.String("user_id", userID), zap.Error(err))
	}
	return summary, false, nil
}

// BuildGPASummary folds stored courses into the summary payload.
func BuildGPASummary(courses []models.Course) *dto.GPASummaryResponse {
	records := models.GradingCourses(courses)
	graded := 0
	for _, c := range records {
		if c.Graded() {
			graded++
		}
	}
	return &dto.GPASummaryResponse{
		Unweighted:    grading.UnweightedGPA(records),
		Weighted:      grading.WeightedGPA(records),
		Trend:         grading.GPATrend(records),
		GradedCourses: graded,
		TotalCourses:  len(records),
	}
}

func gpaSummaryKey(userID string, gen int64) string {
	return fmt.Sprintf("gpa:summary:%s:%d", userID, gen)
}

func gpaGenerationKey(userID string) string {
	return fmt.Sprintf("gpa:generation:%s", userID)
}

// invalidateGPASummary advances the user's summary generation after a course
// or assignment mutation and drops the summary cached under the previous one.
// Failures are logged, not returned.
func invalidateGPASummary(ctx context.Context, cache *CacheService, logger *zap.Logger, userID string) {
	gen, err := cache.Bump(ctx, gpaGenerationKey(userID))
	if err != nil {
		logger.Warn("failed to invalidate gpa summary", zap.String("user_id", userID), zap.Error(err))
		return
	}
	if gen == 0 {
		return
	}
	if err := cache.Delete(ctx, gpaSummaryKey(userID, gen-1)); err != nil {
		logger.Warn("failed to drop previous gpa summary", zap.String("user_id", userID), zap.Error(err))
	}
}
