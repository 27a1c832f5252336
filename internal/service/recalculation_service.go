package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/portfolio-api/internal/dto"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/jobs"
)

const recalculationJobType = "course_grade_recalculation"

type courseRecomputer interface {
	Recompute(ctx context.Context, userID, courseID string) (*float64, error)
}

type jobQueue interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(job jobs.Job) (jobs.Job, error)
}

// RecalculationConfig tunes the background worker pool.
type RecalculationConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
}

type recalculationPayload struct {
	UserID string
}

// RecalculationService recomputes every course grade of a user in the background.
type RecalculationService struct {
	courses    courseLister
	recomputer courseRecomputer
	metrics    *MetricsService
	logger     *zap.Logger
	queue      jobQueue
}

// NewRecalculationService wires the worker pool around the recompute hook.
func NewRecalculationService(courses courseLister, recomputer courseRecomputer, metrics *MetricsService, cfg RecalculationConfig, logger *zap.Logger) *RecalculationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &RecalculationService{courses: courses, recomputer: recomputer, metrics: metrics, logger: logger}
	svc.queue = jobs.NewQueue("recalculation", svc.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.BufferSize,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		OnResult:   svc.record,
		Logger:     logger,
	})
	return svc
}

// Start launches the workers.
func (s *RecalculationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *RecalculationService) Stop() {
	s.queue.Stop()
}

// Enqueue schedules a recalculation of all the user's courses.
func (s *RecalculationService) Enqueue(ctx context.Context, userID string) (*dto.RecalculationResponse, error) {
	job, err := s.queue.Enqueue(jobs.Job{Type: recalculationJobType, Payload: recalculationPayload{UserID: userID}})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "recalculation queue unavailable")
	}
	s.logger.Info("recalculation queued", zap.String("job_id", job.ID), zap.String("user_id", userID))
	return &dto.RecalculationResponse{JobID: job.ID, Status: "queued"}, nil
}

// RecalculateUser recomputes every course synchronously. The first failure is
// returned after all courses were attempted.
func (s *RecalculationService) RecalculateUser(ctx context.Context, userID string) (int, error) {
	courses, err := s.courses.List(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list courses for %s: %w", userID, err)
	}
	var (
		firstErr error
		done     int
	)
	for _, course := range courses {
		if _, err := s.recomputer.Recompute(ctx, userID, course.ID); err != nil {
			s.logger.Warn("course recompute failed", zap.String("course_id", course.ID), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		done++
	}
	return done, firstErr
}

func (s *RecalculationService) handle(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(recalculationPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for job %s", job.Payload, job.ID)
	}
	_, err := s.RecalculateUser(ctx, payload.UserID)
	return err
}

func (s *RecalculationService) record(job jobs.Job, err error) {
	s.metrics.RecordRecalculationJob(err == nil)
	if err == nil {
		s.logger.Info("recalculation finished", zap.String("job_id", job.ID), zap.Int("attempts", job.Attempt+1))
	}
}
