package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/portfolio-api/internal/models"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
)

func ptrFloat64(v float64) *float64 {
	return &v
}

type fakeCourseRepo struct {
	mu          sync.Mutex
	courses     map[string]models.Course
	weights     map[string][]models.CourseWeight
	gradeWrites int
	listErr     error
	gradeErr    error
}

func newFakeCourseRepo(courses ...models.Course) *fakeCourseRepo {
	repo := &fakeCourseRepo{courses: make(map[string]models.Course), weights: make(map[string][]models.CourseWeight)}
	for _, c := range courses {
		repo.courses[c.ID] = c
	}
	return repo
}

func (f *fakeCourseRepo) List(ctx context.Context, userID string) ([]models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []models.Course
	for _, c := range f.courses {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeCourseRepo) FindByID(ctx context.Context, userID, id string) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.courses[id]
	if !ok || c.UserID != userID {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if course.ID == "" {
		course.ID = "course-" + strings.ToLower(course.Name)
	}
	f.courses[course.ID] = *course
	return nil
}

func (f *fakeCourseRepo) Update(ctx context.Context, course *models.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.courses[course.ID]
	if !ok || existing.UserID != course.UserID {
		return sql.ErrNoRows
	}
	f.courses[course.ID] = *course
	return nil
}

func (f *fakeCourseRepo) Delete(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.courses[id]
	if !ok || existing.UserID != userID {
		return sql.ErrNoRows
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseRepo) UpdateGrade(ctx context.Context, id string, grade *float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gradeErr != nil {
		return f.gradeErr
	}
	c, ok := f.courses[id]
	if !ok {
		return sql.ErrNoRows
	}
	c.Grade = grade
	f.courses[id] = c
	f.gradeWrites++
	return nil
}

func (f *fakeCourseRepo) Weights(ctx context.Context, courseID string) ([]models.CourseWeight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.weights[courseID], nil
}

func (f *fakeCourseRepo) ReplaceWeights(ctx context.Context, courseID string, weights []models.CourseWeight) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.weights[courseID] = append([]models.CourseWeight(nil), weights...)
	return nil
}

func (f *fakeCourseRepo) grade(id string) *float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.courses[id].Grade
}

type fakeAssignmentRepo struct {
	mu          sync.Mutex
	assignments map[string]models.Assignment
	seq         int
}

func newFakeAssignmentRepo(assignments ...models.Assignment) *fakeAssignmentRepo {
	repo := &fakeAssignmentRepo{assignments: make(map[string]models.Assignment)}
	for _, a := range assignments {
		repo.assignments[a.ID] = a
	}
	return repo
}

func (f *fakeAssignmentRepo) ListByCourse(ctx context.Context, userID, courseID string) ([]models.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.Assignment
	for _, a := range f.assignments {
		if a.CourseID == courseID && a.UserID == userID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeAssignmentRepo) FindByID(ctx context.Context, userID, id string) (*models.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assignments[id]
	if !ok || a.UserID != userID {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if assignment.ID == "" {
		assignment.ID = "asg-new-" + string(rune('a'+f.seq))
	}
	f.assignments[assignment.ID] = *assignment
	return nil
}

func (f *fakeAssignmentRepo) Update(ctx context.Context, assignment *models.Assignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.assignments[assignment.ID]; !ok {
		return sql.ErrNoRows
	}
	f.assignments[assignment.ID] = *assignment
	return nil
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assignments[id]
	if !ok || a.UserID != userID {
		return sql.ErrNoRows
	}
	delete(f.assignments, id)
	return nil
}

type memoryCacheRepo struct {
	mu      sync.Mutex
	entries map[string][]byte
	deletes int
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: make(map[string][]byte)}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = raw
	return nil
}

func (m *memoryCacheRepo) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.entries, key)
		m.deletes++
	}
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func (m *memoryCacheRepo) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	if raw, ok := m.entries[key]; ok {
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, err
		}
	}
	n++
	raw, err := json.Marshal(n)
	if err != nil {
		return 0, err
	}
	m.entries[key] = raw
	return n, nil
}

func (m *memoryCacheRepo) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

type fakeUniversityRepo struct {
	universities map[string]models.University
	targets      map[string][]string
}

func (f *fakeUniversityRepo) FindByID(ctx context.Context, id string) (*models.University, error) {
	u, ok := f.universities[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (f *fakeUniversityRepo) ListTargets(ctx context.Context, userID string) ([]models.University, error) {
	var result []models.University
	for _, id := range f.targets[userID] {
		result = append(result, f.universities[id])
	}
	return result, nil
}

type fakeTestScoreRepo struct {
	scores []models.TestScore
}

func (f *fakeTestScoreRepo) List(ctx context.Context, userID string) ([]models.TestScore, error) {
	var result []models.TestScore
	for _, s := range f.scores {
		if s.UserID == userID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeTestScoreRepo) Create(ctx context.Context, score *models.TestScore) error {
	score.ID = "score-" + string(score.TestType)
	f.scores = append(f.scores, *score)
	return nil
}

func (f *fakeTestScoreRepo) BestScore(ctx context.Context, userID string, testType models.TestType) (*float64, error) {
	var best *float64
	for _, s := range f.scores {
		if s.UserID != userID || s.TestType != testType {
			continue
		}
		if best == nil || s.Score > *best {
			v := s.Score
			best = &v
		}
	}
	return best, nil
}
