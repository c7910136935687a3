package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/nuuxixv/MindConnect/internal/metrics"
	"github.com/nuuxixv/MindConnect/internal/models"

	lru "github.com/hashicorp/golang-lru/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestDetail is a test with its questions in presentation order.
type TestDetail struct {
	models.Test
	Questions []models.Question `json:"questions"`
}

type SubmitInput struct {
	TestID    uint
	UserID    string
	ProfileID uint
	Answers   map[string]json.RawMessage
	Summary   *string
}

type AssessmentOptions struct {
	// StrictQuestions rejects answers keyed by ids that are not questions of
	// the submitted test.
	StrictQuestions bool
	CacheSize       int
	Metrics         *metrics.Metrics
	Logger          *slog.Logger
}

type AssessmentService struct {
	db      *gorm.DB
	cache   *lru.Cache[uint, *TestDetail]
	strict  bool
	metrics *metrics.Metrics
	log     *slog.Logger
	now     func() time.Time
}

func NewAssessmentService(db *gorm.DB, opts AssessmentOptions) (*AssessmentService, error) {
	s := &AssessmentService{
		db:      db,
		strict:  opts.StrictQuestions,
		metrics: opts.Metrics,
		log:     opts.Logger,
		now:     time.Now,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[uint, *TestDetail](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create catalog cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

func (s *AssessmentService) ListTests(ctx context.Context) ([]models.Test, error) {
	var tests []models.Test
	err := s.db.WithContext(ctx).
		Where("is_public = ?", true).
		Order("id ASC").
		Find(&tests).Error
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	return tests, nil
}

// GetTest returns the test and its questions ordered by position. Tests are
// immutable once seeded, so found entries are cached.
func (s *AssessmentService) GetTest(ctx context.Context, id uint) (*TestDetail, error) {
	if s.cache != nil {
		if detail, ok := s.cache.Get(id); ok {
			return detail, nil
		}
	}

	var test models.Test
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		First(&test).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("test")
	}
	if err != nil {
		return nil, fmt.Errorf("load test %d: %w", id, err)
	}

	questions := test.Questions
	if questions == nil {
		questions = []models.Question{}
	}
	test.Questions = nil
	detail := &TestDetail{Test: test, Questions: questions}
	if s.cache != nil {
		s.cache.Add(id, detail)
	}
	return detail, nil
}

// InvalidateCatalog drops every cached test, used after seeding.
func (s *AssessmentService) InvalidateCatalog() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

// Submit validates an answer set, scores it and stores the result.
func (s *AssessmentService) Submit(ctx context.Context, in SubmitInput) (*models.TestResult, error) {
	result, err := s.submit(ctx, in)
	switch {
	case err == nil:
		s.metrics.Submission("created")
	case isValidation(err):
		s.metrics.Submission("rejected")
	case errors.Is(err, ErrNotFound):
		s.metrics.Submission("not_found")
	default:
		s.metrics.Submission("error")
	}
	return result, err
}

func (s *AssessmentService) submit(ctx context.Context, in SubmitInput) (*models.TestResult, error) {
	verr := &ValidationError{}
	if in.ProfileID == 0 {
		verr.Add("profileId", "is required")
	}
	answers, aerr := ParseAnswers(in.Answers)
	if aerr != nil {
		verr.Fields = append(verr.Fields, aerr.Fields...)
	}
	score := Total(answers)
	if aerr == nil && !score.Finite() {
		verr.Add("answers", "sum is out of range")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	test, err := s.GetTest(ctx, in.TestID)
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	err = s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", in.ProfileID, in.UserID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewValidationError("profileId", "profile not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	if s.strict {
		if err := checkQuestions(test, answers); err != nil {
			return nil, err
		}
	}

	result := models.TestResult{
		UserID:      in.UserID,
		ProfileID:   profile.ID,
		TestID:      test.ID,
		Answers:     datatypes.NewJSONType(answers),
		Score:       datatypes.NewJSONType(score),
		Summary:     in.Summary,
		ConductedAt: s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&result).Error; err != nil {
		return nil, fmt.Errorf("create result: %w", err)
	}
	s.log.Info("test result stored",
		"result_id", result.ID,
		"test_id", result.TestID,
		"profile_id", result.ProfileID,
		"total", result.Score.Data().Total,
	)
	return &result, nil
}

func checkQuestions(test *TestDetail, answers map[string]float64) error {
	known := make(map[string]struct{}, len(test.Questions))
	for _, q := range test.Questions {
		known[strconv.FormatUint(uint64(q.ID), 10)] = struct{}{}
	}
	verr := &ValidationError{}
	for _, id := range sortedKeys(answers) {
		if _, ok := known[id]; !ok {
			verr.Add("answers."+id, "is not a question of test %d", test.ID)
		}
	}
	return verr.Err()
}

// ListResults returns the caller's results, newest first.
func (s *AssessmentService) ListResults(ctx context.Context, userID string) ([]models.TestResult, error) {
	var results []models.TestResult
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Test").
		Preload("Profile").
		Order("conducted_at DESC, id DESC").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return results, nil
}

// GetResult returns one result. Results owned by someone else are forbidden
// rather than hidden.
func (s *AssessmentService) GetResult(ctx context.Context, userID string, id uint) (*models.TestResult, error) {
	var result models.TestResult
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		Preload("Test").
		Preload("Profile").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("result")
	}
	if err != nil {
		return nil, fmt.Errorf("load result %d: %w", id, err)
	}
	if result.UserID != userID {
		return nil, ErrForbidden
	}
	return &result, nil
}

func isValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
