package service

import (
	"context"
	"strings"
	"sync"

	"quizdeck_backend/internal/model"
	"quizdeck_backend/internal/repository"
	"quizdeck_backend/internal/util"
	"quizdeck_backend/pkg/logger"

	"go.uber.org/zap"
)

// QuizService owns the test collection. Tests are addressed positionally.
// The mutex serializes writers; the persistence layer itself assumes a
// single writer per save.
type QuizService struct {
	repo    *repository.CollectionRepository
	storage *StorageService
	mu      sync.Mutex
}

func NewQuizService(repo *repository.CollectionRepository, storage *StorageService) *QuizService {
	return &QuizService{repo: repo, storage: storage}
}

func (s *QuizService) ListTests() ([]model.TestSummary, error) {
	col, err := s.repo.Load()
	if err != nil {
		return nil, err
	}

	summaries := make([]model.TestSummary, 0, len(col.Tests))
	for i, t := range col.Tests {
		title := t.Title
		if title == "" {
			title = "Untitled"
		}
		summaries = append(summaries, model.TestSummary{
			ID:            i,
			Title:         title,
			QuestionCount: len(t.Questions),
		})
	}
	return summaries, nil
}

func (s *QuizService) GetTest(id int) (*model.Test, error) {
	col, err := s.repo.Load()
	if err != nil {
		return nil, err
	}
	if id < 0 || id >= len(col.Tests) {
		return nil, util.ErrTestNotFound
	}
	return &col.Tests[id], nil
}

func (s *QuizService) CreateTest(t model.Test) (int, error) {
	normalized, err := normalizeTest(t)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, err := s.repo.Load()
	if err != nil {
		return 0, err
	}
	col.Tests = append(col.Tests, *normalized)
	if err := s.repo.Save(col); err != nil {
		return 0, err
	}
	return len(col.Tests) - 1, nil
}

func (s *QuizService) UpdateTest(id int, t model.Test) error {
	normalized, err := normalizeTest(t)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, err := s.repo.Load()
	if err != nil {
		return err
	}
	if id < 0 || id >= len(col.Tests) {
		return util.ErrTestNotFound
	}
	col.Tests[id] = *normalized
	return s.repo.Save(col)
}

// DeleteTest removes the test at id and deletes the media files its
// questions reference. References are treated as 1:1 owned; a file shared
// with another test after a byte-identical import collision will break that
// other reference. Later ids shift down by one.
func (s *QuizService) DeleteTest(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, err := s.repo.Load()
	if err != nil {
		return err
	}
	if id < 0 || id >= len(col.Tests) {
		return util.ErrTestNotFound
	}

	removed := col.Tests[id]
	col.Tests = append(col.Tests[:id], col.Tests[id+1:]...)
	if err := s.repo.Save(col); err != nil {
		return err
	}

	for _, q := range removed.Questions {
		if q.Image == "" {
			continue
		}
		if err := s.storage.Delete(ctx, q.Image); err != nil {
			logger.Log.Warn("failed to delete test image",
				zap.String("image", q.Image), zap.Error(err))
		}
	}
	return nil
}

// ReplaceCollection swaps in a whole new collection; used by the backup
// reconciler, which does its merging under this service's writer lock.
func (s *QuizService) ReplaceCollection(col *model.Collection) error {
	return s.repo.Save(col)
}

func (s *QuizService) LoadCollection() (*model.Collection, error) {
	return s.repo.Load()
}

// Lock exposes the writer lock so multi-step operations (import) can hold it
// across their read-merge-write cycle.
func (s *QuizService) Lock() { s.mu.Lock() }

func (s *QuizService) Unlock() { s.mu.Unlock() }

// normalizeTest applies editor semantics: trim everything, drop empty
// questions and options, clamp the correct index into range. Structural
// violations surface as ValidationError naming the offending field.
func normalizeTest(t model.Test) (*model.Test, error) {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		return nil, util.NewValidationError("title", "must not be empty")
	}

	questions := make([]model.Question, 0, len(t.Questions))
	for i, q := range t.Questions {
		text := strings.TrimSpace(q.Question)
		if text == "" {
			continue
		}

		options := make([]string, 0, len(q.Options))
		for _, o := range q.Options {
			o = strings.TrimSpace(o)
			if o != "" {
				options = append(options, o)
			}
		}
		if len(options) < 2 {
			return nil, util.NewValidationError("questions", "question %d needs at least 2 non-empty options", i)
		}

		correct := q.CorrectIndex
		if correct < 0 {
			correct = 0
		}
		if correct >= len(options) {
			correct = len(options) - 1
		}

		questions = append(questions, model.Question{
			Question:     text,
			Options:      options,
			CorrectIndex: correct,
			Explanation:  strings.TrimSpace(q.Explanation),
			Image:        strings.TrimSpace(q.Image),
		})
	}

	return &model.Test{Title: title, Questions: questions}, nil
}
