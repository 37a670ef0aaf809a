package service

import (
	"sync"
	"time"

	"quizdeck_backend/internal/model"
	"quizdeck_backend/internal/repository"
	"quizdeck_backend/internal/util"

	"github.com/google/uuid"
)

const (
	// maxLedgerSize is the hard retention cap; the oldest attempts are
	// silently dropped once it is exceeded.
	maxLedgerSize = 200

	// resultCacheSize bounds the post-submission lookup cache.
	resultCacheSize = 50
)

// AttemptService is the append-only attempt ledger plus its result cache.
// Attempts are immutable once recorded.
type AttemptService struct {
	repo  *repository.AttemptRepository
	cache *ResultCache
	mu    sync.Mutex
}

func NewAttemptService(repo *repository.AttemptRepository) *AttemptService {
	return &AttemptService{
		repo:  repo,
		cache: NewResultCache(resultCacheSize),
	}
}

// Submit grades the selections against the test, records the attempt in the
// ledger and caches it for immediate lookup. selections holds one entry per
// question; nil means unanswered. Extra entries are ignored, missing ones
// count as unanswered.
func (s *AttemptService) Submit(testID int, test *model.Test, selections []*int) (*model.Attempt, error) {
	answers := make([]model.AnswerRecord, 0, len(test.Questions))
	score := 0

	for i, q := range test.Questions {
		var selected *int
		if i < len(selections) {
			selected = selections[i]
		}

		isCorrect := selected != nil && *selected == q.CorrectIndex
		if isCorrect {
			score++
		}

		answers = append(answers, model.AnswerRecord{
			Question:    q.Question,
			Options:     q.Options,
			Selected:    selected,
			Correct:     q.CorrectIndex,
			IsCorrect:   isCorrect,
			Explanation: q.Explanation,
			Image:       q.Image,
		})
	}

	attempt := &model.Attempt{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		TestID:    testID,
		TestTitle: test.Title,
		Score:     score,
		Total:     len(test.Questions),
		Answers:   answers,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attempts, err := s.repo.Load()
	if err != nil {
		return nil, err
	}

	attempts = append(attempts, *attempt)
	if len(attempts) > maxLedgerSize {
		attempts = attempts[len(attempts)-maxLedgerSize:]
	}
	if err := s.repo.Save(attempts); err != nil {
		return nil, err
	}

	s.cache.Put(attempt)
	return attempt, nil
}

// GetAttempt serves from the cache first and falls back to the ledger.
func (s *AttemptService) GetAttempt(id string) (*model.Attempt, error) {
	if a, ok := s.cache.Get(id); ok {
		return a, nil
	}

	attempts, err := s.repo.Load()
	if err != nil {
		return nil, err
	}
	for i := range attempts {
		if attempts[i].ID == id {
			return &attempts[i], nil
		}
	}
	return nil, util.ErrAttemptNotFound
}

// ListAttempts returns the ledger newest first.
func (s *AttemptService) ListAttempts() ([]model.Attempt, error) {
	attempts, err := s.repo.Load()
	if err != nil {
		return nil, err
	}

	out := make([]model.Attempt, len(attempts))
	for i := range attempts {
		out[len(attempts)-1-i] = attempts[i]
	}
	return out, nil
}

// DeleteAttempt removes one attempt from ledger and cache. Deleting an
// unknown id is not an error; the return value reports whether anything was
// actually removed.
func (s *AttemptService) DeleteAttempt(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempts, err := s.repo.Load()
	if err != nil {
		return false, err
	}

	removed := false
	for i := range attempts {
		if attempts[i].ID == id {
			attempts = append(attempts[:i], attempts[i+1:]...)
			removed = true
			break
		}
	}

	if removed {
		if err := s.repo.Save(attempts); err != nil {
			return false, err
		}
	}
	s.cache.Remove(id)
	return removed, nil
}

// ClearAttempts empties ledger and cache and reports how many attempts were
// stored beforehand.
func (s *AttemptService) ClearAttempts() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempts, err := s.repo.Load()
	if err != nil {
		return 0, err
	}

	count := len(attempts)
	if err := s.repo.Save([]model.Attempt{}); err != nil {
		return 0, err
	}
	s.cache.Clear()
	return count, nil
}
