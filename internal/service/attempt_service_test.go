package service

import (
	"testing"

	"quizdeck_backend/internal/model"
	"quizdeck_backend/internal/repository"
	"quizdeck_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttemptService(t *testing.T) *AttemptService {
	t.Helper()
	return NewAttemptService(repository.NewAttemptRepository(t.TempDir()))
}

func gradingTest() *model.Test {
	return &model.Test{
		Title: "Arithmetic",
		Questions: []model.Question{
			{Question: "1+1?", Options: []string{"1", "2"}, CorrectIndex: 1},
			{Question: "2+2?", Options: []string{"4", "5"}, CorrectIndex: 0},
			{Question: "3+3?", Options: []string{"5", "6"}, CorrectIndex: 1, Explanation: "six"},
		},
	}
}

func intp(v int) *int { return &v }

func TestSubmitGradesSelections(t *testing.T) {
	svc := newAttemptService(t)

	// Right, wrong, unanswered.
	attempt, err := svc.Submit(3, gradingTest(), []*int{intp(1), intp(1), nil})
	require.NoError(t, err)

	assert.NotEmpty(t, attempt.ID)
	assert.Equal(t, 3, attempt.TestID)
	assert.Equal(t, "Arithmetic", attempt.TestTitle)
	assert.Equal(t, 1, attempt.Score)
	assert.Equal(t, 3, attempt.Total)

	require.Len(t, attempt.Answers, 3)
	assert.True(t, attempt.Answers[0].IsCorrect)
	assert.False(t, attempt.Answers[1].IsCorrect)
	assert.False(t, attempt.Answers[2].IsCorrect)
	assert.Nil(t, attempt.Answers[2].Selected)
	assert.Equal(t, 1, attempt.Answers[2].Correct)
	assert.Equal(t, "six", attempt.Answers[2].Explanation)
}

func TestSubmitToleratesSelectionLengthMismatch(t *testing.T) {
	svc := newAttemptService(t)

	// Too short: missing entries are unanswered.
	short, err := svc.Submit(0, gradingTest(), []*int{intp(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, short.Score)
	assert.Equal(t, 3, short.Total)

	// Too long: extras are ignored.
	long, err := svc.Submit(0, gradingTest(), []*int{intp(1), intp(0), intp(1), intp(0), intp(0)})
	require.NoError(t, err)
	assert.Equal(t, 3, long.Score)
	assert.Equal(t, 3, long.Total)
}

func TestGetAttemptFallsBackToLedger(t *testing.T) {
	svc := newAttemptService(t)

	attempt, err := svc.Submit(0, gradingTest(), nil)
	require.NoError(t, err)

	// Cache hit.
	got, err := svc.GetAttempt(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, got.ID)

	// Ledger hit after the cache forgets.
	svc.cache.Clear()
	got, err = svc.GetAttempt(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, got.ID)

	_, err = svc.GetAttempt("no-such-id")
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestListAttemptsNewestFirst(t *testing.T) {
	svc := newAttemptService(t)

	first, err := svc.Submit(0, gradingTest(), nil)
	require.NoError(t, err)
	second, err := svc.Submit(1, gradingTest(), nil)
	require.NoError(t, err)

	list, err := svc.ListAttempts()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestLedgerDropsOldestBeyondCap(t *testing.T) {
	svc := newAttemptService(t)
	test := &model.Test{Title: "Tiny", Questions: []model.Question{
		{Question: "?", Options: []string{"a", "b"}, CorrectIndex: 0},
	}}

	var oldest string
	for i := 0; i < maxLedgerSize+5; i++ {
		a, err := svc.Submit(0, test, nil)
		require.NoError(t, err)
		if i == 0 {
			oldest = a.ID
		}
	}

	list, err := svc.ListAttempts()
	require.NoError(t, err)
	assert.Len(t, list, maxLedgerSize)

	svc.cache.Clear()
	_, err = svc.GetAttempt(oldest)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestDeleteAttempt(t *testing.T) {
	svc := newAttemptService(t)

	attempt, err := svc.Submit(0, gradingTest(), nil)
	require.NoError(t, err)

	removed, err := svc.DeleteAttempt(attempt.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = svc.GetAttempt(attempt.ID)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)

	removed, err = svc.DeleteAttempt(attempt.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestClearAttemptsReportsPriorCount(t *testing.T) {
	svc := newAttemptService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(0, gradingTest(), nil)
		require.NoError(t, err)
	}

	count, err := svc.ClearAttempts()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	list, err := svc.ListAttempts()
	require.NoError(t, err)
	assert.Empty(t, list)

	count, err = svc.ClearAttempts()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
