package service

import (
	"context"
	"testing"

	"quizdeck_backend/internal/config"
	"quizdeck_backend/internal/model"
	"quizdeck_backend/internal/repository"
	"quizdeck_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizFixture(t *testing.T) (*QuizService, *StorageService) {
	t.Helper()
	storage := &StorageService{Provider: &LocalStorageProvider{
		Config: &config.StorageConfig{LocalPath: t.TempDir()},
	}}
	return NewQuizService(repository.NewCollectionRepository(t.TempDir()), storage), storage
}

func TestCreateTestNormalizes(t *testing.T) {
	svc, _ := newQuizFixture(t)

	id, err := svc.CreateTest(model.Test{
		Title: "  Trimmed  ",
		Questions: []model.Question{
			{Question: "   ", Options: []string{"a", "b"}},
			{Question: " Q1 ", Options: []string{" a ", "", "b"}, CorrectIndex: 7, Explanation: " why "},
			{Question: "Q2", Options: []string{"x", "y"}, CorrectIndex: -3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	got, err := svc.GetTest(id)
	require.NoError(t, err)
	assert.Equal(t, "Trimmed", got.Title)

	// The blank question is dropped entirely.
	require.Len(t, got.Questions, 2)

	q1 := got.Questions[0]
	assert.Equal(t, "Q1", q1.Question)
	assert.Equal(t, []string{"a", "b"}, q1.Options)
	assert.Equal(t, 1, q1.CorrectIndex, "out-of-range index clamps to the last option")
	assert.Equal(t, "why", q1.Explanation)

	assert.Equal(t, 0, got.Questions[1].CorrectIndex, "negative index clamps to zero")
}

func TestCreateTestValidation(t *testing.T) {
	svc, _ := newQuizFixture(t)

	_, err := svc.CreateTest(model.Test{Title: "   "})
	assert.True(t, util.IsValidationError(err))

	_, err = svc.CreateTest(model.Test{
		Title:     "One option",
		Questions: []model.Question{{Question: "Q", Options: []string{"only", "  "}}},
	})
	assert.True(t, util.IsValidationError(err))
}

func TestListTestsUsesPositionalIDs(t *testing.T) {
	svc, _ := newQuizFixture(t)

	_, err := svc.CreateTest(model.Test{Title: "First", Questions: []model.Question{
		{Question: "Q", Options: []string{"a", "b"}},
	}})
	require.NoError(t, err)
	_, err = svc.CreateTest(model.Test{Title: "Second"})
	require.NoError(t, err)

	summaries, err := svc.ListTests()
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, 0, summaries[0].ID)
	assert.Equal(t, "First", summaries[0].Title)
	assert.Equal(t, 1, summaries[0].QuestionCount)
	assert.Equal(t, 1, summaries[1].ID)
	assert.Equal(t, 0, summaries[1].QuestionCount)
}

func TestGetTestOutOfRange(t *testing.T) {
	svc, _ := newQuizFixture(t)

	_, err := svc.GetTest(0)
	assert.ErrorIs(t, err, util.ErrTestNotFound)
	_, err = svc.GetTest(-1)
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestUpdateTestReplaces(t *testing.T) {
	svc, _ := newQuizFixture(t)

	id, err := svc.CreateTest(model.Test{Title: "Old"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateTest(id, model.Test{Title: "New"}))

	got, err := svc.GetTest(id)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)

	assert.ErrorIs(t, svc.UpdateTest(42, model.Test{Title: "X"}), util.ErrTestNotFound)
}

func TestDeleteTestShiftsIDsAndRemovesMedia(t *testing.T) {
	svc, storage := newQuizFixture(t)
	ctx := context.Background()

	require.NoError(t, storage.Store(ctx, "owned.png", []byte("img")))

	_, err := svc.CreateTest(model.Test{Title: "Keep A"})
	require.NoError(t, err)
	_, err = svc.CreateTest(model.Test{Title: "Doomed", Questions: []model.Question{
		{Question: "Q", Options: []string{"a", "b"}, Image: "owned.png"},
	}})
	require.NoError(t, err)
	_, err = svc.CreateTest(model.Test{Title: "Keep B"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTest(ctx, 1))

	summaries, err := svc.ListTests()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Keep A", summaries[0].Title)
	assert.Equal(t, "Keep B", summaries[1].Title)
	assert.Equal(t, 1, summaries[1].ID, "later tests shift down")

	exists, err := storage.Exists(ctx, "owned.png")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, svc.DeleteTest(ctx, 5), util.ErrTestNotFound)
}
