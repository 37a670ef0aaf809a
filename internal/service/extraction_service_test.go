package service

import (
	"context"
	"errors"
	"testing"

	"quizdeck_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedCapability replays canned responses in order; a nil error with an
// empty response is not meaningful, so each step carries one or the other.
type scriptedCapability struct {
	steps []capabilityStep
	calls []CompletionRequest
}

type capabilityStep struct {
	response string
	err      error
}

func (f *scriptedCapability) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	f.calls = append(f.calls, req)
	if len(f.steps) == 0 {
		return "", errors.New("no scripted response left")
	}
	step := f.steps[0]
	f.steps = f.steps[1:]
	return step.response, step.err
}

const draftJSON = `{"question":"Q?","options":["alpha","beta"],"correct_index":0,"explanation":""}`
const refinedJSON = `{"question":"Q?","options":["alpha","beta"],"correct_index":1,"explanation":"beta is right"}`

func TestExtractQuestionTwoPasses(t *testing.T) {
	client := &scriptedCapability{steps: []capabilityStep{
		{response: draftJSON},
		{response: refinedJSON},
	}}
	svc := NewExtractionService(client)

	result, err := svc.ExtractQuestion(context.Background(), "some source", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Passes)
	assert.Equal(t, 1, result.Question.CorrectIndex)
	assert.Equal(t, "beta is right", result.Question.Explanation)

	// The second prompt must carry both the source and the draft.
	require.Len(t, client.calls, 2)
	assert.Contains(t, client.calls[1].Prompt, "some source")
	assert.Contains(t, client.calls[1].Prompt, `"alpha"`)
}

func TestExtractQuestionSecondPassFailureFallsBack(t *testing.T) {
	client := &scriptedCapability{steps: []capabilityStep{
		{response: draftJSON},
		{err: &util.CapabilityError{Err: errors.New("timeout")}},
	}}
	svc := NewExtractionService(client)

	result, err := svc.ExtractQuestion(context.Background(), "source", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Passes)
	assert.Equal(t, 0, result.Question.CorrectIndex)
}

func TestExtractQuestionSecondPassGarbageFallsBack(t *testing.T) {
	client := &scriptedCapability{steps: []capabilityStep{
		{response: "Sure! " + draftJSON},
		{response: "I am sorry, I cannot help with that."},
	}}
	svc := NewExtractionService(client)

	result, err := svc.ExtractQuestion(context.Background(), "source", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Passes)
	assert.Equal(t, "Q?", result.Question.Question)
}

func TestExtractQuestionFirstPassCapabilityFailureIsFatal(t *testing.T) {
	client := &scriptedCapability{steps: []capabilityStep{
		{err: &util.CapabilityError{Err: errors.New("connection refused")}},
	}}
	svc := NewExtractionService(client)

	_, err := svc.ExtractQuestion(context.Background(), "source", nil)
	require.Error(t, err)
	assert.True(t, util.IsCapabilityError(err))
	assert.Len(t, client.calls, 1, "no second pass without a first candidate")
}

func TestExtractQuestionFirstPassGarbageIsFatal(t *testing.T) {
	client := &scriptedCapability{steps: []capabilityStep{
		{response: "no json here"},
	}}
	svc := NewExtractionService(client)

	_, err := svc.ExtractQuestion(context.Background(), "source", nil)
	require.Error(t, err)
	assert.True(t, util.IsExtractionError(err))
	assert.Len(t, client.calls, 1)
}

func TestExtractQuestionRepairsFragments(t *testing.T) {
	fragmented := `{"question":"What does the cell do?","options":` +
		`["The cell divides","and produces two daughter cells","It stops growing.","It shrinks.","It bursts.","It rests."],` +
		`"correct_index":1,"explanation":""}`

	client := &scriptedCapability{steps: []capabilityStep{
		{response: fragmented},
		{err: errors.New("second pass down")},
	}}
	svc := NewExtractionService(client)

	result, err := svc.ExtractQuestion(context.Background(), "source", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"The cell divides and produces two daughter cells",
		"It stops growing.",
		"It shrinks.",
		"It bursts.",
		"It rests.",
	}, result.Question.Options)
	assert.Equal(t, 0, result.Question.CorrectIndex)
}
