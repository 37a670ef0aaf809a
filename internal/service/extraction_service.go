package service

import (
	"context"
	"encoding/json"

	"quizdeck_backend/internal/model"
	"quizdeck_backend/pkg/logger"
	"quizdeck_backend/pkg/monitoring"

	"go.uber.org/zap"
)

const extractionSystemPrompt = "You are a quiz digitization assistant. Extract exactly one multiple-choice " +
	"question from the material you are given. Respond with a single JSON object and nothing else, " +
	"in this shape: {\"question\": string, \"options\": [string, ...], \"correct_index\": int, \"explanation\": string}. " +
	"correct_index is zero-based. Do not invent options that are not in the material."

const refinementSystemPrompt = extractionSystemPrompt + " You will be given the source material together " +
	"with a draft extraction. Fix any mistakes in the draft: wrong or truncated option text, a wrong answer, " +
	"a missing explanation. Keep the same JSON structure and make sure correct_index points at the correct " +
	"option after any change to the options."

// ExtractionService turns free-form model output into validated question
// records via a draft pass and a best-effort corrective second pass.
type ExtractionService struct {
	capability CapabilityClient
}

func NewExtractionService(capability CapabilityClient) *ExtractionService {
	return &ExtractionService{capability: capability}
}

// ExtractionResult is the final candidate plus how many passes actually ran.
// The candidate is always presented for human review; nothing here commits
// it to storage.
type ExtractionResult struct {
	Question model.Question `json:"question"`
	Passes   int            `json:"passes"`
}

// ExtractQuestion runs the two-pass refinement protocol over the source
// material. The first pass is mandatory: if it yields no candidate the whole
// operation fails. The second pass re-reads the source with the draft
// attached and is best-effort; any failure there falls back to the draft.
func (s *ExtractionService) ExtractQuestion(ctx context.Context, source string, image []byte) (*ExtractionResult, error) {
	first, err := s.runPass(ctx, CompletionRequest{
		System: extractionSystemPrompt,
		Prompt: "Source material:\n\n" + source,
		Image:  image,
	})
	if err != nil {
		monitoring.ExtractionCounter.WithLabelValues("failure").Inc()
		return nil, err
	}

	result := &ExtractionResult{Question: *first, Passes: 1}

	draft, err := json.Marshal(first)
	if err == nil {
		second, err := s.runPass(ctx, CompletionRequest{
			System: refinementSystemPrompt,
			Prompt: "Source material:\n\n" + source + "\n\nDraft extraction:\n" + string(draft),
			Image:  image,
		})
		if err != nil {
			// Refinement is best-effort; the draft stands.
			logger.Log.Warn("refinement pass failed, keeping first draft", zap.Error(err))
		} else {
			result.Question = *second
			result.Passes = 2
		}
	}

	monitoring.ExtractionCounter.WithLabelValues("success").Inc()
	monitoring.ExtractionPasses.Observe(float64(result.Passes))
	return result, nil
}

// runPass does one capability round trip followed by parsing and fragment
// repair.
func (s *ExtractionService) runPass(ctx context.Context, req CompletionRequest) (*model.Question, error) {
	text, err := s.capability.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	q, err := ParseCandidate(text)
	if err != nil {
		return nil, err
	}

	q.Options, q.CorrectIndex = RepairFragments(q.Options, q.CorrectIndex)
	return q, nil
}
