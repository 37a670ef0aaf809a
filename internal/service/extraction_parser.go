package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"quizdeck_backend/internal/model"
	"quizdeck_backend/internal/util"
)

// rawCandidate is the untrusted shape the model is asked to produce.
// correct_index is left loose because models emit it as a number, a float
// or even a quoted string.
type rawCandidate struct {
	Question     string        `json:"question"`
	Options      []interface{} `json:"options"`
	CorrectIndex interface{}   `json:"correct_index"`
	Explanation  string        `json:"explanation"`
}

// ParseCandidate turns raw model output into a validated question. The text
// may be pure JSON or JSON wrapped in prose; anything the parser cannot
// account for is a hard failure, never a best-effort fill-in.
func ParseCandidate(text string) (*model.Question, error) {
	raw, err := decodeCandidate(text)
	if err != nil {
		// Prose around the object is common; retry on the span between
		// the first '{' and the last '}'.
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start == -1 || end == -1 || end <= start {
			return nil, util.NewExtractionError("no JSON object in model output")
		}
		raw, err = decodeCandidate(text[start : end+1])
		if err != nil {
			return nil, util.NewExtractionError("unparsable model output: %v", err)
		}
	}

	question := strings.TrimSpace(raw.Question)
	if question == "" {
		return nil, util.NewExtractionError("missing question text")
	}
	if raw.Options == nil {
		return nil, util.NewExtractionError("missing options list")
	}

	options := make([]string, 0, len(raw.Options))
	for _, o := range raw.Options {
		s, ok := o.(string)
		if !ok {
			return nil, util.NewExtractionError("option is not a string")
		}
		s = strings.TrimSpace(s)
		if s != "" {
			options = append(options, s)
		}
	}
	if len(options) < 2 {
		return nil, util.NewExtractionError("need at least 2 non-empty options, got %d", len(options))
	}

	correct, err := coerceIndex(raw.CorrectIndex)
	if err != nil {
		return nil, err
	}
	if correct < 0 || correct >= len(options) {
		return nil, util.NewExtractionError("correct_index %d out of range for %d options", correct, len(options))
	}

	return &model.Question{
		Question:     question,
		Options:      options,
		CorrectIndex: correct,
		Explanation:  strings.TrimSpace(raw.Explanation),
	}, nil
}

func decodeCandidate(text string) (*rawCandidate, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var raw rawCandidate
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

func coerceIndex(v interface{}) (int, error) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, util.NewExtractionError("correct_index is not numeric: %v", v)
		}
		return int(f), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, util.NewExtractionError("correct_index is not an integer: %q", n)
		}
		return i, nil
	case nil:
		return 0, util.NewExtractionError("missing correct_index")
	default:
		return 0, util.NewExtractionError("correct_index has unsupported type %T", v)
	}
}
