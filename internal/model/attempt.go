package model

import "time"

// AnswerRecord is the graded outcome of one question inside an attempt.
// Selected is nil when the taker left the question unanswered.
type AnswerRecord struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Selected    *int     `json:"selected"`
	Correct     int      `json:"correct"`
	IsCorrect   bool     `json:"is_correct"`
	Explanation string   `json:"explanation"`
	Image       string   `json:"image,omitempty"`
}

// Attempt is an immutable record of one completed quiz run. It is created
// once at submission time and only ever deleted, never mutated.
type Attempt struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	TestID    int            `json:"test_id"`
	TestTitle string         `json:"test_title"`
	Score     int            `json:"score"`
	Total     int            `json:"total"`
	Answers   []AnswerRecord `json:"answers"`
}
