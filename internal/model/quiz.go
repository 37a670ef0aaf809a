package model

// Question is a single multiple-choice question. CorrectIndex is zero-based
// and must stay valid against Options: any operation that reorders or merges
// options has to remap it in the same step.
type Question struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Image        string   `json:"image,omitempty"`
}

// Test groups questions under a title. The trimmed, lower-cased title is the
// identity key during backup reconciliation; it is computed at merge time,
// never cached on the record.
type Test struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Collection is the whole persisted test set. Tests are addressed by position,
// so deleting index i shifts every later id down by one.
type Collection struct {
	Tests []Test `json:"tests"`
}

// TestSummary is the list-view projection of a Test.
type TestSummary struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
}
