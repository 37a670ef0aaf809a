package repository

import (
	"encoding/json"
	"os"
	"path/filepath"

	"quizdeck_backend/internal/model"
)

// AttemptRepository persists the attempt ledger as one JSON file, oldest
// first. Like the collection store it reads and writes the whole value.
type AttemptRepository struct {
	file string
}

func NewAttemptRepository(dataDir string) *AttemptRepository {
	return &AttemptRepository{file: filepath.Join(dataDir, "attempts.json")}
}

func (r *AttemptRepository) Load() ([]model.Attempt, error) {
	raw, err := os.ReadFile(r.file)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Attempt{}, nil
		}
		return nil, err
	}

	var attempts []model.Attempt
	if err := json.Unmarshal(raw, &attempts); err != nil {
		return nil, err
	}
	if attempts == nil {
		attempts = []model.Attempt{}
	}
	return attempts, nil
}

func (r *AttemptRepository) Save(attempts []model.Attempt) error {
	return writeJSONAtomic(r.file, attempts)
}
