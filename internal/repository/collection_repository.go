package repository

import (
	"encoding/json"
	"os"
	"path/filepath"

	"quizdeck_backend/internal/model"
)

// CollectionRepository persists the whole test collection as one JSON file.
// Reads and writes are all-or-nothing; there is no partial update path.
type CollectionRepository struct {
	file string
}

func NewCollectionRepository(dataDir string) *CollectionRepository {
	return &CollectionRepository{file: filepath.Join(dataDir, "data.json")}
}

func (r *CollectionRepository) Load() (*model.Collection, error) {
	raw, err := os.ReadFile(r.file)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.Collection{Tests: []model.Test{}}, nil
		}
		return nil, err
	}

	var col model.Collection
	if err := json.Unmarshal(raw, &col); err != nil {
		return nil, err
	}
	if col.Tests == nil {
		col.Tests = []model.Test{}
	}
	return &col, nil
}

func (r *CollectionRepository) Save(col *model.Collection) error {
	return writeJSONAtomic(r.file, col)
}

// writeJSONAtomic writes to a sibling temp file and renames it over the
// target so a crash mid-write never leaves a truncated store behind.
func writeJSONAtomic(path string, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
