package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"quizdeck_backend/internal/model"
	"quizdeck_backend/internal/util"
	"quizdeck_backend/pkg/logger"
	"quizdeck_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// archiveCollectionName is the collection entry inside an export archive and
// the name the original single-file export used.
const archiveCollectionName = "data.json"

// archiveMediaPrefix is where media payloads live inside an export archive.
const archiveMediaPrefix = "uploads/"

// BackupService merges imported test collections into the current one and
// produces the inverse export archive.
type BackupService struct {
	quiz    *QuizService
	storage *StorageService
}

func NewBackupService(quiz *QuizService, storage *StorageService) *BackupService {
	return &BackupService{quiz: quiz, storage: storage}
}

// ImportReport is the observable contract of an import run.
type ImportReport struct {
	Added          int    `json:"added"`
	Updated        int    `json:"updated"`
	SkippedInvalid int    `json:"skipped_invalid"`
	RestoredImages int    `json:"restored_images"`
	MissingImages  int    `json:"missing_images"`
	TotalNow       int    `json:"total_now"`
	Message        string `json:"message"`
}

// importedTest detects field presence: a test lacking either field is
// counted skipped_invalid, never partially merged.
type importedTest struct {
	Title     *string           `json:"title"`
	Questions *[]model.Question `json:"questions"`
}

// Import accepts either a bare serialized collection or a zip archive
// bundling the collection with media payloads, merges it into the current
// collection by title identity and reconciles media references.
func (s *BackupService) Import(ctx context.Context, payload []byte) (*ImportReport, error) {
	collectionRaw, bundle, err := unpackPayload(payload)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Tests *[]json.RawMessage `json:"tests"`
	}
	if err := json.Unmarshal(collectionRaw, &doc); err != nil {
		return nil, util.NewValidationError("file", "not valid collection JSON: %v", err)
	}
	if doc.Tests == nil {
		return nil, util.NewValidationError("tests", "missing tests array")
	}

	report := &ImportReport{}

	incoming := make([]model.Test, 0, len(*doc.Tests))
	for _, rawTest := range *doc.Tests {
		var t importedTest
		if err := json.Unmarshal(rawTest, &t); err != nil || t.Title == nil || t.Questions == nil {
			report.SkippedInvalid++
			continue
		}
		incoming = append(incoming, model.Test{Title: *t.Title, Questions: *t.Questions})
	}

	if len(bundle) > 0 {
		s.reconcileMedia(ctx, incoming, bundle, report)
	}

	s.quiz.Lock()
	defer s.quiz.Unlock()

	col, err := s.quiz.LoadCollection()
	if err != nil {
		return nil, err
	}

	// Identity index over the current collection; blank titles cannot be
	// addressed and are skipped.
	titleToIndex := make(map[string]int, len(col.Tests))
	for i, t := range col.Tests {
		key := titleKey(t.Title)
		if key == "" {
			continue
		}
		titleToIndex[key] = i
	}

	for _, t := range incoming {
		key := titleKey(t.Title)
		if idx, ok := titleToIndex[key]; ok {
			// Same title = newer version; the incoming test wins outright.
			col.Tests[idx] = t
			report.Updated++
		} else {
			col.Tests = append(col.Tests, t)
			titleToIndex[key] = len(col.Tests) - 1
			report.Added++
		}
	}

	if err := s.quiz.ReplaceCollection(col); err != nil {
		return nil, err
	}

	report.TotalNow = len(col.Tests)
	report.Message = buildImportMessage(report)

	monitoring.ImportedTests.WithLabelValues("added").Add(float64(report.Added))
	monitoring.ImportedTests.WithLabelValues("updated").Add(float64(report.Updated))
	monitoring.ImportedTests.WithLabelValues("skipped_invalid").Add(float64(report.SkippedInvalid))

	logger.Log.Info("backup import complete",
		zap.Int("added", report.Added),
		zap.Int("updated", report.Updated),
		zap.Int("skipped_invalid", report.SkippedInvalid),
		zap.Int("restored_images", report.RestoredImages),
		zap.Int("missing_images", report.MissingImages))

	return report, nil
}

// reconcileMedia resolves every image reference across the incoming tests
// against the bundled files. Resolution is memoized per reference name so
// repeated references agree on one final name and are counted once.
func (s *BackupService) reconcileMedia(ctx context.Context, incoming []model.Test, bundle map[string][]byte, report *ImportReport) {
	resolved := make(map[string]string)

	for ti := range incoming {
		for qi := range incoming[ti].Questions {
			q := &incoming[ti].Questions[qi]
			if q.Image == "" {
				continue
			}

			final, seen := resolved[q.Image]
			if !seen {
				final = s.resolveImage(ctx, q.Image, bundle)
				resolved[q.Image] = final
				if final == "" {
					report.MissingImages++
				} else {
					report.RestoredImages++
				}
			}
			q.Image = final
		}
	}
}

// resolveImage maps one incoming reference to its final stored name, or ""
// when the reference cannot be satisfied. A same-named local file with
// different bytes forces a fresh collision-resistant name; identical bytes
// are reused in place.
func (s *BackupService) resolveImage(ctx context.Context, ref string, bundle map[string][]byte) string {
	sanitized := util.SanitizeFilename(ref)
	if sanitized == "" {
		return ""
	}

	data, ok := bundle[sanitized]
	if !ok {
		return ""
	}

	exists, err := s.storage.Exists(ctx, sanitized)
	if err != nil {
		logger.Log.Warn("media store lookup failed", zap.String("file", sanitized), zap.Error(err))
		return ""
	}

	if exists {
		local, err := s.storage.Download(ctx, sanitized)
		if err == nil && bytes.Equal(local, data) {
			return sanitized
		}

		fresh := NewOpaqueName(filepath.Ext(sanitized))
		if err := s.storage.Store(ctx, fresh, data); err != nil {
			logger.Log.Warn("failed to store renamed media", zap.String("file", fresh), zap.Error(err))
			return ""
		}
		return fresh
	}

	if err := s.storage.Store(ctx, sanitized, data); err != nil {
		logger.Log.Warn("failed to store media", zap.String("file", sanitized), zap.Error(err))
		return ""
	}
	return sanitized
}

// Export serializes the full collection plus every stored media file into a
// zip archive. Importing the result reproduces an equivalent collection.
func (s *BackupService) Export(ctx context.Context) ([]byte, error) {
	col, err := s.quiz.LoadCollection()
	if err != nil {
		return nil, err
	}

	raw, err := json.MarshalIndent(col, "", "    ")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create(archiveCollectionName)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(raw); err != nil {
		return nil, err
	}

	names, err := s.storage.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		data, err := s.storage.Download(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("export: read %s: %w", name, err)
		}
		w, err := zw.Create(archiveMediaPrefix + name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unpackPayload splits an uploaded payload into the collection JSON and the
// bundled media files. A payload that is not a zip archive is taken as the
// bare collection with no bundle.
func unpackPayload(payload []byte) ([]byte, map[string][]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return payload, nil, nil
	}

	var collection []byte
	bundle := make(map[string][]byte)

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, nil, util.ErrInvalidArchive
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, nil, util.ErrInvalidArchive
		}

		base := path.Base(f.Name)
		if collection == nil && strings.EqualFold(base, archiveCollectionName) {
			collection = data
			continue
		}
		if name := util.SanitizeFilename(f.Name); name != "" {
			bundle[name] = data
		}
	}

	if collection == nil {
		return nil, nil, util.NewValidationError("archive", "no %s entry found", archiveCollectionName)
	}
	return collection, bundle, nil
}

func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

func buildImportMessage(r *ImportReport) string {
	parts := []string{}
	if r.Added > 0 {
		parts = append(parts, fmt.Sprintf("added %d new", r.Added))
	}
	if r.Updated > 0 {
		parts = append(parts, fmt.Sprintf("updated %d existing", r.Updated))
	}
	if r.SkippedInvalid > 0 {
		parts = append(parts, fmt.Sprintf("skipped %d invalid", r.SkippedInvalid))
	}
	if len(parts) == 0 {
		return "Import complete: nothing to do."
	}
	return "Import complete: " + strings.Join(parts, ", ") + " test(s)."
}
