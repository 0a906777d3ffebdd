package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Record filenames sort lexicographically by creation time, second
// resolution.
const recordNameLayout = "2006-01-02_15-04-05"

// ErrRecordRead marks a record that could not be decoded. Callers that scan
// many records skip these; one corrupt file must never abort a scan.
var ErrRecordRead = errors.New("record unreadable")

// RecordStore owns the physical lifecycle of session records: one JSON file
// per session, grouped into per-category sub-directories under Root. Legacy
// flat files (one message per file) may also sit directly in Root and are
// counted by Stats.
type RecordStore struct {
	Root string
}

func DefaultDataRoot() string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, "biographer", "data")
	}
	if base, err := os.UserHomeDir(); err == nil && base != "" {
		return filepath.Join(base, ".local", "share", "biographer", "data")
	}
	return filepath.Join(os.TempDir(), "biographer", "data")
}

func NewRecordStore(root string) (*RecordStore, error) {
	if strings.TrimSpace(root) == "" {
		root = DefaultDataRoot()
	}
	for _, cat := range []Category{CategoryBiographical, CategoryGeneral} {
		if err := os.MkdirAll(filepath.Join(root, cat.Subdir()), 0o755); err != nil {
			return nil, err
		}
	}
	return &RecordStore{Root: root}, nil
}

func (s *RecordStore) categoryDir(cat Category) string {
	return filepath.Join(s.Root, cat.Subdir())
}

// CreateRecord writes an initial record with an empty message list and
// returns its handle.
func (s *RecordStore) CreateRecord(cat Category) (RecordHandle, error) {
	now := time.Now()
	rec := SessionRecord{
		SessionType: string(cat),
		StartTime:   now.Format(time.RFC3339),
		Messages:    []Message{},
	}
	base := now.Format(recordNameLayout)
	path := filepath.Join(s.categoryDir(cat), base+".json")
	// Second resolution: a restart within the same second must not clobber
	// the previous record. Any stat error other than "exists" falls through
	// to writeRecord, which reports the real failure.
	for i := 2; ; i++ {
		if _, err := os.Stat(path); err != nil {
			break
		}
		path = filepath.Join(s.categoryDir(cat), fmt.Sprintf("%s_%d.json", base, i))
	}
	if err := writeRecord(path, &rec); err != nil {
		return RecordHandle{}, fmt.Errorf("create record: %w", err)
	}
	return RecordHandle{Category: cat, Path: path}, nil
}

func writeRecord(path string, rec *SessionRecord) error {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ReadRecord decodes one record. Any failure is reported as ErrRecordRead so
// aggregating callers can skip the file.
func (s *RecordStore) ReadRecord(h RecordHandle) (*SessionRecord, error) {
	return readRecordFile(h.Path)
}

func readRecordFile(path string) (*SessionRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordRead, err)
	}
	var rec SessionRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordRead, err)
	}
	return &rec, nil
}

// AppendMessage adds one turn to the record behind h via whole-file
// read-modify-write. When the handle no longer resolves, or its content is
// undecodable, a fresh record is created for the same category and the
// append retried once against it. The returned handle is the record that
// actually received the message.
func (s *RecordStore) AppendMessage(h RecordHandle, userText, assistantText string) (RecordHandle, error) {
	rec, err := s.ReadRecord(h)
	if err != nil {
		fresh, cerr := s.CreateRecord(h.Category)
		if cerr != nil {
			return h, cerr
		}
		h = fresh
		rec, err = s.ReadRecord(h)
		if err != nil {
			return h, err
		}
	}
	now := time.Now().Format(time.RFC3339)
	rec.Messages = append(rec.Messages, Message{
		Timestamp: now,
		User:      userText,
		Assistant: assistantText,
	})
	rec.LastUpdated = now
	if err := writeRecord(h.Path, rec); err != nil {
		return h, fmt.Errorf("append message: %w", err)
	}
	return h, nil
}

// ListRecords enumerates the record files of a category. An absent category
// directory yields an empty list, not an error.
func (s *RecordStore) ListRecords(cat Category) ([]RecordHandle, error) {
	dir := s.categoryDir(cat)
	ents, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []RecordHandle{}, nil
		}
		return nil, err
	}
	handles := make([]RecordHandle, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		handles = append(handles, RecordHandle{Category: cat, Path: filepath.Join(dir, e.Name())})
	}
	return handles, nil
}

// DataStats summarizes every stored conversation file, including legacy flat
// files in the data root.
type DataStats struct {
	TotalFiles           int
	BiographicalSessions int
	GeneralSessions      int
	TotalMessages        int
}

// Stats walks both category areas plus the root for legacy files. Unreadable
// files still count toward TotalFiles but contribute no sessions or
// messages.
func (s *RecordStore) Stats() (DataStats, error) {
	var paths []string
	for _, cat := range []Category{CategoryBiographical, CategoryGeneral} {
		handles, err := s.ListRecords(cat)
		if err != nil {
			return DataStats{}, err
		}
		for _, h := range handles {
			paths = append(paths, h.Path)
		}
	}
	if ents, err := os.ReadDir(s.Root); err == nil {
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			paths = append(paths, filepath.Join(s.Root, e.Name()))
		}
	}

	stats := DataStats{TotalFiles: len(paths)}
	bioDir := s.categoryDir(CategoryBiographical)
	for _, path := range paths {
		rec, err := readRecordFile(path)
		if err != nil {
			continue
		}
		stats.TotalMessages += rec.MessageCount()
		// session_type decides; only untyped records (legacy shapes) fall
		// back to their location. The data root itself may contain "bio"
		// ("~/.../biographer/data"), so only the category dir counts.
		switch {
		case rec.SessionType == string(CategoryBiographical):
			stats.BiographicalSessions++
		case rec.SessionType != "":
			stats.GeneralSessions++
		case filepath.Dir(path) == bioDir:
			stats.BiographicalSessions++
		default:
			stats.GeneralSessions++
		}
	}
	return stats, nil
}
