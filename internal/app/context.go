package app

import (
	"os"
	"sort"
	"strings"
	"time"
)

// DefaultContextBudget bounds how many recent messages feed question
// generation.
const DefaultContextBudget = 10

const contextTimeLayout = "2006-01-02 15:04"

// Timestamp formats accepted when ordering and rendering aggregated
// messages. Records written by older versions carry bare ISO timestamps
// without a zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RecentContext aggregates up to max recent messages across every record of
// a category into one formatted block, most recent first. An empty string
// means no usable context exists; callers fall back to template questions.
//
// Selection is two-stage: candidate files are ordered by modification time
// (a recency proxy that bounds how many files are opened), while the final
// block is ordered by each message's own timestamp. The mtime stage can
// diverge from true message recency; the behavior is kept as observed.
func (s *RecordStore) RecentContext(cat Category, max int) (string, error) {
	if max <= 0 {
		max = DefaultContextBudget
	}
	handles, err := s.ListRecords(cat)
	if err != nil {
		return "", err
	}
	if len(handles) == 0 {
		return "", nil
	}

	type candidate struct {
		handle RecordHandle
		mtime  time.Time
	}
	cands := make([]candidate, 0, len(handles))
	for _, h := range handles {
		info, err := os.Stat(h.Path)
		if err != nil {
			continue
		}
		cands = append(cands, candidate{handle: h, mtime: info.ModTime()})
	}
	sort.Slice(cands, func(i, j int) bool {
		return cands[i].mtime.After(cands[j].mtime)
	})

	var collected []Message
	for _, c := range cands {
		if len(collected) >= max {
			break
		}
		rec, err := s.ReadRecord(c.handle)
		if err != nil {
			continue
		}
		msgs := rec.Messages
		if len(msgs) > max {
			msgs = msgs[len(msgs)-max:]
		}
		// Walk the per-file tail newest first so the cap keeps the most
		// recent messages of the file.
		for i := len(msgs) - 1; i >= 0 && len(collected) < max; i-- {
			collected = append(collected, msgs[i])
		}
	}
	if len(collected) == 0 {
		return "", nil
	}

	// File mtime ordered the selection; the user-visible order follows the
	// messages' own timestamps.
	sort.SliceStable(collected, func(i, j int) bool {
		ti, iok := parseTimestamp(collected[i].Timestamp)
		tj, jok := parseTimestamp(collected[j].Timestamp)
		if iok && jok {
			return ti.After(tj)
		}
		return iok && !jok
	})

	parts := make([]string, 0, len(collected)*4)
	for _, m := range collected {
		stamp := "Recent"
		if t, ok := parseTimestamp(m.Timestamp); ok {
			stamp = t.Format(contextTimeLayout)
		}
		parts = append(parts, "["+stamp+"]", "Human: "+m.User, "AI: "+m.Assistant, turnSeparator)
	}
	return strings.Join(parts, "\n"), nil
}
