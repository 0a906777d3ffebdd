package app

// Category partitions sessions by purpose. Each category has its own system
// prompt and storage sub-directory under the data root.
type Category string

const (
	CategoryBiographical Category = "biographical"
	CategoryGeneral      Category = "general"
)

// Subdir returns the storage sub-directory for the category.
func (c Category) Subdir() string {
	if c == CategoryBiographical {
		return "bio"
	}
	return "general"
}

// Message is one persisted conversation turn. User text is stored verbatim,
// without the timestamp prefix the display log carries.
type Message struct {
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// SessionRecord is the durable, append-only container of messages for one
// session. Records are never rewritten except via whole-file
// read-modify-write on append.
//
// Legacy records pre-date the messages array and hold a single flat message
// in the same object; Legacy and MessageCount handle both shapes.
type SessionRecord struct {
	SessionType string    `json:"session_type,omitempty"`
	StartTime   string    `json:"start_time,omitempty"`
	LastUpdated string    `json:"last_updated,omitempty"`
	Messages    []Message `json:"messages"`

	// Legacy flat-file fields, one message per file.
	LegacyTimestamp string `json:"timestamp,omitempty"`
	LegacyUser      string `json:"user,omitempty"`
	LegacyAssistant string `json:"assistant,omitempty"`
}

// Legacy reports whether the record lacks a messages array entirely. A
// present-but-empty array decodes to a non-nil slice, so nil means the key
// was absent.
func (r *SessionRecord) Legacy() bool {
	return r.Messages == nil
}

// MessageCount counts stored messages, treating a legacy record as exactly
// one message.
func (r *SessionRecord) MessageCount() int {
	if r.Legacy() {
		return 1
	}
	return len(r.Messages)
}

// RecordHandle identifies one physical session record.
type RecordHandle struct {
	Category Category
	Path     string
}
