package app

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const displayTimeLayout = "2006-01-02 15:04:05"

const contextualQuestionNote = "\n\n*✨ This question was generated based on your recent conversations.*"

// Biographer is the session controller. It tracks the active record per
// category, rebuilds replay history from display logs, and exposes the three
// front-end actions per category: submit, clear/restart, refresh-stats.
type Biographer struct {
	Config Config
	Logger *Logger
	Client CompletionClient
	Store  *RecordStore

	// Serializes the read-modify-write append path. The front-end issues one
	// action at a time, but completion calls run on background commands.
	mu      sync.Mutex
	current map[Category]RecordHandle
}

func NewBiographer(cfg Config, client CompletionClient, logger *Logger) (*Biographer, error) {
	if logger == nil {
		logger = NewLogger(DefaultLogWriter())
	}
	store, err := NewRecordStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return &Biographer{
		Config:  cfg,
		Logger:  logger,
		Client:  client,
		Store:   store,
		current: make(map[Category]RecordHandle),
	}, nil
}

func (b *Biographer) systemPrompt(cat Category) string {
	switch cat {
	case CategoryBiographical:
		return b.Config.SystemPrompts.Biographical
	case CategoryGeneral:
		return b.Config.SystemPrompts.General
	}
	return b.Config.SystemPrompts.Default
}

// buildChatMessages assembles the completion request: system prompt, prior
// turns replayed from the display log, then the current user message with a
// bracketed local timestamp prefix.
func buildChatMessages(systemPrompt, history, message string, now time.Time) []ChatMessage {
	var msgs []ChatMessage
	if systemPrompt != "" {
		msgs = append(msgs, ChatMessage{Role: "system", Content: systemPrompt})
	}
	for _, turn := range ParseTranscript(history) {
		msgs = append(msgs,
			ChatMessage{Role: "user", Content: turn.User},
			ChatMessage{Role: "assistant", Content: turn.Assistant},
		)
	}
	msgs = append(msgs, ChatMessage{
		Role:    "user",
		Content: "[" + now.Format(displayTimeLayout) + "] " + message,
	})
	return msgs
}

// chatWithAI fails open: a completion failure is substituted with the
// configured communication-error template and returned as ordinary content.
func (b *Biographer) chatWithAI(ctx context.Context, systemPrompt, history, message string) string {
	msgs := buildChatMessages(systemPrompt, history, message, time.Now())
	reply, err := b.Client.Chat(ctx, msgs)
	if err != nil {
		b.Logger.Error("completion call failed", map[string]interface{}{"error": err.Error()})
		return renderTemplate(b.Config.ErrorMessages.AICommunication, map[string]string{"error": err.Error()})
	}
	return reply
}

// SubmitTurn handles one conversation turn. Whitespace-only input is a
// no-op: the display log is returned unchanged and nothing is persisted.
// The stored user text is verbatim; only the display log carries the
// timestamp prefix. A storage failure is returned to the caller - the one
// error this controller does not swallow.
func (b *Biographer) SubmitTurn(ctx context.Context, cat Category, input, history string) (newHistory, clearedInput string, err error) {
	if strings.TrimSpace(input) == "" {
		return history, "", nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	turnID := uuid.New().String()
	response := b.chatWithAI(ctx, b.systemPrompt(cat), history, input)

	handle, ok := b.current[cat]
	if !ok {
		handle, err = b.Store.CreateRecord(cat)
		if err != nil {
			b.Logger.Error("record create failed", map[string]interface{}{
				"turn": turnID, "category": string(cat), "error": err.Error(),
			})
			return history, "", err
		}
	}
	handle, err = b.Store.AppendMessage(handle, input, response)
	if err != nil {
		b.Logger.Error("record append failed", map[string]interface{}{
			"turn": turnID, "category": string(cat), "error": err.Error(),
		})
		return history, "", err
	}
	b.current[cat] = handle

	b.Logger.Info("turn persisted", map[string]interface{}{
		"turn": turnID, "category": string(cat), "record": filepath.Base(handle.Path),
	})

	stamped := "[" + time.Now().Format(displayTimeLayout) + "] " + input
	return history + FormatTurn(cat, stamped, response), "", nil
}

// StartSession resets the active record for a category; the next append
// creates a fresh record lazily. Returns the welcome display log.
func (b *Biographer) StartSession(ctx context.Context, cat Category) string {
	b.mu.Lock()
	delete(b.current, cat)
	b.mu.Unlock()
	return b.WelcomeMessage(ctx, cat)
}

// WelcomeMessage renders the opening prompt for a tab without touching
// storage.
func (b *Biographer) WelcomeMessage(ctx context.Context, cat Category) string {
	if cat != CategoryBiographical {
		return b.Config.Messages.GeneralWelcome
	}
	question, contextual := b.GenerateWelcomeQuestion(ctx)
	welcome := renderTemplate(b.Config.Messages.BiographicalWelcome, map[string]string{"question": question})
	if contextual {
		welcome += contextualQuestionNote
	}
	return welcome
}

// DataInfo renders the storage summary for the data tab.
func (b *Biographer) DataInfo() string {
	stats, err := b.Store.Stats()
	if err != nil || stats.TotalFiles == 0 {
		return b.Config.Messages.NoConversations
	}
	dataPath := b.Store.Root
	if abs, err := filepath.Abs(dataPath); err == nil {
		dataPath = abs
	}
	return renderTemplate(b.Config.Messages.DataStats, map[string]string{
		"total_files":    strconv.Itoa(stats.TotalFiles),
		"bio_sessions":   strconv.Itoa(stats.BiographicalSessions),
		"gen_sessions":   strconv.Itoa(stats.GeneralSessions),
		"total_messages": strconv.Itoa(stats.TotalMessages),
		"data_path":      dataPath,
	})
}
