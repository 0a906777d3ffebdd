package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

type fakeClient struct {
	reply string
	err   error
	calls [][]ChatMessage
}

func (f *fakeClient) Chat(_ context.Context, msgs []ChatMessage) (string, error) {
	f.calls = append(f.calls, msgs)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestBiographer(t *testing.T, client CompletionClient) *Biographer {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	b, err := NewBiographer(cfg, client, NewLogger(io.Discard))
	if err != nil {
		t.Fatalf("new biographer: %v", err)
	}
	return b
}

func TestSubmitTurnPersistsExactlyOneMessage(t *testing.T) {
	client := &fakeClient{reply: "nice to meet you"}
	b := newTestBiographer(t, client)

	history, cleared, err := b.SubmitTurn(context.Background(), CategoryBiographical, "hello there", "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if cleared != "" {
		t.Fatalf("input not cleared: %q", cleared)
	}

	handles, err := b.Store.ListRecords(CategoryBiographical)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(handles) != 1 {
		t.Fatalf("expected 1 record, got %d", len(handles))
	}
	rec, err := b.Store.ReadRecord(handles[0])
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rec.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(rec.Messages))
	}
	// Stored user text is verbatim, without the display timestamp prefix.
	if rec.Messages[0].User != "hello there" {
		t.Fatalf("stored user = %q", rec.Messages[0].User)
	}
	if rec.Messages[0].Assistant != "nice to meet you" {
		t.Fatalf("stored assistant = %q", rec.Messages[0].Assistant)
	}

	// The display log carries the prefixed text and the category marker.
	if !strings.Contains(history, "**You:** [") {
		t.Fatalf("display log missing stamped user line:\n%s", history)
	}
	if !strings.Contains(history, "**AI Biographer:** nice to meet you") {
		t.Fatalf("display log missing assistant line:\n%s", history)
	}
}

func TestSubmitTurnWhitespaceIsNoOp(t *testing.T) {
	client := &fakeClient{reply: "unused"}
	b := newTestBiographer(t, client)

	history, cleared, err := b.SubmitTurn(context.Background(), CategoryGeneral, "   \n\t", "prior log")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if history != "prior log" {
		t.Fatalf("display log changed: %q", history)
	}
	if cleared != "" {
		t.Fatalf("input not cleared: %q", cleared)
	}
	if len(client.calls) != 0 {
		t.Fatalf("completion called for empty input")
	}
	handles, _ := b.Store.ListRecords(CategoryGeneral)
	if len(handles) != 0 {
		t.Fatalf("record created for empty input")
	}
}

func TestSubmitTurnReplaysHistory(t *testing.T) {
	client := &fakeClient{reply: "sure"}
	b := newTestBiographer(t, client)

	history := FormatTurn(CategoryGeneral, "[2024-01-01 10:00:00] first", "one") +
		FormatTurn(CategoryGeneral, "[2024-01-01 10:01:00] second", "two")

	if _, _, err := b.SubmitTurn(context.Background(), CategoryGeneral, "third", history); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(client.calls) != 1 {
		t.Fatalf("expected 1 completion call, got %d", len(client.calls))
	}
	msgs := client.calls[0]
	// system + 2 replayed pairs + current message.
	if len(msgs) != 6 {
		t.Fatalf("expected 6 chat messages, got %d: %+v", len(msgs), msgs)
	}
	if msgs[0].Role != "system" {
		t.Fatalf("first message role = %q", msgs[0].Role)
	}
	if msgs[1].Content != "[2024-01-01 10:00:00] first" || msgs[2].Content != "one" {
		t.Fatalf("replayed turn 1 wrong: %+v", msgs[1:3])
	}
	last := msgs[len(msgs)-1]
	if last.Role != "user" || !strings.HasSuffix(last.Content, "] third") {
		t.Fatalf("current message not stamped: %+v", last)
	}
}

func TestSubmitTurnFailedCompletionIsPersistedContent(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	b := newTestBiographer(t, client)

	history, _, err := b.SubmitTurn(context.Background(), CategoryGeneral, "hello", "")
	if err != nil {
		t.Fatalf("submit should not fail on completion errors: %v", err)
	}
	want := renderTemplate(b.Config.ErrorMessages.AICommunication, map[string]string{"error": "connection refused"})
	if !strings.Contains(history, want) {
		t.Fatalf("display log missing substituted error content:\n%s", history)
	}

	handles, _ := b.Store.ListRecords(CategoryGeneral)
	if len(handles) != 1 {
		t.Fatalf("expected 1 record, got %d", len(handles))
	}
	rec, err := b.Store.ReadRecord(handles[0])
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if rec.Messages[0].Assistant != want {
		t.Fatalf("substituted content not stored verbatim: %q", rec.Messages[0].Assistant)
	}
}

func TestStartSessionIsLazy(t *testing.T) {
	client := &fakeClient{err: errors.New("offline")}
	b := newTestBiographer(t, client)

	welcome := b.StartSession(context.Background(), CategoryBiographical)
	if welcome == "" {
		t.Fatalf("welcome message empty")
	}
	b.StartSession(context.Background(), CategoryBiographical)

	handles, _ := b.Store.ListRecords(CategoryBiographical)
	if len(handles) != 0 {
		t.Fatalf("start_session must not create records, got %d", len(handles))
	}
}

func TestStartSessionRotatesActiveRecord(t *testing.T) {
	client := &fakeClient{reply: "ok"}
	b := newTestBiographer(t, client)
	ctx := context.Background()

	if _, _, err := b.SubmitTurn(ctx, CategoryBiographical, "one", ""); err != nil {
		t.Fatalf("submit: %v", err)
	}
	b.StartSession(ctx, CategoryBiographical)

	handles, _ := b.Store.ListRecords(CategoryBiographical)
	if len(handles) != 1 {
		t.Fatalf("expected 1 record, got %d", len(handles))
	}

	if _, _, err := b.SubmitTurn(ctx, CategoryBiographical, "two", ""); err != nil {
		t.Fatalf("submit: %v", err)
	}
	total := 0
	handles, _ = b.Store.ListRecords(CategoryBiographical)
	for _, h := range handles {
		rec, err := b.Store.ReadRecord(h)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		total += len(rec.Messages)
	}
	if total != 2 {
		t.Fatalf("expected 2 stored messages across records, got %d", total)
	}
}

func TestWelcomeMessageFallsBackWhenNoContext(t *testing.T) {
	client := &fakeClient{reply: "unused"}
	b := newTestBiographer(t, client)

	welcome := b.WelcomeMessage(context.Background(), CategoryBiographical)
	if welcome == "" {
		t.Fatalf("welcome empty")
	}
	if strings.Contains(welcome, "generated based on your recent conversations") {
		t.Fatalf("fallback welcome claims contextual question:\n%s", welcome)
	}
	if len(client.calls) != 0 {
		t.Fatalf("completion should not be called without context")
	}
}

func TestWelcomeMessageUsesContextWhenAvailable(t *testing.T) {
	client := &fakeClient{reply: `"What did the move teach you"`}
	b := newTestBiographer(t, client)
	ctx := context.Background()

	if _, _, err := b.SubmitTurn(ctx, CategoryBiographical, "we moved house", ""); err != nil {
		t.Fatalf("submit: %v", err)
	}

	welcome := b.WelcomeMessage(ctx, CategoryBiographical)
	if !strings.Contains(welcome, "What did the move teach you?") {
		t.Fatalf("welcome missing normalized question:\n%s", welcome)
	}
	if !strings.Contains(welcome, "generated based on your recent conversations") {
		t.Fatalf("contextual note missing:\n%s", welcome)
	}
}

func TestDataInfoRendersTemplate(t *testing.T) {
	client := &fakeClient{reply: "ok"}
	b := newTestBiographer(t, client)
	ctx := context.Background()

	if got := b.DataInfo(); got != b.Config.Messages.NoConversations {
		t.Fatalf("empty store DataInfo = %q", got)
	}

	if _, _, err := b.SubmitTurn(ctx, CategoryGeneral, "hi", ""); err != nil {
		t.Fatalf("submit: %v", err)
	}
	got := b.DataInfo()
	if !strings.Contains(got, "Files: 1") || !strings.Contains(got, "Total messages: 1") {
		t.Fatalf("DataInfo = %q", got)
	}
}
