package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileFails(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing config")
	}
}

func TestLoadConfigMalformedFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("model: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "model:\n  name: llama3:8b\nmessages:\n  general_welcome: Hi!\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Model.Name != "llama3:8b" {
		t.Fatalf("model.name = %q", cfg.Model.Name)
	}
	if cfg.Messages.GeneralWelcome != "Hi!" {
		t.Fatalf("general_welcome = %q", cfg.Messages.GeneralWelcome)
	}
	// Unset fields keep their defaults.
	if cfg.SystemPrompts.QuestionGenerator == "" {
		t.Fatalf("default question_generator prompt lost")
	}
	if cfg.Messages.DataStats == "" {
		t.Fatalf("default data_stats template lost")
	}
}

func TestLoadConfigAcceptsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"model": {"name": "qwen2.5:7b"}, "messages": {"no_conversations": "nothing yet"}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load json config: %v", err)
	}
	if cfg.Messages.NoConversations != "nothing yet" {
		t.Fatalf("no_conversations = %q", cfg.Messages.NoConversations)
	}
}

func TestRenderTemplate(t *testing.T) {
	got := renderTemplate("Model {model} saved {total_messages} messages", map[string]string{
		"model":          "qwen2.5:7b",
		"total_messages": "12",
	})
	want := "Model qwen2.5:7b saved 12 messages"
	if got != want {
		t.Fatalf("renderTemplate = %q, want %q", got, want)
	}
}
