package app

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseTranscriptRecoverPairs(t *testing.T) {
	history := "Welcome back!\n\n" +
		"**You:** [2024-01-01 10:00:00] hello\n\n" +
		"**AI Biographer:** hi there\n\n" +
		"---\n\n" +
		"**You:** [2024-01-01 10:05:00] how are you\n\n" +
		"**AI Biographer:** doing well\n\n" +
		"---"

	got := ParseTranscript(history)
	want := []Turn{
		{User: "[2024-01-01 10:00:00] hello", Assistant: "hi there"},
		{User: "[2024-01-01 10:05:00] how are you", Assistant: "doing well"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseTranscript = %+v, want %+v", got, want)
	}
}

func TestParseTranscriptAcceptsBothAssistantMarkers(t *testing.T) {
	history := "**You:** one\n**AI:** first\n---\n**You:** two\n**AI Biographer:** second\n---"
	got := ParseTranscript(history)
	if len(got) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(got))
	}
	if got[0].Assistant != "first" || got[1].Assistant != "second" {
		t.Fatalf("assistant texts = %q, %q", got[0].Assistant, got[1].Assistant)
	}
}

func TestParseTranscriptDropsDanglingHumanLine(t *testing.T) {
	history := "**You:** answered\n**AI:** reply\n---\n**You:** never answered"
	got := ParseTranscript(history)
	if len(got) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(got))
	}
	if got[0].User != "answered" {
		t.Fatalf("unexpected turn: %+v", got[0])
	}
}

func TestParseTranscriptEmpty(t *testing.T) {
	if got := ParseTranscript(""); len(got) != 0 {
		t.Fatalf("expected no turns, got %+v", got)
	}
}

func TestFormatTurnRoundTrip(t *testing.T) {
	var history string
	pairs := [][2]string{
		{"[2024-02-01 09:00:00] first question", "first answer"},
		{"[2024-02-01 09:01:00] second question", "second answer"},
		{"[2024-02-01 09:02:00] third question", "third answer"},
	}
	for _, p := range pairs {
		history += FormatTurn(CategoryBiographical, p[0], p[1])
	}

	turns := ParseTranscript(history)
	if len(turns) != len(pairs) {
		t.Fatalf("expected %d turns, got %d", len(pairs), len(turns))
	}
	for i, p := range pairs {
		if turns[i].User != p[0] || turns[i].Assistant != p[1] {
			t.Fatalf("turn %d = %+v, want %+v", i, turns[i], p)
		}
	}
}

func TestFormatTurnMarkerPerCategory(t *testing.T) {
	bio := FormatTurn(CategoryBiographical, "u", "a")
	gen := FormatTurn(CategoryGeneral, "u", "a")
	if !strings.Contains(bio, "**AI Biographer:** a") {
		t.Fatalf("biographical block missing marker: %q", bio)
	}
	if !strings.Contains(gen, "**AI:** a") || strings.Contains(gen, "Biographer") {
		t.Fatalf("general block has wrong marker: %q", gen)
	}
}
