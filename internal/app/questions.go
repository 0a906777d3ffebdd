package app

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// FallbackQuestion picks one of ten fixed welcome questions. The weekday and
// time-of-day bucket are interpolated into two of the templates.
func FallbackQuestion(now time.Time) string {
	day := now.Weekday().String()
	tod := timeOfDay(now)
	pool := []string{
		fmt.Sprintf("How are you feeling this %s %s? What's been on your mind lately?", day, tod),
		"What's something significant that happened to you recently? How did it make you feel or think?",
		"Is there anything you've been reflecting on or questioning about yourself or your life lately?",
		fmt.Sprintf("What's been bringing you joy or concern in your daily life this %s?", tod),
		"How would you describe your current state of mind or outlook on life?",
		"What's something you've learned about yourself recently, even if it's small?",
		"Is there a moment from today, yesterday, or this week that stood out to you? Why?",
		"What are you currently curious about, struggling with, or excited about?",
		"How has your perspective on something changed recently?",
		"What would you want to remember about this particular time in your life?",
	}
	return pool[rand.Intn(len(pool))]
}

func timeOfDay(t time.Time) string {
	switch {
	case t.Hour() < 12:
		return "morning"
	case t.Hour() < 18:
		return "afternoon"
	default:
		return "evening"
	}
}

// NormalizeQuestion strips surrounding quote characters from a generated
// question and guarantees a trailing question mark. An empty question stays
// empty so the caller can fall back.
func NormalizeQuestion(q string) string {
	q = strings.TrimSpace(q)
	q = strings.Trim(q, `"`)
	q = strings.Trim(q, `'`)
	if q != "" && !strings.HasSuffix(q, "?") {
		q += "?"
	}
	return q
}

// GenerateWelcomeQuestion produces the next biographical prompt: seeded by
// recent conversation context when any exists, otherwise drawn from the
// fallback pool. It never fails; every error degrades to a fallback
// template.
func (b *Biographer) GenerateWelcomeQuestion(ctx context.Context) (question string, contextual bool) {
	recent, err := b.Store.RecentContext(CategoryBiographical, DefaultContextBudget)
	if err != nil || recent == "" {
		return FallbackQuestion(time.Now()), false
	}

	seed := fmt.Sprintf("Recent biographical conversations:\n\n%s\n\nGenerate a thoughtful follow-up question for the next conversation.", recent)
	msgs := buildChatMessages(b.Config.SystemPrompts.QuestionGenerator, "", seed, time.Now())
	reply, err := b.Client.Chat(ctx, msgs)
	if err != nil {
		b.Logger.Warn("question generation failed", map[string]interface{}{"error": err.Error()})
		return FallbackQuestion(time.Now()), false
	}
	if q := NormalizeQuestion(reply); q != "" {
		return q, true
	}
	return FallbackQuestion(time.Now()), false
}
