package app

import "strings"

// Display-log markers. The display log is the denormalized, human-facing
// transcript shown in a tab; session records remain the durable source of
// truth.
const (
	userMarker         = "**You:**"
	aiMarker           = "**AI:**"
	aiBiographerMarker = "**AI Biographer:**"
	turnSeparator      = "---"
)

// Turn is one structured (human, assistant) exchange recovered from a
// display log, ready for replay into a completion call.
type Turn struct {
	User      string
	Assistant string
}

// ParseTranscript scans a display log top to bottom and recovers completed
// turns in display order. A human line with no assistant reply by
// end-of-scan is dropped.
func ParseTranscript(history string) []Turn {
	var turns []Turn
	var pendingUser, pendingAssistant string

	for _, line := range strings.Split(history, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, userMarker):
			if pendingUser != "" && pendingAssistant != "" {
				turns = append(turns, Turn{User: pendingUser, Assistant: pendingAssistant})
			}
			pendingUser = strings.TrimSpace(strings.TrimPrefix(line, userMarker))
			pendingAssistant = ""
		case strings.HasPrefix(line, aiBiographerMarker):
			pendingAssistant = strings.TrimSpace(strings.TrimPrefix(line, aiBiographerMarker))
		case strings.HasPrefix(line, aiMarker):
			pendingAssistant = strings.TrimSpace(strings.TrimPrefix(line, aiMarker))
		}
	}
	if pendingUser != "" && pendingAssistant != "" {
		turns = append(turns, Turn{User: pendingUser, Assistant: pendingAssistant})
	}
	return turns
}

// FormatTurn renders one display-log block for a completed turn. The
// biographical tab uses its own assistant marker.
func FormatTurn(cat Category, stampedUser, response string) string {
	marker := aiMarker
	if cat == CategoryBiographical {
		marker = aiBiographerMarker
	}
	return "\n\n" + userMarker + " " + stampedUser + "\n\n" + marker + " " + response + "\n\n" + turnSeparator
}
