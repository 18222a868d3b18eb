// Package classify assigns agent messages to announcement categories.
package classify

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Category labels a message for announcement routing.
type Category string

const (
	CategoryToolOutput   Category = "tool_output"
	CategoryCodeBlock    Category = "code_block"
	CategoryNotification Category = "notification"
	CategoryGreeting     Category = "greeting"
	CategoryError        Category = "error"
	CategoryQuestion     Category = "question"
	CategorySummary      Category = "summary"
	CategoryConfirmation Category = "confirmation"
	CategoryCompletion   Category = "completion"
	CategoryStatusUpdate Category = "status_update"
	CategoryInstruction  Category = "instruction"
	CategoryExplanation  Category = "explanation"
	CategoryDirectAnswer Category = "direct_answer"
	CategoryUnknown      Category = "unknown"
)

// confirmationMax splits short confirmations from long completion reports.
const confirmationMax = 100

var (
	lineNumberRe   = regexp.MustCompile(`^\d+→`)
	numberedStepRe = regexp.MustCompile(`^\d+\.`)

	bulletRes = []*regexp.Regexp{
		regexp.MustCompile(`^\s*[-*•○■▪→▸►]\s+(.+)$`),
		regexp.MustCompile(`^\s*\d+[.)]\s+(.+)$`),
	}
)

var (
	notificationPhrases = []string{"waiting for your input", "needs your input"}
	greetingPhrases     = []string{"hello", "hi there", "greetings", "how can i help", "what can i do for you"}
	errorWords          = []string{"error", "failed", "cannot", "unable", "invalid"}
	questionStarts      = []string{"should", "would", "could", "can", "do", "does"}
	completionWords     = []string{"done", "fixed", "completed", "finished", "created", "updated", "successfully"}
	statusWords         = []string{"now", "currently", "starting", "checking", "running", "processing"}
	instructionWords    = []string{"first", "next", "then", "step"}
	explanationPhrases  = []string{"because", "since", "this means", "the reason", "works by"}
)

// Detect maps a message to exactly one category. Rules run in priority
// order and the first match wins, so every message gets a single stable
// label.
func Detect(message string) Category {
	if message == "" {
		return CategoryUnknown
	}
	lower := strings.ToLower(message)

	if strings.HasPrefix(message, "File ") ||
		strings.HasPrefix(message, "Directory ") ||
		strings.HasPrefix(message, "Output:") ||
		lineNumberRe.MatchString(message) {
		return CategoryToolOutput
	}
	if strings.Contains(message, "```") {
		return CategoryCodeBlock
	}
	if containsAny(lower, notificationPhrases) {
		return CategoryNotification
	}
	if containsAny(lower, greetingPhrases) {
		return CategoryGreeting
	}
	if containsAny(lower, errorWords) {
		return CategoryError
	}
	if strings.HasSuffix(strings.TrimSpace(message), "?") || startsWithAnyWord(lower, questionStarts) {
		return CategoryQuestion
	}
	if len(ExtractBullets(message)) > 0 {
		return CategorySummary
	}
	if containsAny(lower, completionWords) {
		if utf8.RuneCountInString(message) < confirmationMax {
			return CategoryConfirmation
		}
		return CategoryCompletion
	}
	if containsAny(lower, statusWords) {
		return CategoryStatusUpdate
	}
	if numberedStepRe.MatchString(message) || containsAny(lower, instructionWords) {
		return CategoryInstruction
	}
	if containsAny(lower, explanationPhrases) {
		return CategoryExplanation
	}
	if len(strings.Fields(message)) <= 5 && !strings.HasSuffix(message, "?") {
		return CategoryDirectAnswer
	}
	return CategoryUnknown
}

// ExtractBullets returns the trimmed content of every bulleted or numbered
// line in text, in source order.
func ExtractBullets(text string) []string {
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		for _, re := range bulletRes {
			if m := re.FindStringSubmatch(line); m != nil {
				bullets = append(bullets, strings.TrimSpace(m[1]))
				break
			}
		}
	}
	return bullets
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// startsWithAnyWord matches a leading word, not a bare prefix, so "done"
// is not mistaken for a sentence starting with "do".
func startsWithAnyWord(s string, words []string) bool {
	for _, w := range words {
		if !strings.HasPrefix(s, w) {
			continue
		}
		if len(s) == len(w) {
			return true
		}
		c := s[len(w)]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return true
		}
	}
	return false
}
