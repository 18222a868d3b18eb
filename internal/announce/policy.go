package announce

import "github.com/wardenhq/warden/internal/classify"

// Policy decides which message categories get spoken. Categories absent
// from the map stay silent.
type Policy map[classify.Category]bool

// DefaultPolicy enables speech for everything except step-by-step
// instructions and code blocks, which read badly aloud.
func DefaultPolicy() Policy {
	return Policy{
		classify.CategoryToolOutput:   true,
		classify.CategoryCodeBlock:    false,
		classify.CategoryNotification: true,
		classify.CategoryGreeting:     true,
		classify.CategoryError:        true,
		classify.CategoryQuestion:     true,
		classify.CategorySummary:      true,
		classify.CategoryConfirmation: true,
		classify.CategoryCompletion:   true,
		classify.CategoryStatusUpdate: true,
		classify.CategoryInstruction:  false,
		classify.CategoryExplanation:  true,
		classify.CategoryDirectAnswer: true,
		classify.CategoryUnknown:      true,
	}
}

// Enabled reports whether a category should be announced.
func (p Policy) Enabled(c classify.Category) bool {
	return p[c]
}
