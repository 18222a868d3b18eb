// Package announce composes the short phrases warden speaks for hook
// events.
package announce

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"
)

// DefaultEngineer is spoken when no engineer name is configured anywhere.
const DefaultEngineer = "Boss B"

// SubagentComplete is the fixed phrase for finished subagents.
const SubagentComplete = "Subagent Complete"

// excerptMax caps spoken excerpts of errors, questions, and status lines.
const excerptMax = 100

var greetings = []string{
	"Hello! How can I help you today?",
	"Hi there! What can I do for you?",
	"Greetings! Ready to assist.",
}

var namedGreetings = []string{
	"Hello %s! How can I help you today?",
	"Hi %s! What can I do for you?",
}

var fallbackCompletions = []string{
	"Work complete!",
	"All done!",
	"Task finished!",
	"Job complete!",
	"Ready for next task!",
}

// Builder composes spoken phrases. Engineer may be empty; Rand drives
// the occasional personal touch and defaults to the shared generator, so
// the zero value works and tests can pin a source.
type Builder struct {
	Engineer string
	Rand     *rand.Rand
}

// Greeting picks a session-start greeting. Half the time it stays with
// the standard phrase; otherwise any variant, including named ones when
// an engineer is set.
func (b *Builder) Greeting() string {
	if b.float() < 0.5 {
		pool := make([]string, 0, len(greetings)+len(namedGreetings))
		pool = append(pool, greetings...)
		if b.Engineer != "" {
			for _, g := range namedGreetings {
				pool = append(pool, fmt.Sprintf(g, b.Engineer))
			}
		}
		return pool[b.intN(len(pool))]
	}
	return greetings[0]
}

// Notification phrases a request for user input, addressing the engineer
// by name roughly a third of the time.
func (b *Builder) Notification() string {
	if b.Engineer != "" && b.float() < 0.3 {
		return fmt.Sprintf("%s, your agent needs your input", b.Engineer)
	}
	return "Your agent needs your input"
}

// Completion phrases a finished task. A non-empty message is spoken
// verbatim; otherwise a generic completion, occasionally personalized.
func (b *Builder) Completion(message string) string {
	if message != "" {
		return message
	}
	if b.Engineer != "" && b.float() < 0.3 {
		return fmt.Sprintf("%s, I've completed the task", b.Engineer)
	}
	return "Task completed"
}

// FallbackCompletion picks a stock phrase for stop announcements when no
// generator produced one.
func (b *Builder) FallbackCompletion() string {
	return fallbackCompletions[b.intN(len(fallbackCompletions))]
}

// TaskStart phrases the work summary spoken when a prompt arrives.
func (b *Builder) TaskStart(prompt string) string {
	name := b.Engineer
	if name == "" {
		name = DefaultEngineer
	}
	return fmt.Sprintf("%s, I'm %s", name, Summarize(prompt))
}

func (b *Builder) float() float64 {
	if b.Rand != nil {
		return b.Rand.Float64()
	}
	return rand.Float64()
}

func (b *Builder) intN(n int) int {
	if b.Rand != nil {
		return b.Rand.IntN(n)
	}
	return rand.IntN(n)
}

// JoinBullets turns the last up-to-three bullets into one spoken
// sentence.
func JoinBullets(bullets []string) string {
	if len(bullets) == 0 {
		return ""
	}
	if len(bullets) > 3 {
		bullets = bullets[len(bullets)-3:]
	}
	if len(bullets) == 1 {
		return bullets[0]
	}
	return strings.Join(bullets[:len(bullets)-1], ", ") + ", and " + bullets[len(bullets)-1]
}

// Excerpt reduces a message to its first line, cut at 100 characters.
func Excerpt(message string) string {
	line := message
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if utf8.RuneCountInString(line) > excerptMax {
		runes := []rune(line)
		return string(runes[:excerptMax]) + "..."
	}
	return line
}
