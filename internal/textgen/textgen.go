// Package textgen produces short generated strings (completion messages,
// agent names) through external helper executables, tried in priority
// order until one answers.
package textgen

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// DefaultDir is where generation helpers live, relative to the working
// directory.
const DefaultDir = ".claude/hooks/llm"

// DefaultTimeout bounds one helper invocation when neither the candidate
// nor the chain sets its own.
const DefaultTimeout = 10 * time.Second

// Candidate is one helper executable in a selection chain. KeyEnv names
// the API-key variable the helper needs; empty means none. A zero
// Timeout defers to the chain default.
type Candidate struct {
	Name    string
	KeyEnv  string
	Timeout time.Duration
}

// DefaultCandidates order message generation: hosted services first, the
// keyless local model last.
var DefaultCandidates = []Candidate{
	{Name: "openai", KeyEnv: "OPENAI_API_KEY"},
	{Name: "anthropic", KeyEnv: "ANTHROPIC_API_KEY"},
	{Name: "ollama"},
}

// NameCandidates order agent-name generation: the local model first for
// latency, the hosted fallback after it.
var NameCandidates = []Candidate{
	{Name: "ollama", Timeout: 5 * time.Second},
	{Name: "anthropic", KeyEnv: "ANTHROPIC_API_KEY", Timeout: 10 * time.Second},
}

// Chain tries candidates in order until one produces usable output.
type Chain struct {
	dir        string
	timeout    time.Duration
	candidates []Candidate
}

func NewChain(dir string, timeout time.Duration, candidates []Candidate) *Chain {
	if dir == "" {
		dir = DefaultDir
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Chain{dir: dir, timeout: timeout, candidates: candidates}
}

// Generate invokes helpers with --<kind> and returns the first trimmed
// non-empty stdout. Missing keys, missing executables, failures, and
// empty output all fall through to the next candidate.
func (c *Chain) Generate(ctx context.Context, kind string) (string, bool) {
	for _, cand := range c.candidates {
		path, ok := c.available(cand)
		if !ok {
			continue
		}
		out, err := c.run(ctx, path, "--"+kind, cand.Timeout)
		if err != nil || out == "" {
			continue
		}
		return out, true
	}
	return "", false
}

// AgentName generates a display name for a session, accepting only a
// single alphanumeric word.
func (c *Chain) AgentName(ctx context.Context) (string, bool) {
	for _, cand := range c.candidates {
		path, ok := c.available(cand)
		if !ok {
			continue
		}
		out, err := c.run(ctx, path, "--agent-name", cand.Timeout)
		if err != nil || !ValidName(out) {
			continue
		}
		return out, true
	}
	return "", false
}

// ValidName reports whether a generated agent name is a single
// alphanumeric word.
func ValidName(name string) bool {
	if name == "" || len(strings.Fields(name)) != 1 {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (c *Chain) available(cand Candidate) (string, bool) {
	if cand.KeyEnv != "" && os.Getenv(cand.KeyEnv) == "" {
		return "", false
	}
	path := filepath.Join(c.dir, cand.Name)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

func (c *Chain) run(ctx context.Context, path, arg string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, path, arg)
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}
