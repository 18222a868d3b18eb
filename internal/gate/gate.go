// Package gate decides whether a proposed tool action may proceed.
// Decisions are pure: the same request always yields the same verdict.
package gate

import (
	"regexp"
	"strings"
)

// Kind identifies the action type under evaluation.
type Kind string

const (
	KindShellCommand Kind = "shell_command"
	KindFileRead     Kind = "file_read"
	KindFileWrite    Kind = "file_write"
	KindFileEdit     Kind = "file_edit"
)

// Request is one proposed tool action.
type Request struct {
	Kind     Kind
	Command  string
	FilePath string
}

// Decision is the gate verdict. Reason is set only on deny.
type Decision struct {
	Allowed bool
	Reason  string
}

const (
	ReasonEnvFileAccess   = "access to sensitive environment file prohibited."
	ReasonDangerousDelete = "dangerous recursive force-delete detected."
)

// Matching is pattern-based, not a shell parser. Over-matching is the
// accepted bias: a quoted or echoed rm -rf still trips the rule.
var forceRecursiveRes = []*regexp.Regexp{
	regexp.MustCompile(`\brm\s+.*-[a-z]*r[a-z]*f`),
	regexp.MustCompile(`\brm\s+.*-[a-z]*f[a-z]*r`),
	regexp.MustCompile(`\brm\s+--recursive\s+--force`),
	regexp.MustCompile(`\brm\s+--force\s+--recursive`),
	regexp.MustCompile(`\brm\s+-r\s+.*-f`),
	regexp.MustCompile(`\brm\s+-f\s+.*-r`),
}

var recursiveRmRe = regexp.MustCompile(`\brm\s+.*-[a-z]*r`)

// Paths a recursive delete must never target. Evaluated against the
// normalized (lowercased, whitespace-collapsed) command.
var protectedPathRes = []*regexp.Regexp{
	regexp.MustCompile(`(?:^|\s)/(?:\s|$)`),
	regexp.MustCompile(`/\*`),
	regexp.MustCompile(`~`),
	regexp.MustCompile(`\$home\b`),
}

// envRefRe locates .env path references in command text. The .env.sample
// exclusion was a negative lookahead originally; RE2 has none, so every
// match is post-checked for the .sample suffix instead.
var envRefRe = regexp.MustCompile(`\.env\b`)

// envVerbRe, anchored to the end of the text preceding a .env reference,
// matches shell usage that reads or writes that path: cat, touch, cp, mv
// anywhere earlier on the line, or an echo redirect directly before it.
var envVerbRe = regexp.MustCompile(`(?:\b(?:cat|touch|cp|mv)\s+[^\n]*|\becho\s+[^\n]*>\s*)$`)

// Evaluate runs the deny rules in order; the first hit wins.
func Evaluate(req Request) Decision {
	if targetsEnvFile(req) {
		return Decision{Reason: ReasonEnvFileAccess}
	}
	if isDangerousDelete(req.Command) {
		return Decision{Reason: ReasonDangerousDelete}
	}
	return Decision{Allowed: true}
}

func targetsEnvFile(req Request) bool {
	if req.FilePath != "" &&
		strings.Contains(req.FilePath, ".env") &&
		!strings.HasSuffix(req.FilePath, ".env.sample") {
		return true
	}
	return req.Command != "" && referencesEnvFile(req.Command)
}

func referencesEnvFile(command string) bool {
	for _, loc := range envRefRe.FindAllStringIndex(command, -1) {
		if strings.HasPrefix(command[loc[1]:], ".sample") {
			continue
		}
		if loc[0] > 0 && isWordByte(command[loc[0]-1]) {
			return true
		}
		if envVerbRe.MatchString(command[:loc[0]]) {
			return true
		}
	}
	return false
}

func isDangerousDelete(command string) bool {
	if command == "" {
		return false
	}
	normalized := normalizeCommand(command)
	for _, re := range forceRecursiveRes {
		if re.MatchString(normalized) {
			return true
		}
	}
	if recursiveRmRe.MatchString(normalized) {
		for _, re := range protectedPathRes {
			if re.MatchString(normalized) {
				return true
			}
		}
	}
	return false
}

func normalizeCommand(command string) string {
	return strings.Join(strings.Fields(strings.ToLower(command)), " ")
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}
