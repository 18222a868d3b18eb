package announce

import (
	"regexp"
	"strings"
)

// fallbackSummary covers prompts no keyword row claims.
const fallbackSummary = "working on your request"

var summaryRows = []struct {
	re      *regexp.Regexp
	summary string
}{
	{regexp.MustCompile(`clean|folder|directory`), "cleaning up your project folder"},
	{regexp.MustCompile(`next\.js|nextjs`), "setting up Next.js"},
	{regexp.MustCompile(`test`), "running tests"},
	{regexp.MustCompile(`fix`), "fixing issues in your code"},
	{regexp.MustCompile(`create|add`), "creating new components"},
	{regexp.MustCompile(`update|change|modify`), "updating your configuration"},
	{regexp.MustCompile(`remove|delete`), "removing files"},
	{regexp.MustCompile(`refactor`), "refactoring code"},
	{regexp.MustCompile(`deploy`), "deploying your application"},
	{regexp.MustCompile(`install`), "installing dependencies"},
	{regexp.MustCompile(`debug`), "debugging the application"},
	{regexp.MustCompile(`optimize`), "optimizing performance"},
}

// Summarize maps a prompt to a short spoken description of the work.
// Rows are ordered; the first keyword hit wins.
func Summarize(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, row := range summaryRows {
		if row.re.MatchString(lower) {
			return row.summary
		}
	}
	return fallbackSummary
}
