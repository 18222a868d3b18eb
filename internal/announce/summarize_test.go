package announce

import "testing"

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"clean", "clean out old branches", "cleaning up your project folder"},
		{"directory", "organize the src directory", "cleaning up your project folder"},
		{"nextjs", "set up a Next.js app", "setting up Next.js"},
		{"test", "make the unit tests pass", "running tests"},
		{"fix", "fix the login bug", "fixing issues in your code"},
		{"create", "create a sidebar", "creating new components"},
		{"update", "update the linter config", "updating your configuration"},
		{"remove", "remove the legacy shim", "removing files"},
		{"refactor", "refactor the parser", "refactoring code"},
		{"deploy", "deploy to staging", "deploying your application"},
		{"install", "install the toolchain", "installing dependencies"},
		{"debug", "debug the flaky worker", "debugging the application"},
		{"optimize", "optimize the hot loop", "optimizing performance"},
		{"fallback", "ponder the architecture", "working on your request"},
		{"empty prompt", "", "working on your request"},
		{"first row wins", "fix the failing tests", "running tests"},
		{"case insensitive", "DEPLOY NOW", "deploying your application"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.prompt); got != tt.want {
				t.Errorf("Summarize(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}
