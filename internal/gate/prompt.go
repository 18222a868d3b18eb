package gate

import "strings"

// PromptRule blocks prompts containing Pattern, matched as a
// case-insensitive substring.
type PromptRule struct {
	Pattern string
	Reason  string
}

// ValidatePrompt checks a prompt against ordered rules; the first match
// denies. An empty prompt or an empty rule list is always valid.
func ValidatePrompt(prompt string, rules []PromptRule) Decision {
	if prompt == "" {
		return Decision{Allowed: true}
	}
	lower := strings.ToLower(prompt)
	for _, rule := range rules {
		if rule.Pattern == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(rule.Pattern)) {
			return Decision{Reason: rule.Reason}
		}
	}
	return Decision{Allowed: true}
}
