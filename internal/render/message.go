package render

import "strings"

// Message is one readable turn from a captured transcript.
type Message struct {
	Role     string
	Text     string
	Thinking string
}

// FromEntry pulls the readable turn out of one transcript entry.
// Entries that carry no prose (tool results, progress records) report
// ok=false.
func FromEntry(entry any) (Message, bool) {
	m, isMap := entry.(map[string]any)
	if !isMap {
		return Message{}, false
	}

	var msg Message
	msg.Role, _ = m["type"].(string)

	payload, isMap := m["message"].(map[string]any)
	if !isMap {
		return Message{}, false
	}
	if r, isStr := payload["role"].(string); isStr && r != "" {
		msg.Role = r
	}

	switch content := payload["content"].(type) {
	case string:
		msg.Text = strings.TrimSpace(content)
	case []any:
		var text, thinking []string
		for _, p := range content {
			part, isMap := p.(map[string]any)
			if !isMap {
				continue
			}
			switch part["type"] {
			case "text":
				if s, isStr := part["text"].(string); isStr && strings.TrimSpace(s) != "" {
					text = append(text, strings.TrimSpace(s))
				}
			case "thinking":
				if s, isStr := part["thinking"].(string); isStr && strings.TrimSpace(s) != "" {
					thinking = append(thinking, strings.TrimSpace(s))
				}
			}
		}
		msg.Text = strings.Join(text, "\n\n")
		msg.Thinking = strings.Join(thinking, "\n\n")
	}

	if msg.Text == "" && msg.Thinking == "" {
		return Message{}, false
	}
	return msg, true
}
