package hooklog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriter_AppendCreatesLog(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "logs"))

	event := map[string]any{"session_id": "abc", "tool_name": "Bash"}
	if err := w.Append("pre_tool_use", event); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries := w.Read("pre_tool_use")
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	got, ok := entries[0].(map[string]any)
	if !ok {
		t.Fatalf("entry type %T, want object", entries[0])
	}
	if got["tool_name"] != "Bash" {
		t.Errorf("tool_name = %v, want Bash", got["tool_name"])
	}
}

func TestWriter_AppendKeepsOrder(t *testing.T) {
	w := NewWriter(t.TempDir())

	for _, id := range []string{"first", "second", "third"} {
		if err := w.Append("stop", map[string]any{"session_id": id}); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	entries := w.Read("stop")
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	last := entries[2].(map[string]any)
	if last["session_id"] != "third" {
		t.Errorf("last entry = %v, want third", last["session_id"])
	}
}

func TestWriter_SameEventTwice(t *testing.T) {
	w := NewWriter(t.TempDir())
	event := map[string]any{"session_id": "dup"}

	if err := w.Append("notification", event); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Append("notification", event); err != nil {
		t.Fatalf("append: %v", err)
	}

	if got := len(w.Read("notification")); got != 2 {
		t.Fatalf("got %d entries, want 2", got)
	}
}

func TestWriter_RecoversFromCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated json", `[{"session_id": "x"`},
		{"not an array", `{"session_id": "x"}`},
		{"plain text", "not json at all"},
		{"empty file", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(t.TempDir())
			if err := os.WriteFile(w.Path("stop"), []byte(tt.content), 0644); err != nil {
				t.Fatalf("seed file: %v", err)
			}

			if err := w.Append("stop", map[string]any{"session_id": "y"}); err != nil {
				t.Fatalf("append: %v", err)
			}
			entries := w.Read("stop")
			if len(entries) != 1 {
				t.Fatalf("got %d entries, want 1", len(entries))
			}
		})
	}
}

func TestWriter_ReadMissingLog(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "nowhere"))
	if got := w.Read("stop"); len(got) != 0 {
		t.Fatalf("got %d entries, want 0", len(got))
	}
}
