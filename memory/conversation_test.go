package memory

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsEmptyTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversation.json")
	tr, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tr.Messages()) != 0 {
		t.Errorf("messages = %v, want none", tr.Messages())
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversation.json")

	tr := New(path)
	tr.Append("user", "hello")
	tr.Append("assistant", "hi there")
	if err := tr.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	msgs := reloaded.Messages()
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[0].Text != "hello" {
		t.Errorf("first = %+v", msgs[0])
	}
	if msgs[1].Role != "assistant" || msgs[1].Text != "hi there" {
		t.Errorf("second = %+v", msgs[1])
	}
}

func TestAppendDropsBlankAssistantText(t *testing.T) {
	tr := New(filepath.Join(t.TempDir(), "c.json"))
	tr.Append("assistant", "   ")
	tr.Append("user", "")
	if got := len(tr.Messages()); got != 1 {
		t.Errorf("messages = %d, want blank assistant turn dropped", got)
	}
}

func TestLoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversation.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load succeeded on corrupt file, want error")
	}
}
