package prompts

import (
	"strings"
	"testing"

	"github.com/docuchat-ai/docuchat/internal/runtime/generation"
)

func TestGroundingInstruction(t *testing.T) {
	docs := []string{"First chunk text.", "Second chunk text."}

	msg := GroundingInstruction(docs)

	if msg.Role != generation.USER {
		t.Errorf("Expected USER role, got %s", msg.Role)
	}
	for _, doc := range docs {
		if !strings.Contains(msg.Content, doc) {
			t.Errorf("Instruction missing document text %q", doc)
		}
	}
	if !strings.Contains(msg.Content, "First chunk text.\n\nSecond chunk text.") {
		t.Error("Documents should be joined with a blank line")
	}
	if !strings.Contains(msg.Content, RefusalSentence) {
		t.Error("Instruction missing the refusal sentence")
	}
}

func TestGroundingInstruction_NoDocuments(t *testing.T) {
	msg := GroundingInstruction(nil)

	if !strings.Contains(msg.Content, NoDocumentsMarker) {
		t.Errorf("Expected %q in instruction, got %q", NoDocumentsMarker, msg.Content)
	}
}
