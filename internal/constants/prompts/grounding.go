package prompts

import (
	"strings"

	"github.com/docuchat-ai/docuchat/internal/runtime/generation"
)

const (
	// NoDocumentsMarker is substituted when retrieval matched nothing,
	// so the model still runs with an explicit empty-context signal.
	NoDocumentsMarker = "No documents found"

	// RefusalSentence is the fixed reply for off-topic or unanswerable
	// questions.
	RefusalSentence = "Sorry, I couldn't find any information on that."
)

const groundingTemplate = `You're an AI assistant who answers questions about documents.

You're a chat bot, so keep your replies succinct.

You're only allowed to use the documents below to answer the question.

If the question isn't related to these documents, say:
"` + RefusalSentence + `"

If the information isn't available in the below documents, say:
"` + RefusalSentence + `"

Do not go off topic.

Documents:
`

// GroundingInstruction assembles the strict-grounding system instruction
// with the retrieved chunk texts embedded verbatim.
func GroundingInstruction(docs []string) generation.Message {
	injected := NoDocumentsMarker
	if len(docs) > 0 {
		injected = strings.Join(docs, "\n\n")
	}
	return generation.Message{
		Role:    generation.USER,
		Content: groundingTemplate + injected,
	}
}
