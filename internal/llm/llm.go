// Package llm abstracts the chat-completion service that generates event
// text, so the timeline controller can be driven by the real Groq/OpenAI
// endpoint or a scripted mock.
package llm

import "context"

// Message roles. Exactly two messages are sent per generation call: one
// system directive and one user directive.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one entry of the ordered payload sent to the model.
type Message struct {
	Role    string
	Content string
}

// Service produces event text from a message payload.
type Service interface {
	// Stream requests a completion and invokes onDelta for each text
	// increment as it arrives, in order. It returns the full concatenated
	// output. On error the caller must discard any increments already
	// received; partial output is never valid.
	Stream(ctx context.Context, model string, msgs []Message, onDelta func(string)) (string, error)

	// Models returns the available model identifiers. It never fails: on any
	// retrieval problem it returns a fixed fallback list.
	Models(ctx context.Context) []string
}
