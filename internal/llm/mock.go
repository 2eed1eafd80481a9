package llm

import "context"

// Response scripts the outcome of one Mock.Stream call.
type Response struct {
	Text    string // full output when Err is nil
	Partial string // increments emitted before a mid-stream failure
	Err     error  // non-nil makes the call fail after Partial is emitted
}

// Call records one Stream invocation for assertions.
type Call struct {
	Model    string
	Messages []Message
}

// Mock implements Service with scripted responses. It is used by tests and
// by dry runs that must not reach a real endpoint.
type Mock struct {
	Responses []Response // consumed in order; when exhausted the last repeats
	ModelList []string   // returned by Models; empty falls back like the real client
	Calls     []Call     // every Stream invocation, in order
}

func (m *Mock) Stream(_ context.Context, model string, msgs []Message, onDelta func(string)) (string, error) {
	m.Calls = append(m.Calls, Call{Model: model, Messages: msgs})

	r := Response{}
	if len(m.Responses) > 0 {
		i := len(m.Calls) - 1
		if i >= len(m.Responses) {
			i = len(m.Responses) - 1
		}
		r = m.Responses[i]
	}

	if r.Err != nil {
		// Emit the scripted partial output first, mimicking a stream that
		// dies mid-flight. Callers must discard these increments.
		if r.Partial != "" && onDelta != nil {
			onDelta(r.Partial)
		}
		return "", r.Err
	}
	if onDelta != nil && r.Text != "" {
		onDelta(r.Text)
	}
	return r.Text, nil
}

func (m *Mock) Models(_ context.Context) []string {
	if len(m.ModelList) == 0 {
		out := make([]string, len(FallbackModels))
		copy(out, FallbackModels)
		return out
	}
	return m.ModelList
}
