package export

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// DocumentParser deserializes a timeline document file back into structured
// data.
type DocumentParser interface {
	Parse(data []byte) (*TimelineDocument, error)
}

// JSONParser parses a JSON-encoded TimelineDocument.
type JSONParser struct{}

func (p *JSONParser) Parse(data []byte) (*TimelineDocument, error) {
	var doc TimelineDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON timeline: %w", err)
	}
	return &doc, nil
}

// MarkdownParser parses a Markdown-rendered TimelineDocument by extracting
// the embedded base64 JSON payload from the sentinel comments.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(data []byte) (*TimelineDocument, error) {
	content := string(data)

	// Require the version sentinel.
	if !strings.Contains(content, "<!-- internsim-timeline-version: 1 -->") {
		return nil, fmt.Errorf("not a valid internsim timeline: missing version sentinel")
	}

	// Extract the base64 payload from <!-- internsim-data: <base64> -->.
	const prefix = "<!-- internsim-data: "
	const suffix = " -->"
	start := strings.Index(content, prefix)
	if start == -1 {
		return nil, fmt.Errorf("not a valid internsim timeline: missing data payload")
	}
	start += len(prefix)
	end := strings.Index(content[start:], suffix)
	if end == -1 {
		return nil, fmt.Errorf("not a valid internsim timeline: malformed data payload")
	}
	encoded := content[start : start+end]

	jsonBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("not a valid internsim timeline: corrupted base64 payload: %w", err)
	}

	var doc TimelineDocument
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return nil, fmt.Errorf("not a valid internsim timeline: corrupted embedded JSON: %w", err)
	}
	return &doc, nil
}
