package export

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// DocumentRenderer serializes a TimelineDocument to bytes.
type DocumentRenderer interface {
	Render(doc *TimelineDocument) ([]byte, error)
}

// JSONRenderer renders a TimelineDocument as indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(doc *TimelineDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// MarkdownRenderer renders a TimelineDocument as the human-readable event
// timeline with an embedded base64 JSON payload for lossless round-trip
// parsing.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(doc *TimelineDocument) ([]byte, error) {
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal timeline: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(jsonBytes)

	var sb strings.Builder

	// Sentinel and embedded payload.
	sb.WriteString("<!-- internsim-timeline-version: 1 -->\n")
	fmt.Fprintf(&sb, "<!-- internsim-data: %s -->\n\n", encoded)

	fmt.Fprintf(&sb, "# Intern Events — %s\n\n", doc.Session.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- Weeks: %d across %d generation(s)\n", doc.Session.WeekCount, len(doc.Generations))
	if doc.Session.Model != "" {
		fmt.Fprintf(&sb, "- Model: %s\n", doc.Session.Model)
	}
	if doc.Session.Author != "" {
		fmt.Fprintf(&sb, "- Author: %s\n", doc.Session.Author)
	}
	sb.WriteString("\n")

	sb.WriteString("## Events\n\n")
	if len(doc.Generations) == 0 {
		sb.WriteString("_No events generated._\n")
	} else {
		text := doc.Text()
		sb.WriteString(text)
		if !strings.HasSuffix(text, "\n") {
			sb.WriteString("\n")
		}
	}

	return []byte(sb.String()), nil
}
