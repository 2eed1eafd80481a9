// Package export renders the committed timeline as a downloadable document
// and parses such documents back for viewing.
package export

import (
	"strings"
	"time"

	"github.com/fakeyudi/internsim/internal/timeline"
)

// TimelineDocument is the complete, renderable representation of a session's
// committed timeline.
type TimelineDocument struct {
	Session     SessionMeta  `json:"session"`
	Generations []Generation `json:"generations"`
}

// SessionMeta holds summary metadata about the session for the document.
type SessionMeta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Model     string    `json:"model"`
	WeekCount int       `json:"week_count"`
	Author    string    `json:"author,omitempty"`
}

// Generation is one committed generation result.
type Generation struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"`
	Discipline string    `json:"discipline,omitempty"`
	Weeks      int       `json:"weeks"`
	StartWeek  int       `json:"start_week"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromEntries builds a document from committed timeline entries.
func FromEntries(sessionID, model, author string, entries []timeline.Entry) *TimelineDocument {
	doc := &TimelineDocument{
		Session: SessionMeta{
			ID:        sessionID,
			CreatedAt: time.Now(),
			Model:     model,
			Author:    author,
		},
		Generations: make([]Generation, 0, len(entries)),
	}
	for _, e := range entries {
		doc.Session.WeekCount += e.Weeks
		doc.Generations = append(doc.Generations, Generation{
			ID:         e.ID,
			Mode:       string(e.Mode),
			Discipline: e.Discipline,
			Weeks:      e.Weeks,
			StartWeek:  e.StartWeek,
			Text:       e.Text,
			CreatedAt:  e.CreatedAt,
		})
	}
	return doc
}

// Text returns the full narrative: generation texts in order, joined by a
// blank line.
func (d *TimelineDocument) Text() string {
	texts := make([]string, len(d.Generations))
	for i, g := range d.Generations {
		texts[i] = g.Text
	}
	return strings.Join(texts, "\n\n")
}
