// Package timeline owns the ordered history of generation results and the
// week counter, and is the only place that mutates them.
package timeline

import (
	"errors"
	"strings"
	"time"

	"github.com/fakeyudi/internsim/internal/prompt"
)

// ErrEmptyTimeline is returned when continue or regenerate is requested
// before any initial generation.
var ErrEmptyTimeline = errors.New("timeline is empty")

// ErrTimelineNotEmpty is returned when an initial generation is requested on
// a timeline that already has history. Reset first.
var ErrTimelineNotEmpty = errors.New("timeline already has generations")

// ErrEmptyOutput is returned when the stream completes without producing any
// text. Empty output is a failure and is never committed.
var ErrEmptyOutput = errors.New("generation produced no output")

// Entry is one committed generation result. Immutable once committed; the
// only removal path is the pop inside a regenerate.
type Entry struct {
	ID         string
	Text       string
	Weeks      int
	Mode       prompt.Mode
	Discipline string
	StartWeek  int
	CreatedAt  time.Time
}

// joinEntries concatenates entry texts in timeline order with a blank-line
// separator. This is both the prior-event context for continuation requests
// and the exported timeline document body.
func joinEntries(entries []Entry) string {
	if len(entries) == 0 {
		return ""
	}
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	return strings.Join(texts, "\n\n")
}
