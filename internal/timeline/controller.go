package timeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fakeyudi/internsim/internal/llm"
	"github.com/fakeyudi/internsim/internal/prompt"
)

// ActionKind identifies a deferred mutation request.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionContinueOne
	ActionContinueN
	ActionRegenerate
)

// Action is a recorded user intent, executed by the next Step call. Recording
// and execution are separate so the controller can be driven by any event
// loop that serialises user actions.
type Action struct {
	Kind     ActionKind
	Feedback string
	Weeks    int // ActionContinueN only
}

// Params fixes the session-wide inputs of a Controller.
type Params struct {
	Service        llm.Service
	Model          string
	Project        string // project description, included verbatim in every request
	CrossReference bool   // all mode only
	FileContext    func() string // supplementary file context provider; may be nil
	OnDelta        func(string)  // streaming sink for live display; may be nil
}

// Controller owns one Timeline and its pending-action slot. It is not safe
// for concurrent use; one logical operation executes at a time.
type Controller struct {
	p Params

	entries     []Entry
	weekCounter int

	lastMode       prompt.Mode
	lastDiscipline string
	lastWeeks      int

	pending Action
}

// New creates a Controller with an empty timeline.
func New(p Params) *Controller {
	return &Controller{p: p}
}

// Entries returns a copy of the committed history, oldest first.
func (c *Controller) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// WeekCounter returns the total weeks across all committed entries.
func (c *Controller) WeekCounter() int { return c.weekCounter }

// Generations returns the number of committed entries.
func (c *Controller) Generations() int { return len(c.entries) }

// TimelineText returns the full committed narrative, entries joined by a
// blank line. This is the exportable timeline document body.
func (c *Controller) TimelineText() string { return joinEntries(c.entries) }

// GenerateInitial runs the first generation of a session. It is only legal
// on an empty timeline.
func (c *Controller) GenerateInitial(ctx context.Context, mode prompt.Mode, discipline string, weeks int) (string, error) {
	if len(c.entries) > 0 {
		return "", ErrTimelineNotEmpty
	}

	text, err := c.generate(ctx, prompt.Request{
		Mode:       mode,
		Discipline: discipline,
		Weeks:      weeks,
		StartWeek:  1,
	})
	if err != nil {
		return "", err
	}

	c.commit(text, weeks, mode, discipline, 1)
	return text, nil
}

// ContinueBy extends the timeline by n weeks, optionally steered by
// feedback. A single-event session is upgraded to set mode when n > 1: a
// single-event request cannot serve a multi-week continuation.
func (c *Controller) ContinueBy(ctx context.Context, n int, feedback string) (string, error) {
	if len(c.entries) == 0 {
		return "", ErrEmptyTimeline
	}

	mode := c.lastMode
	if mode == prompt.ModeSingle && n > 1 {
		mode = prompt.ModeSet
	}
	startWeek := c.weekCounter + 1

	text, err := c.generate(ctx, prompt.Request{
		Mode:       mode,
		Discipline: c.lastDiscipline,
		Weeks:      n,
		StartWeek:  startWeek,
		Previous:   joinEntries(c.entries),
		Feedback:   feedback,
	})
	if err != nil {
		return "", err
	}

	c.commit(text, n, mode, c.lastDiscipline, startWeek)
	return text, nil
}

// RegenerateLast discards the most recent entry and reissues its request
// with the supplied feedback, keeping mode, discipline, and week count. On
// failure the popped entry is restored: the timeline never shrinks because a
// regenerate failed.
func (c *Controller) RegenerateLast(ctx context.Context, feedback string) (string, error) {
	if len(c.entries) == 0 {
		return "", ErrEmptyTimeline
	}

	popped := c.entries[len(c.entries)-1]
	c.entries = c.entries[:len(c.entries)-1]
	c.weekCounter -= popped.Weeks
	startWeek := c.weekCounter + 1

	text, err := c.generate(ctx, prompt.Request{
		Mode:       popped.Mode,
		Discipline: popped.Discipline,
		Weeks:      popped.Weeks,
		StartWeek:  startWeek,
		Previous:   joinEntries(c.entries),
		Feedback:   feedback,
	})
	if err != nil {
		// Restore the popped entry in its original position.
		c.entries = append(c.entries, popped)
		c.weekCounter += popped.Weeks
		return "", err
	}

	c.commit(text, popped.Weeks, popped.Mode, popped.Discipline, startWeek)
	return text, nil
}

// Reset clears the timeline, the week counter, and any pending action.
func (c *Controller) Reset() {
	c.entries = nil
	c.weekCounter = 0
	c.lastMode = ""
	c.lastDiscipline = ""
	c.lastWeeks = 0
	c.pending = Action{}
}

// Request records a deferred action. The most recent request wins.
func (c *Controller) Request(a Action) {
	c.pending = a
}

// Pending returns the kind of the currently recorded action.
func (c *Controller) Pending() ActionKind { return c.pending.Kind }

// Step consumes at most one pending action and executes it. The slot is
// cleared before execution, so a failed action is not retried implicitly.
// executed reports whether an action was present.
func (c *Controller) Step(ctx context.Context) (text string, executed bool, err error) {
	a := c.pending
	c.pending = Action{}

	switch a.Kind {
	case ActionNone:
		return "", false, nil
	case ActionContinueOne:
		text, err = c.ContinueBy(ctx, 1, a.Feedback)
	case ActionContinueN:
		text, err = c.ContinueBy(ctx, a.Weeks, a.Feedback)
	case ActionRegenerate:
		text, err = c.RegenerateLast(ctx, a.Feedback)
	}
	return text, true, err
}

// generate fills in the session-wide request fields, builds the two-message
// payload, and drives the stream. All service failures are reported as a
// failure result here; timeline state is untouched on any error path.
func (c *Controller) generate(ctx context.Context, req prompt.Request) (string, error) {
	req.Project = c.p.Project
	req.CrossReference = c.p.CrossReference
	if c.p.FileContext != nil {
		req.FileContext = c.p.FileContext()
	}

	msgs := []llm.Message{
		{Role: llm.RoleSystem, Content: prompt.BuildSystemDirective(req.Mode, req.Discipline)},
		{Role: llm.RoleUser, Content: prompt.BuildUserDirective(req)},
	}

	text, err := c.p.Service.Stream(ctx, c.p.Model, msgs, c.p.OnDelta)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyOutput
	}
	return text, nil
}

// commit appends one entry and advances the week counter, keeping the
// counter equal to the sum of weeks across all entries.
func (c *Controller) commit(text string, weeks int, mode prompt.Mode, discipline string, startWeek int) {
	c.entries = append(c.entries, Entry{
		ID:         uuid.New().String(),
		Text:       text,
		Weeks:      weeks,
		Mode:       mode,
		Discipline: discipline,
		StartWeek:  startWeek,
		CreatedAt:  time.Now(),
	})
	c.weekCounter += weeks
	c.lastMode = mode
	c.lastDiscipline = discipline
	c.lastWeeks = weeks
}
