// Package prompt assembles the instruction payload sent to the generation
// service. Composition is pure: the same Request always yields the same
// directives, and no input is ever rejected.
package prompt

import (
	"fmt"
	"strings"
)

// Mode selects the shape of a generation request.
type Mode string

const (
	// ModeSingle generates exactly one event for one discipline.
	ModeSingle Mode = "single"
	// ModeSet generates a continuous multi-week narrative for one discipline.
	ModeSet Mode = "set"
	// ModeAll generates every discipline's events, organised week-first.
	ModeAll Mode = "all"
)

// Sentinel is the required opening of every generated event block. The system
// directive instructs the model to begin output with it, and callers may use
// it to spot non-compliant output.
const Sentinel = "## Week"

// Request describes one call to the generation service.
type Request struct {
	Project        string // project README / description, included verbatim
	Mode           Mode
	Discipline     string // required for single/set; empty for all
	Weeks          int
	StartWeek      int
	Previous       string // committed timeline text; empty on initial generation
	Feedback       string // operator steering text; empty when none
	FileContext    string // formatted supplementary file blocks; empty when none
	CrossReference bool   // all mode only: same-week events must reference each other
}

// BuildSystemDirective produces the role instructions for the generation
// service. The directive pins the output sentinel, forbids questions and
// meta-commentary, and encodes the discipline scoping rule for the mode.
func BuildSystemDirective(mode Mode, discipline string) string {
	var sb strings.Builder

	sb.WriteString("You are the scenario engine for a multi-week internship simulation. ")
	sb.WriteString("You generate realistic weekly events that interns respond to as if they were working on a real project.\n\n")

	sb.WriteString("Rules:\n")
	fmt.Fprintf(&sb, "- Your output must begin immediately with %q. No preamble, no introduction.\n", Sentinel)
	sb.WriteString("- Never ask clarifying questions. Work with the information you are given.\n")
	sb.WriteString("- Never add meta-commentary about the simulation, the prompt, or your own output.\n")

	if mode == ModeAll {
		sb.WriteString("- Within a week, events for later disciplines must be causal consequences of the events for earlier disciplines in that same week.\n")
	} else if discipline != "" {
		fmt.Fprintf(&sb, "- Only events for the %s discipline may appear. Do not generate events for any other discipline.\n", discipline)
	}

	return sb.String()
}

// BuildUserDirective produces the task payload for a Request. Unconditional
// sections come first (project, guidance, format), followed by the
// mode-specific instruction and any conditional context blocks, and always
// ends with the closing directive.
func BuildUserDirective(req Request) string {
	var sb strings.Builder

	sb.WriteString("=== PROJECT DESCRIPTION ===\n")
	sb.WriteString(req.Project)
	sb.WriteString("\n=== END PROJECT DESCRIPTION ===\n\n")

	if req.Mode == ModeAll {
		sb.WriteString("Discipline guidance for all three intern roles:\n\n")
		for _, d := range Disciplines {
			fmt.Fprintf(&sb, "%s:\n%s\n", d, GuidanceFor(d))
		}
	} else if g := GuidanceFor(req.Discipline); g != "" {
		fmt.Fprintf(&sb, "Discipline guidance for the %s intern:\n%s\n", req.Discipline, g)
	}
	sb.WriteString("\n")

	sb.WriteString("Every event must follow this exact format:\n\n")
	sb.WriteString(OutputTemplate)
	sb.WriteString("\n")

	sb.WriteString(modeInstruction(req))
	sb.WriteString("\n")

	if req.Previous != "" {
		sb.WriteString("=== PREVIOUS EVENTS ===\n")
		sb.WriteString(req.Previous)
		sb.WriteString("\n=== END PREVIOUS EVENTS ===\n")
		sb.WriteString("The events above have already happened. New events must advance the project timeline from where it left off. Do not repeat, restate, or contradict prior events.\n\n")
	}

	if req.Feedback != "" {
		sb.WriteString("=== FEEDBACK ===\n")
		sb.WriteString(req.Feedback)
		sb.WriteString("\n=== END FEEDBACK ===\n")
		sb.WriteString("Incorporate this feedback into the events you generate now.\n\n")
	}

	if req.FileContext != "" {
		sb.WriteString("=== CODEBASE CONTEXT ===\n")
		sb.WriteString(req.FileContext)
		sb.WriteString("\n=== END CODEBASE CONTEXT ===\n")
		sb.WriteString("Use this source material to ground technical details where relevant.\n\n")
	}

	fmt.Fprintf(&sb, "Begin now. Output only the events in the format above, starting with \"%s %d\".", Sentinel, req.StartWeek)

	return sb.String()
}

// modeInstruction returns the per-mode task statement.
func modeInstruction(req Request) string {
	switch req.Mode {
	case ModeSingle:
		return fmt.Sprintf(
			"Generate exactly one event, for week %d. Stop after the first \"---\" separator. Do not continue into a second week.\n",
			req.StartWeek)
	case ModeSet:
		return fmt.Sprintf(
			"Generate a continuous narrative across exactly %d consecutive weeks, weeks %d through %d. Events in later weeks must be consequences of events in earlier weeks.\n",
			req.Weeks, req.StartWeek, req.StartWeek+req.Weeks-1)
	case ModeAll:
		s := fmt.Sprintf(
			"Generate %d events: one event per discipline (Business, Systems Engineer, Developer) for each of the %d weeks, weeks %d through %d. Organise output week-first: all three disciplines' events for a week before moving to the next week.\n",
			3*req.Weeks, req.Weeks, req.StartWeek, req.StartWeek+req.Weeks-1)
		if req.CrossReference {
			s += "Within each week, events must explicitly name and causally reference each other across disciplines: a business observation leads to a systems engineering architectural consequence, which leads to a developer build consequence.\n"
		}
		return s
	default:
		return ""
	}
}
