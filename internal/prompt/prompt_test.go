package prompt

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestBuildSystemDirective(t *testing.T) {
	tests := []struct {
		name       string
		mode       Mode
		discipline string
		contains   []string
		excludes   []string
	}{
		{
			name:       "single mode scopes to the discipline",
			mode:       ModeSingle,
			discipline: "Business",
			contains: []string{
				`"## Week"`,
				"Never ask clarifying questions",
				"Never add meta-commentary",
				"Only events for the Business discipline",
			},
		},
		{
			name:       "set mode scopes to the discipline",
			mode:       ModeSet,
			discipline: "Developer",
			contains:   []string{"Only events for the Developer discipline"},
		},
		{
			name:     "all mode demands intra-week causality",
			mode:     ModeAll,
			contains: []string{"causal consequences of the events for earlier disciplines"},
			excludes: []string{"Only events for the"},
		},
		{
			name:     "unknown discipline omits the scoping rule",
			mode:     ModeSingle,
			contains: []string{`"## Week"`},
			excludes: []string{"Only events for the"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSystemDirective(tt.mode, tt.discipline)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("directive missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("directive should not contain %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestBuildUserDirective(t *testing.T) {
	base := Request{
		Project:    "Build a scheduling service.",
		Mode:       ModeSingle,
		Discipline: "Business",
		Weeks:      1,
		StartWeek:  1,
	}

	t.Run("unconditional sections always present", func(t *testing.T) {
		got := BuildUserDirective(base)
		for _, want := range []string{
			"=== PROJECT DESCRIPTION ===\nBuild a scheduling service.\n=== END PROJECT DESCRIPTION ===",
			"Every event must follow this exact format:",
			OutputTemplate,
			`starting with "## Week 1".`,
		} {
			if !strings.Contains(got, want) {
				t.Errorf("directive missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("conditional blocks absent when inputs empty", func(t *testing.T) {
		got := BuildUserDirective(base)
		for _, bad := range []string{"PREVIOUS EVENTS", "FEEDBACK", "CODEBASE CONTEXT"} {
			if strings.Contains(got, bad) {
				t.Errorf("directive should not contain %q block:\n%s", bad, got)
			}
		}
	})

	t.Run("conditional blocks present when inputs set", func(t *testing.T) {
		req := base
		req.StartWeek = 4
		req.Previous = "## Week 1: kickoff"
		req.Feedback = "less jargon please"
		req.FileContext = "--- FILE: main.go ---\npackage main\n--- END FILE: main.go ---"
		got := BuildUserDirective(req)
		for _, want := range []string{
			"=== PREVIOUS EVENTS ===\n## Week 1: kickoff\n=== END PREVIOUS EVENTS ===",
			"=== FEEDBACK ===\nless jargon please\n=== END FEEDBACK ===",
			"=== CODEBASE CONTEXT ===",
			"--- FILE: main.go ---",
			`starting with "## Week 4".`,
		} {
			if !strings.Contains(got, want) {
				t.Errorf("directive missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("single mode instruction", func(t *testing.T) {
		req := base
		req.StartWeek = 7
		got := BuildUserDirective(req)
		if !strings.Contains(got, "Generate exactly one event, for week 7.") {
			t.Errorf("missing single-event instruction:\n%s", got)
		}
	})

	t.Run("set mode instruction names the week range", func(t *testing.T) {
		req := base
		req.Mode = ModeSet
		req.Weeks = 3
		req.StartWeek = 5
		got := BuildUserDirective(req)
		if !strings.Contains(got, "exactly 3 consecutive weeks, weeks 5 through 7") {
			t.Errorf("missing set instruction:\n%s", got)
		}
	})

	t.Run("all mode includes every discipline's guidance", func(t *testing.T) {
		req := base
		req.Mode = ModeAll
		req.Discipline = ""
		req.Weeks = 2
		got := BuildUserDirective(req)
		for _, d := range Disciplines {
			if !strings.Contains(got, GuidanceFor(d)) {
				t.Errorf("all mode missing guidance for %s", d)
			}
		}
		if !strings.Contains(got, "Generate 6 events") {
			t.Errorf("all mode instruction wrong:\n%s", got)
		}
	})

	t.Run("cross reference toggles the causal-chain rule", func(t *testing.T) {
		req := base
		req.Mode = ModeAll
		req.Discipline = ""
		const rule = "explicitly name and causally reference each other"

		req.CrossReference = true
		if got := BuildUserDirective(req); !strings.Contains(got, rule) {
			t.Error("cross-reference rule missing when enabled")
		}
		req.CrossReference = false
		if got := BuildUserDirective(req); strings.Contains(got, rule) {
			t.Error("cross-reference rule present when disabled")
		}
	})
}

func TestGuidanceFor(t *testing.T) {
	for _, d := range Disciplines {
		if GuidanceFor(d) == "" {
			t.Errorf("no guidance for known discipline %q", d)
		}
	}
	if g := GuidanceFor("Astronaut"); g != "" {
		t.Errorf("unknown discipline returned guidance: %q", g)
	}
	if g := GuidanceFor(""); g != "" {
		t.Errorf("empty discipline returned guidance: %q", g)
	}
}

// Property: composition is total and deterministic, the closing directive
// always pins the start week, and no input can suppress the unconditional
// sections.
func TestBuildUserDirectiveProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		req := Request{
			Project:        rapid.String().Draw(rt, "project"),
			Mode:           Mode(rapid.SampledFrom([]string{"single", "set", "all", "bogus"}).Draw(rt, "mode")),
			Discipline:     rapid.SampledFrom([]string{"Business", "Systems Engineer", "Developer", "Nonsense", ""}).Draw(rt, "discipline"),
			Weeks:          rapid.IntRange(-2, 60).Draw(rt, "weeks"),
			StartWeek:      rapid.IntRange(1, 200).Draw(rt, "start_week"),
			Previous:       rapid.String().Draw(rt, "previous"),
			Feedback:       rapid.String().Draw(rt, "feedback"),
			FileContext:    rapid.String().Draw(rt, "file_context"),
			CrossReference: rapid.Bool().Draw(rt, "cross_reference"),
		}

		got := BuildUserDirective(req)
		if got != BuildUserDirective(req) {
			rt.Fatal("composition is not deterministic")
		}

		closing := fmt.Sprintf(`starting with "## Week %d".`, req.StartWeek)
		if !strings.HasSuffix(got, closing) {
			rt.Fatalf("directive does not end with %q", closing)
		}
		if !strings.Contains(got, "=== PROJECT DESCRIPTION ===") {
			rt.Fatal("project section missing")
		}
		if !strings.Contains(got, OutputTemplate) {
			rt.Fatal("output template missing")
		}

		sys := BuildSystemDirective(req.Mode, req.Discipline)
		if sys == "" {
			rt.Fatal("system directive is empty")
		}
		if !strings.Contains(sys, Sentinel) {
			rt.Fatal("system directive does not pin the sentinel")
		}
	})
}
