package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/fakeyudi/internsim/internal/codebase"
	"github.com/fakeyudi/internsim/internal/export"
	"github.com/fakeyudi/internsim/internal/prompt"
	"github.com/fakeyudi/internsim/internal/timeline"
)

var (
	runProject    string
	runMode       string
	runDiscipline string
	runWeeks      int
	runModel      string
	runCrossRef   bool
	runContextDir string
	runFormat     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive simulation session",
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, err := loadProjectDescription(runProject)
		if err != nil {
			return err
		}
		mode, err := parseMode(runMode)
		if err != nil {
			return err
		}
		if err := validateWeeks(runWeeks); err != nil {
			return err
		}
		if mode == prompt.ModeSingle {
			runWeeks = 1
		}

		prof := GetProfile()
		discipline := runDiscipline
		if discipline == "" && prof != nil {
			discipline = prof.DefaultDiscipline
		}
		if mode == prompt.ModeAll {
			discipline = ""
		} else if err := validateDiscipline(mode, discipline); err != nil {
			return err
		}

		svc, err := buildService()
		if err != nil {
			return err
		}

		model := runModel
		if model == "" {
			model = GetConfig().Model
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Optional codebase context, kept fresh by a background watcher.
		var fileCtx func() string
		contextDir := runContextDir
		if contextDir == "" {
			contextDir = GetConfig().ContextDir
		}
		if contextDir != "" {
			snap := codebase.NewSnapshot(contextDir, GetConfig().IgnorePatterns)
			if err := snap.Reload(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: codebase context unavailable: %v\n", err)
			} else {
				go func() { _ = snap.Watch(ctx) }()
				fileCtx = snap.Text
			}
		}

		ctrl := timeline.New(timeline.Params{
			Service:        svc,
			Model:          model,
			Project:        desc,
			CrossReference: runCrossRef,
			FileContext:    fileCtx,
			OnDelta:        func(s string) { fmt.Print(s) },
		})

		sessionID := uuid.New().String()

		// Initial generation.
		fmt.Printf("Generating events (mode=%s", mode)
		if discipline != "" {
			fmt.Printf(", discipline=%s", discipline)
		}
		fmt.Printf(", weeks=%d)...\n\n", runWeeks)
		if _, err := ctrl.GenerateInitial(ctx, mode, discipline, runWeeks); err != nil {
			fmt.Fprintln(os.Stderr, diagnosticHint)
			return err
		}
		fmt.Println()

		return runLoop(ctx, ctrl, sessionID, model, mode, discipline, runWeeks)
	},
}

// runLoop is the interactive command loop. Each user action only records an
// intent on the controller; a single Step executes it. One generation is in
// flight at a time.
func runLoop(ctx context.Context, ctrl *timeline.Controller, sessionID, model string, mode prompt.Mode, discipline string, weeks int) error {
	r := bufio.NewReader(os.Stdin)

	for {
		fmt.Printf("\nTimeline: %d week(s) across %d generation(s).\n", ctrl.WeekCounter(), ctrl.Generations())
		fmt.Print("[next | extend N | redo <feedback> | start | save | reset | quit] > ")

		line, err := r.ReadString('\n')
		if err != nil {
			// EOF: save what we have and leave.
			return saveOnExit(ctrl, sessionID, model)
		}

		action, verb, perr := parseCommand(line)
		if perr != nil {
			fmt.Println(perr)
			continue
		}

		switch verb {
		case "quit":
			return saveOnExit(ctrl, sessionID, model)

		case "save":
			path, err := saveTimeline(ctrl, sessionID, model)
			if err != nil {
				return err
			}
			fmt.Printf("Timeline saved: %s\n", path)

		case "reset":
			ctrl.Reset()
			fmt.Println("Timeline cleared. Type 'start' to generate again.")

		case "start":
			if ctrl.Generations() > 0 {
				fmt.Println("Timeline already has generations; 'reset' first.")
				continue
			}
			fmt.Println()
			if _, err := ctrl.GenerateInitial(ctx, mode, discipline, weeks); err != nil {
				fmt.Printf("\nGeneration failed: %v\n%s\n", err, diagnosticHint)
			}
			fmt.Println()

		case "action":
			ctrl.Request(action)
			fmt.Println()
			_, executed, err := ctrl.Step(ctx)
			if err != nil {
				fmt.Printf("\nGeneration failed: %v\n%s\n", err, diagnosticHint)
				continue
			}
			if executed {
				fmt.Println()
			}

		case "help", "":
			printRunHelp()
		}
	}
}

// parseCommand parses one REPL line. verb is "action" when a timeline action
// was recognised; action is then populated. Any trailing words after next /
// extend N / redo become the feedback text for that action.
func parseCommand(line string) (action timeline.Action, verb string, err error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return timeline.Action{}, "", nil
	}

	switch strings.ToLower(fields[0]) {
	case "next", "n":
		return timeline.Action{
			Kind:     timeline.ActionContinueOne,
			Feedback: strings.Join(fields[1:], " "),
		}, "action", nil

	case "extend", "e":
		if len(fields) < 2 {
			return timeline.Action{}, "", fmt.Errorf("usage: extend <weeks> [feedback]")
		}
		n, convErr := strconv.Atoi(fields[1])
		if convErr != nil {
			return timeline.Action{}, "", fmt.Errorf("usage: extend <weeks> [feedback]")
		}
		if err := validateWeeks(n); err != nil {
			return timeline.Action{}, "", err
		}
		return timeline.Action{
			Kind:     timeline.ActionContinueN,
			Weeks:    n,
			Feedback: strings.Join(fields[2:], " "),
		}, "action", nil

	case "redo", "r":
		// Regenerate requires feedback; there is nothing to steer a retry
		// with otherwise.
		feedback := strings.TrimSpace(strings.Join(fields[1:], " "))
		if feedback == "" {
			return timeline.Action{}, "", fmt.Errorf("redo requires feedback: redo <feedback>")
		}
		return timeline.Action{
			Kind:     timeline.ActionRegenerate,
			Feedback: feedback,
		}, "action", nil

	case "save", "s":
		return timeline.Action{}, "save", nil
	case "reset":
		return timeline.Action{}, "reset", nil
	case "start":
		return timeline.Action{}, "start", nil
	case "quit", "q", "exit":
		return timeline.Action{}, "quit", nil
	case "help", "h", "?":
		return timeline.Action{}, "help", nil
	default:
		return timeline.Action{}, "", fmt.Errorf("unknown command %q (try 'help')", fields[0])
	}
}

func printRunHelp() {
	fmt.Println("  next [feedback]       generate the next week")
	fmt.Println("  extend <n> [feedback] generate the next n weeks")
	fmt.Println("  redo <feedback>       regenerate the last generation with feedback")
	fmt.Println("  start                 initial generation (after a reset)")
	fmt.Println("  save                  write the timeline document now")
	fmt.Println("  reset                 clear the timeline")
	fmt.Println("  quit                  save and exit")
}

// saveTimeline renders the committed timeline and writes it atomically to
// the configured output directory.
func saveTimeline(ctrl *timeline.Controller, sessionID, model string) (string, error) {
	c := GetConfig()
	format := runFormat
	if format == "" {
		format = c.DefaultFormat
	}

	author := ""
	if prof := GetProfile(); prof != nil {
		author = prof.Name
	}
	doc := export.FromEntries(sessionID, model, author, ctrl.Entries())

	var renderer export.DocumentRenderer
	ext := ".md"
	if format == "json" {
		renderer = &export.JSONRenderer{}
		ext = ".json"
	} else {
		renderer = &export.MarkdownRenderer{}
	}

	data, err := renderer.Render(doc)
	if err != nil {
		return "", fmt.Errorf("render timeline: %w", err)
	}

	outputDir := c.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	path := filepath.Join(outputDir, "intern-events-"+time.Now().Format(time.RFC3339)+ext)
	if err := export.WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// saveOnExit writes the timeline if there is anything committed.
func saveOnExit(ctrl *timeline.Controller, sessionID, model string) error {
	if ctrl.Generations() == 0 {
		return nil
	}
	path, err := saveTimeline(ctrl, sessionID, model)
	if err != nil {
		return err
	}
	fmt.Printf("Session ended. Timeline: %s\n", path)
	return nil
}

func init() {
	runCmd.Flags().StringVar(&runProject, "project", "", "Path to the project README / description (required)")
	runCmd.Flags().StringVar(&runMode, "mode", "single", "Generation mode: single, set, or all")
	runCmd.Flags().StringVar(&runDiscipline, "discipline", "", "Intern discipline for single/set modes")
	runCmd.Flags().IntVar(&runWeeks, "weeks", 4, "Number of weeks for set/all modes (1-52)")
	runCmd.Flags().StringVar(&runModel, "model", "", "Model identifier (overrides config)")
	runCmd.Flags().BoolVar(&runCrossRef, "cross-ref", true, "Cross-discipline references in all mode")
	runCmd.Flags().StringVar(&runContextDir, "context", "", "Directory of source files used as codebase context")
	runCmd.Flags().StringVar(&runFormat, "format", "", "Timeline output format: markdown or json (overrides config)")
	rootCmd.AddCommand(runCmd)
}
