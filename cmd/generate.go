package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/fakeyudi/internsim/internal/codebase"
	"github.com/fakeyudi/internsim/internal/prompt"
	"github.com/fakeyudi/internsim/internal/timeline"
)

var (
	genProject    string
	genMode       string
	genDiscipline string
	genWeeks      int
	genModel      string
	genCrossRef   bool
	genContextDir string
	genFormat     string
	genDryRun     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "One-shot generation: produce a timeline document without the interactive loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, err := loadProjectDescription(genProject)
		if err != nil {
			return err
		}
		mode, err := parseMode(genMode)
		if err != nil {
			return err
		}
		if err := validateWeeks(genWeeks); err != nil {
			return err
		}
		if mode == prompt.ModeSingle {
			genWeeks = 1
		}
		discipline := genDiscipline
		if mode == prompt.ModeAll {
			discipline = ""
		} else if err := validateDiscipline(mode, discipline); err != nil {
			return err
		}

		fileContext := ""
		if genContextDir != "" {
			snap := codebase.NewSnapshot(genContextDir, GetConfig().IgnorePatterns)
			if err := snap.Reload(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: codebase context unavailable: %v\n", err)
			} else {
				fileContext = snap.Text()
			}
		}

		if genDryRun {
			// Print the composed payload instead of calling the service.
			req := prompt.Request{
				Project:        desc,
				Mode:           mode,
				Discipline:     discipline,
				Weeks:          genWeeks,
				StartWeek:      1,
				FileContext:    fileContext,
				CrossReference: genCrossRef,
			}
			cmd.Println("--- system ---")
			cmd.Println(prompt.BuildSystemDirective(mode, discipline))
			cmd.Println("--- user ---")
			cmd.Println(prompt.BuildUserDirective(req))
			return nil
		}

		svc, err := buildService()
		if err != nil {
			return err
		}
		model := genModel
		if model == "" {
			model = GetConfig().Model
		}

		var fileCtx func() string
		if fileContext != "" {
			fileCtx = func() string { return fileContext }
		}
		ctrl := timeline.New(timeline.Params{
			Service:        svc,
			Model:          model,
			Project:        desc,
			CrossReference: genCrossRef,
			FileContext:    fileCtx,
			OnDelta:        func(s string) { fmt.Print(s) },
		})

		if _, err := ctrl.GenerateInitial(cmd.Context(), mode, discipline, genWeeks); err != nil {
			fmt.Fprintln(os.Stderr, diagnosticHint)
			return err
		}
		fmt.Println()

		runFormat = genFormat // saveTimeline honours the format override
		path, err := saveTimeline(ctrl, uuid.New().String(), model)
		if err != nil {
			return err
		}
		fmt.Printf("Timeline saved: %s\n", path)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&genProject, "project", "", "Path to the project README / description (required)")
	generateCmd.Flags().StringVar(&genMode, "mode", "set", "Generation mode: single, set, or all")
	generateCmd.Flags().StringVar(&genDiscipline, "discipline", "", "Intern discipline for single/set modes")
	generateCmd.Flags().IntVar(&genWeeks, "weeks", 4, "Number of weeks for set/all modes (1-52)")
	generateCmd.Flags().StringVar(&genModel, "model", "", "Model identifier (overrides config)")
	generateCmd.Flags().BoolVar(&genCrossRef, "cross-ref", true, "Cross-discipline references in all mode")
	generateCmd.Flags().StringVar(&genContextDir, "context", "", "Directory of source files used as codebase context")
	generateCmd.Flags().StringVar(&genFormat, "format", "", "Timeline output format: markdown or json (overrides config)")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Print the composed prompt payload instead of calling the service")
	rootCmd.AddCommand(generateCmd)
}
