package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/fakeyudi/internsim/internal/export"
	"github.com/fakeyudi/internsim/internal/tui"
)

var plainOutput bool

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "View an exported timeline document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", path)
			}
			return err
		}

		var parser export.DocumentParser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			parser = &export.JSONParser{}
		default:
			parser = &export.MarkdownParser{}
		}

		doc, err := parser.Parse(data)
		if err != nil {
			return err
		}

		if plainOutput {
			printDocument(doc)
			return nil
		}
		return tui.Run(doc, path)
	},
}

// printDocument writes a plain-text summary to stdout.
func printDocument(doc *export.TimelineDocument) {
	fmt.Println("## Summary")
	fmt.Printf("  Created:     %s\n", doc.Session.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("  Timeline:    %d week(s) across %d generation(s)\n", doc.Session.WeekCount, len(doc.Generations))
	if doc.Session.Model != "" {
		fmt.Printf("  Model:       %s\n", doc.Session.Model)
	}
	if doc.Session.Author != "" {
		fmt.Printf("  Author:      %s\n", doc.Session.Author)
	}
	fmt.Println()

	fmt.Println("## Generations")
	if len(doc.Generations) == 0 {
		fmt.Println("  (none)")
	} else {
		for i, g := range doc.Generations {
			disc := g.Discipline
			if disc == "" {
				disc = "all disciplines"
			}
			span := fmt.Sprintf("week %d", g.StartWeek)
			if g.Weeks > 1 {
				span = fmt.Sprintf("weeks %d-%d", g.StartWeek, g.StartWeek+g.Weeks-1)
			}
			fmt.Printf("  %d. %s  %s  (%s)\n", i+1, g.Mode, disc, span)
		}
	}
	fmt.Println()

	fmt.Println("## Events")
	fmt.Println(indent(doc.Text(), "  "))
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func init() {
	viewCmd.Flags().BoolVar(&plainOutput, "plain", false, "plain text output instead of TUI")
	rootCmd.AddCommand(viewCmd)
}
