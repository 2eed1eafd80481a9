package cmd

import (
	"github.com/spf13/cobra"
	"github.com/fakeyudi/internsim/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available on the generation endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Without credentials, enumeration cannot be attempted; fall back to
		// the fixed list the same way a failed retrieval does.
		svc, err := buildService()
		if err != nil {
			for _, m := range llm.FallbackModels {
				cmd.Println(m)
			}
			return nil
		}

		for _, m := range svc.Models(cmd.Context()) {
			cmd.Println(m)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
