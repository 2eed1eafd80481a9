package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fakeyudi/internsim/internal/llm"
	"github.com/fakeyudi/internsim/internal/prompt"
)

// buildService constructs the real generation client from the merged config.
// The API key is read from the configured environment variable.
func buildService() (llm.Service, error) {
	c := GetConfig()
	key := os.Getenv(c.APIKeyEnv)
	client, err := llm.NewClient(key, c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w (set %s)", err, c.APIKeyEnv)
	}
	return client, nil
}

// parseMode maps the user-facing mode flag onto a prompt.Mode.
func parseMode(s string) (prompt.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return prompt.ModeSingle, nil
	case "set":
		return prompt.ModeSet, nil
	case "all":
		return prompt.ModeAll, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected single, set, or all)", s)
	}
}

// validateWeeks enforces the 1-52 week range shared by all multi-week inputs.
func validateWeeks(n int) error {
	if n < 1 || n > 52 {
		return fmt.Errorf("weeks must be between 1 and 52, got %d", n)
	}
	return nil
}

// validateDiscipline checks the discipline against the fixed role set. An
// empty discipline is only legal in all mode.
func validateDiscipline(mode prompt.Mode, discipline string) error {
	if mode == prompt.ModeAll {
		return nil
	}
	for _, d := range prompt.Disciplines {
		if d == discipline {
			return nil
		}
	}
	return fmt.Errorf("unknown discipline %q (expected one of: %s)", discipline, strings.Join(prompt.Disciplines, ", "))
}

// loadProjectDescription reads the project README/description file. A
// missing or blank description is rejected before any service call.
func loadProjectDescription(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("a project description is required; pass --project <file>")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading project description: %w", err)
	}
	desc := strings.TrimSpace(string(data))
	if desc == "" {
		return "", fmt.Errorf("project description %s is empty", path)
	}
	return desc, nil
}

// diagnosticHint is printed after a generation failure.
const diagnosticHint = "Make sure your API key environment variable is set and the selected model is available on the endpoint."
