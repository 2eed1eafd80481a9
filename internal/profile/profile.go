// Package profile manages the operator's persistent internsim profile.
// The profile is stored at ~/.config/internsim/profile.json and is created
// once via the interactive setup flow, then referenced on every command.
package profile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Profile holds operator-level preferences set during first-run setup.
type Profile struct {
	Name              string `json:"name"`
	DefaultModel      string `json:"default_model"`      // model identifier, empty = config default
	DefaultDiscipline string `json:"default_discipline"` // "Business" | "Systems Engineer" | "Developer"
	DefaultWeeks      int    `json:"default_weeks"`      // week count for set/all modes
	DefaultFormat     string `json:"default_format"`     // "markdown" | "json"
	OutputDir         string `json:"output_dir"`         // default timeline output dir
}

// profilePath returns the path to the profile file.
func profilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "internsim", "profile.json"), nil
}

// ConfigDir returns the internsim config directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "internsim"), nil
}

// Exists reports whether a profile file is present on disk.
func Exists() bool {
	p, err := profilePath()
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Load reads the profile from disk. Returns an error if the file is missing or malformed.
func Load() (*Profile, error) {
	p, err := profilePath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("profile not found — run 'internsim setup' to configure: %w", err)
	}
	var prof Profile
	if err := json.Unmarshal(data, &prof); err != nil {
		return nil, fmt.Errorf("malformed profile at %s: %w", p, err)
	}
	return &prof, nil
}

// Save writes the profile to disk, creating the config directory if needed.
func Save(prof *Profile) error {
	p, err := profilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prof, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

// RunSetup runs the interactive setup wizard and saves the resulting profile.
// If existing is non-nil, it is used as the default for each prompt (edit mode).
func RunSetup(existing *Profile) (*Profile, error) {
	r := bufio.NewReader(os.Stdin)

	ask := func(prompt, defaultVal string) (string, error) {
		if defaultVal != "" {
			fmt.Printf("%s [%s]: ", prompt, defaultVal)
		} else {
			fmt.Printf("%s: ", prompt)
		}
		line, err := r.ReadString('\n')
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return defaultVal, nil
		}
		return line, nil
	}

	prof := &Profile{
		DefaultDiscipline: "Business",
		DefaultWeeks:      4,
		DefaultFormat:     "markdown",
		OutputDir:         ".",
	}
	if existing != nil {
		*prof = *existing
	}

	fmt.Println()
	fmt.Println("  ┌─────────────────────────────────┐")
	fmt.Println("  │  internsim — first-time setup   │")
	fmt.Println("  └─────────────────────────────────┘")
	fmt.Println()

	var err error

	prof.Name, err = ask("  Your name (shown in timeline documents)", prof.Name)
	if err != nil {
		return nil, err
	}

	prof.DefaultModel, err = ask("  Default model (blank = config default)", prof.DefaultModel)
	if err != nil {
		return nil, err
	}

	disc, err := ask("  Default discipline (Business/Systems Engineer/Developer)", prof.DefaultDiscipline)
	if err != nil {
		return nil, err
	}
	prof.DefaultDiscipline = normaliseDiscipline(disc)

	weeks, err := ask("  Default weeks for multi-week modes (1-52)", strconv.Itoa(prof.DefaultWeeks))
	if err != nil {
		return nil, err
	}
	if n, convErr := strconv.Atoi(weeks); convErr == nil && n >= 1 && n <= 52 {
		prof.DefaultWeeks = n
	}

	format, err := ask("  Default output format (markdown/json)", prof.DefaultFormat)
	if err != nil {
		return nil, err
	}
	if format == "json" {
		prof.DefaultFormat = "json"
	} else {
		prof.DefaultFormat = "markdown"
	}

	prof.OutputDir, err = ask("  Default output directory", prof.OutputDir)
	if err != nil {
		return nil, err
	}

	fmt.Println()
	return prof, nil
}

// normaliseDiscipline maps loose input onto a canonical discipline name.
func normaliseDiscipline(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "business", "b":
		return "Business"
	case "systems engineer", "systems", "se", "s":
		return "Systems Engineer"
	case "developer", "dev", "d":
		return "Developer"
	default:
		return "Business"
	}
}
