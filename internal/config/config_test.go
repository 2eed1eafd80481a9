package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pgregory.net/rapid"
)

func TestDefaultsValues(t *testing.T) {
	d := Defaults()
	if d.Model != "llama-3.3-70b-versatile" {
		t.Errorf("Model: got %q", d.Model)
	}
	if d.APIKeyEnv != "GROQ_API_KEY" {
		t.Errorf("APIKeyEnv: got %q", d.APIKeyEnv)
	}
	if d.DefaultFormat != "markdown" {
		t.Errorf("DefaultFormat: got %q", d.DefaultFormat)
	}
	if d.OutputDir != "." {
		t.Errorf("OutputDir: got %q", d.OutputDir)
	}
	if d.BaseURL != "" {
		t.Errorf("BaseURL: got %q, want empty", d.BaseURL)
	}
	if d.ContextDir != "" {
		t.Errorf("ContextDir: got %q, want empty", d.ContextDir)
	}
	if d.IgnorePatterns == nil || len(d.IgnorePatterns) != 0 {
		t.Errorf("IgnorePatterns: got %v, want empty non-nil slice", d.IgnorePatterns)
	}
}

// checkStringField verifies project-over-global-over-default precedence for
// one string field.
func checkStringField(rt *rapid.T, name, merged, def, global, project string) {
	want := def
	if global != "" {
		want = global
	}
	if project != "" {
		want = project
	}
	if merged != want {
		rt.Fatalf("%s: got %q, want %q (default %q, global %q, project %q)",
			name, merged, want, def, global, project)
	}
}

// Property: for every field, Merge resolves project over global over
// defaults, where the empty value means "not set".
func TestMergePrecedence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maybe := func(label string, values []string) string {
			return rapid.SampledFrom(append([]string{""}, values...)).Draw(rt, label)
		}

		global := &Config{
			Model:         maybe("g_model", []string{"llama-3.1-8b-instant", "mixtral-8x7b"}),
			BaseURL:       maybe("g_base_url", []string{"https://api.example.com/v1"}),
			APIKeyEnv:     maybe("g_api_key_env", []string{"MY_KEY"}),
			DefaultFormat: maybe("g_format", []string{"json"}),
			OutputDir:     maybe("g_output_dir", []string{"/tmp/out"}),
			ContextDir:    maybe("g_context_dir", []string{"./src"}),
		}
		project := &Config{
			Model:         maybe("p_model", []string{"llama-3.3-70b-versatile", "gemma2-9b-it"}),
			BaseURL:       maybe("p_base_url", []string{"https://proxy.internal/v1"}),
			APIKeyEnv:     maybe("p_api_key_env", []string{"PROJECT_KEY"}),
			DefaultFormat: maybe("p_format", []string{"markdown"}),
			OutputDir:     maybe("p_output_dir", []string{"./timelines"}),
			ContextDir:    maybe("p_context_dir", []string{"./lib"}),
		}
		if rapid.Bool().Draw(rt, "g_patterns") {
			global.IgnorePatterns = []string{"*.log"}
		}
		if rapid.Bool().Draw(rt, "p_patterns") {
			project.IgnorePatterns = []string{"vendor/*", "*.tmp"}
		}

		merged := Merge(global, project)
		def := Defaults()

		checkStringField(rt, "Model", merged.Model, def.Model, global.Model, project.Model)
		checkStringField(rt, "BaseURL", merged.BaseURL, def.BaseURL, global.BaseURL, project.BaseURL)
		checkStringField(rt, "APIKeyEnv", merged.APIKeyEnv, def.APIKeyEnv, global.APIKeyEnv, project.APIKeyEnv)
		checkStringField(rt, "DefaultFormat", merged.DefaultFormat, def.DefaultFormat, global.DefaultFormat, project.DefaultFormat)
		checkStringField(rt, "OutputDir", merged.OutputDir, def.OutputDir, global.OutputDir, project.OutputDir)
		checkStringField(rt, "ContextDir", merged.ContextDir, def.ContextDir, global.ContextDir, project.ContextDir)

		wantPatterns := def.IgnorePatterns
		if len(global.IgnorePatterns) > 0 {
			wantPatterns = global.IgnorePatterns
		}
		if len(project.IgnorePatterns) > 0 {
			wantPatterns = project.IgnorePatterns
		}
		if len(merged.IgnorePatterns) != len(wantPatterns) {
			rt.Fatalf("IgnorePatterns: got %v, want %v", merged.IgnorePatterns, wantPatterns)
		}
	})
}

func TestMergeNilInputs(t *testing.T) {
	merged := Merge(nil, nil)
	if merged.Model != Defaults().Model || merged.APIKeyEnv != Defaults().APIKeyEnv {
		t.Errorf("Merge(nil, nil) should equal defaults, got %+v", merged)
	}

	global := &Config{Model: "mixtral-8x7b"}
	merged = Merge(global, nil)
	if merged.Model != "mixtral-8x7b" {
		t.Errorf("global-only merge: Model got %q", merged.Model)
	}
	if merged.APIKeyEnv != "GROQ_API_KEY" {
		t.Errorf("global-only merge: APIKeyEnv got %q, want default", merged.APIKeyEnv)
	}
}

func TestLoadGlobalMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadGlobal returned nil config")
	}
	if cfg.Model != Defaults().Model {
		t.Errorf("Model: got %q, want default", cfg.Model)
	}
}

func TestLoadGlobalReadsFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "internsim")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `{"model": "gemma2-9b-it", "output_dir": "/srv/timelines"}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.Model != "gemma2-9b-it" {
		t.Errorf("Model: got %q", cfg.Model)
	}
	if cfg.OutputDir != "/srv/timelines" {
		t.Errorf("OutputDir: got %q", cfg.OutputDir)
	}
	// Unset keys stay zero; Merge fills defaults later.
	if cfg.APIKeyEnv != "" {
		t.Errorf("APIKeyEnv: got %q, want empty", cfg.APIKeyEnv)
	}
}

func TestLoadGlobalBadJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "internsim")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadGlobal()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("got %v, want *ParseError", err)
	}
}

func TestLoadProjectMissingFileReturnsNil(t *testing.T) {
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })

	cfg, err := LoadProject()
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if cfg != nil {
		t.Errorf("missing project file should yield nil, got %+v", cfg)
	}
}
