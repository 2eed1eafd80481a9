package codebase

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	t.Run("labeled blocks in order", func(t *testing.T) {
		got := Format([]File{
			{Name: "a.go", Data: []byte("package a\n")},
			{Name: "b.go", Data: []byte("package b")},
		})
		wantA := "--- FILE: a.go ---\npackage a\n--- END FILE: a.go ---\n"
		wantB := "--- FILE: b.go ---\npackage b\n--- END FILE: b.go ---\n"
		if !strings.Contains(got, wantA) || !strings.Contains(got, wantB) {
			t.Errorf("missing labeled blocks:\n%s", got)
		}
		if strings.Index(got, wantA) > strings.Index(got, wantB) {
			t.Error("blocks out of order")
		}
	})

	t.Run("unreadable file becomes a placeholder", func(t *testing.T) {
		got := Format([]File{{Name: "secret.bin", Err: errors.New("permission denied")}})
		if !strings.Contains(got, "--- FILE: secret.bin (unreadable) ---") {
			t.Errorf("missing unreadable placeholder:\n%s", got)
		}
		if strings.Contains(got, "permission denied") {
			t.Error("underlying error leaked into the formatted context")
		}
	})

	t.Run("invalid utf8 is replaced not rejected", func(t *testing.T) {
		got := Format([]File{{Name: "bin", Data: []byte{0xff, 0xfe, 'o', 'k'}}})
		if !strings.Contains(got, "�") {
			t.Errorf("invalid bytes not replaced:\n%s", got)
		}
		if !strings.Contains(got, "ok") {
			t.Errorf("valid bytes dropped:\n%s", got)
		}
	})

	t.Run("oversized file is truncated with a marker", func(t *testing.T) {
		big := make([]byte, maxFileBytes+100)
		for i := range big {
			big[i] = 'x'
		}
		got := Format([]File{{Name: "big.dat", Data: big}})
		if !strings.Contains(got, "(truncated)") {
			t.Error("missing truncation marker")
		}
		if strings.Count(got, "x") != maxFileBytes {
			t.Errorf("truncated body has %d bytes, want %d", strings.Count(got, "x"), maxFileBytes)
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		if got := Format(nil); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}

func TestSnapshotReload(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("main.go", "package main\n")
	write("sub/util.go", "package sub\n")
	write("notes.log", "scratch\n")
	write(".gitignore", "*.log\n")

	s := NewSnapshot(dir, []string{".gitignore"})
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	text := s.Text()
	if !strings.Contains(text, "--- FILE: main.go ---") {
		t.Errorf("main.go missing:\n%s", text)
	}
	if !strings.Contains(text, filepath.Join("sub", "util.go")) {
		t.Errorf("nested file missing:\n%s", text)
	}
	if strings.Contains(text, "notes.log") {
		t.Errorf(".gitignore pattern not honoured:\n%s", text)
	}
	if strings.Contains(text, "--- FILE: .gitignore ---") {
		t.Errorf("configured ignore pattern not honoured:\n%s", text)
	}

	// Ordering is stable by name regardless of walk order.
	if strings.Index(text, "main.go") > strings.Index(text, filepath.Join("sub", "util.go")) {
		t.Error("files not sorted by name")
	}

	// A reload picks up changes.
	write("main.go", "package main // edited\n")
	if err := s.Reload(); err != nil {
		t.Fatalf("second Reload: %v", err)
	}
	if !strings.Contains(s.Text(), "// edited") {
		t.Error("reload did not pick up the edit")
	}
}

func TestSnapshotEmptyDir(t *testing.T) {
	s := NewSnapshot("", nil)
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload on empty dir: %v", err)
	}
	if s.Text() != "" {
		t.Errorf("empty snapshot has text: %q", s.Text())
	}
}

func TestReadPatternFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".internsimignore")
	content := "# comment\n\n*.tmp\n  vendor/  \n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	patterns, err := readPatternFile(p)
	if err != nil {
		t.Fatalf("readPatternFile: %v", err)
	}
	want := []string{"*.tmp", "vendor/"}
	if len(patterns) != len(want) {
		t.Fatalf("got %v, want %v", patterns, want)
	}
	for i := range want {
		if patterns[i] != want[i] {
			t.Errorf("pattern %d: got %q, want %q", i, patterns[i], want[i])
		}
	}

	if _, err := readPatternFile(filepath.Join(dir, "missing")); !os.IsNotExist(err) {
		t.Errorf("missing file: got %v, want not-exist", err)
	}
}
