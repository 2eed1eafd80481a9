// Package codebase turns source files into labeled text blocks that ground
// developer-oriented events, and keeps that context fresh during an
// interactive session.
package codebase

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// maxFileBytes caps how much of a single file is included. Larger files are
// truncated with a marker rather than dropped.
const maxFileBytes = 128 * 1024

// File is one named blob of supplementary context. Err marks a file that
// could not be read; it is rendered as an unreadable placeholder instead of
// failing the whole operation.
type File struct {
	Name string
	Data []byte
	Err  error
}

// Format renders files as labeled begin/end blocks. Byte content is decoded
// best-effort: undecodable bytes are replaced, never rejected.
func Format(files []File) string {
	var sb strings.Builder
	for i, f := range files {
		if i > 0 {
			sb.WriteString("\n")
		}
		if f.Err != nil {
			fmt.Fprintf(&sb, "--- FILE: %s (unreadable) ---\n", f.Name)
			fmt.Fprintf(&sb, "--- END FILE: %s ---\n", f.Name)
			continue
		}
		data := f.Data
		truncated := false
		if len(data) > maxFileBytes {
			data = data[:maxFileBytes]
			truncated = true
		}
		fmt.Fprintf(&sb, "--- FILE: %s ---\n", f.Name)
		sb.WriteString(strings.ToValidUTF8(string(data), "�"))
		if !strings.HasSuffix(string(data), "\n") {
			sb.WriteString("\n")
		}
		if truncated {
			sb.WriteString("(truncated)\n")
		}
		fmt.Fprintf(&sb, "--- END FILE: %s ---\n", f.Name)
	}
	return sb.String()
}

// Snapshot holds the formatted context for a directory. Reload walks the
// directory; Text is safe to call from the generation path while a watcher
// goroutine refreshes the snapshot.
type Snapshot struct {
	Dir            string
	IgnorePatterns []string

	mu   sync.Mutex
	text string
}

// NewSnapshot creates a Snapshot for dir. An empty dir yields an empty
// snapshot that never reloads anything.
func NewSnapshot(dir string, ignorePatterns []string) *Snapshot {
	return &Snapshot{Dir: dir, IgnorePatterns: ignorePatterns}
}

// Text returns the current formatted context.
func (s *Snapshot) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Reload walks the directory and rebuilds the formatted context. Unreadable
// files become placeholders; only a failure to resolve the directory itself
// is an error.
func (s *Snapshot) Reload() error {
	if s.Dir == "" {
		return nil
	}
	patterns, err := s.loadIgnorePatterns()
	if err != nil {
		return fmt.Errorf("loading ignore patterns: %w", err)
	}

	var files []File
	walkErr := filepath.WalkDir(s.Dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if s.isIgnored(path, patterns) {
			return nil
		}
		name := path
		if rel, err := filepath.Rel(s.Dir, path); err == nil {
			name = rel
		}
		data, err := os.ReadFile(path)
		files = append(files, File{Name: name, Data: data, Err: err})
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("walking context directory: %w", walkErr)
	}

	// Stable ordering keeps prompt composition deterministic across reloads.
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	s.mu.Lock()
	s.text = Format(files)
	s.mu.Unlock()
	return nil
}

// isIgnored reports whether path matches any of the given glob patterns,
// checked against the base name, the dir-relative path, and the full path.
func (s *Snapshot) isIgnored(path string, patterns []string) bool {
	rel := path
	if s.Dir != "" {
		if r, err := filepath.Rel(s.Dir, path); err == nil {
			rel = r
		}
	}
	base := filepath.Base(path)

	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, rel); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

// loadIgnorePatterns merges the configured patterns with those from
// .gitignore and .internsimignore files found in the context directory.
func (s *Snapshot) loadIgnorePatterns() ([]string, error) {
	patterns := make([]string, len(s.IgnorePatterns))
	copy(patterns, s.IgnorePatterns)

	for _, name := range []string{".gitignore", ".internsimignore"} {
		p := filepath.Join(s.Dir, name)
		extra, err := readPatternFile(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return patterns, err
		}
		patterns = append(patterns, extra...)
	}
	return patterns, nil
}

// readPatternFile reads a gitignore-style file and returns non-empty,
// non-comment lines.
func readPatternFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, scanner.Err()
}
