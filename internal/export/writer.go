package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to path atomically via a temp file + os.Rename, so a
// half-written timeline document is never left behind.
func WriteFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "timeline-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write timeline document: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up the temp file on any error path.
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write timeline document: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write timeline document: %w", err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to write timeline document: %w", err)
	}
	return nil
}
