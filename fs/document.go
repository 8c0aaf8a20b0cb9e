// Package fs writes populated documents to the local filesystem.
package fs

import (
	"os"
	"path/filepath"
)

// WriteDocument saves html at path. The document is written to a temporary
// file next to path and renamed over it, so path never holds a partial
// document. Missing parent directories are created.
func WriteDocument(path, html string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(html), 0644); err != nil {
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
