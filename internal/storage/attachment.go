// Package storage keeps product images on a local content root. Files are
// served back by the router's static mount, never read through this package.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// AttachmentStore writes and removes image files under a single root
// directory. Stored names are unique by construction
// (cover_<productID>_<uuid>[.ext]), so concurrent stores never collide and
// Delete is naturally idempotent.
type AttachmentStore struct {
	root string
}

func NewAttachmentStore(root string) *AttachmentStore {
	return &AttachmentStore{root: root}
}

// Store writes content under a fresh name derived from the owning product id.
// The extension of originalName is kept only when it has a dot-delimited
// suffix; otherwise the file is stored without one. The root directory is
// created on first use; an already existing directory is fine.
func (s *AttachmentStore) Store(content []byte, originalName string, productID uint) (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := ""
	if i := strings.LastIndex(originalName, "."); i > 0 {
		ext = originalName[i:]
	}

	name := fmt.Sprintf("cover_%d_%s%s", productID, uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(s.root, name), content, 0o644); err != nil {
		return "", fmt.Errorf("write attachment: %w", err)
	}
	return name, nil
}

// Delete removes the named file. A missing file is not a failure: it returns
// (false, nil) and stays (false, nil) on repeat calls. A real filesystem
// fault returns (false, err); the caller decides whether that is fatal.
func (s *AttachmentStore) Delete(name string) (bool, error) {
	if name == "" || name != filepath.Base(name) {
		return false, nil
	}
	err := os.Remove(filepath.Join(s.root, name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("delete attachment: %w", err)
}

// Path composes the on-disk path for name. No existence check.
func (s *AttachmentStore) Path(name string) string {
	return filepath.Join(s.root, name)
}

// Exists reports whether the named file is present.
func (s *AttachmentStore) Exists(name string) bool {
	if name == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(s.root, name))
	return err == nil
}
