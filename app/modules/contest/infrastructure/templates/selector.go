// Package templates picks meme templates for new contests from a local
// directory of image files.
package templates

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// FileSelector selects a random image file from a directory. The directory
// is re-read on every selection so templates can be added or removed
// without a restart.
type FileSelector struct {
	dir string
}

// NewFileSelector creates a FileSelector over dir.
func NewFileSelector(dir string) *FileSelector {
	return &FileSelector{dir: dir}
}

// Select returns the path of a randomly chosen template image.
func (s *FileSelector) Select(ctx context.Context) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("failed to read template directory %s: %w", s.dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			candidates = append(candidates, filepath.Join(s.dir, entry.Name()))
		}
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("no template images in %s", s.dir)
	}

	return candidates[rand.IntN(len(candidates))], nil
}
