// Package browse finds the previous and next file next to an image, the way
// the viewer steps through a directory.
package browse

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Direction is a step through the directory listing.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

func (d Direction) String() string {
	if d < 0 {
		return "prev"
	}
	return "next"
}

// ErrNoSibling is returned when the current file is first (for Prev) or
// last (for Next) in its directory. Navigation does not wrap around.
var ErrNoSibling = errors.New("no sibling file")

// Entries reads all regular files in dir, sorted by name.
//
// Arguments:
// - dir: Directory to list.
//
// Returns:
// - []string: Paths joined with dir.
// - error: Error if the directory cannot be read.
func Entries(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, file.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}

// Sibling returns the file one step from path in direction d within the
// same directory.
func Sibling(path string, d Direction) (string, error) {
	paths, err := Entries(filepath.Dir(path))
	if err != nil {
		return "", err
	}

	current := filepath.Clean(path)
	i := sort.SearchStrings(paths, current)
	if i == len(paths) || paths[i] != current {
		return "", fmt.Errorf("%s: %w", path, os.ErrNotExist)
	}

	j := i + int(d)
	if j < 0 || j >= len(paths) {
		return "", fmt.Errorf("%s of %s: %w", d, path, ErrNoSibling)
	}
	return paths[j], nil
}
