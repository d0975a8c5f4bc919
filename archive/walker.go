// Package archive reads theme packages distributed as zip files.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrNotFound is returned by Find when no entry matches.
var ErrNotFound = errors.New("entry not found in archive")

// maxEntrySize limits how much of a single entry is read into memory.
const maxEntrySize = 16 << 20

// maxDepth is how deep below archive root Find looks.
const maxDepth = 1

// walk calls fn for every file matching in the archive. Entries with absolute
// paths or ".." components abort the walk to prevent Zip Slip.
func walk(r *zip.Reader, match func(*zip.File) bool, fn func(*zip.File) error) error {
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if !f.FileInfo().IsDir() && match(f) {
			if err := fn(f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Find returns content of the shallowest entry whose base name equals base.
// Theme packages usually wrap everything in a single top directory, so
// only entries at the root or one level down are considered.
func Find(archive, base string) (name string, data []byte, err error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return "", nil, err
	}
	defer r.Close()

	var best *zip.File
	err = walk(&r.Reader, func(f *zip.File) bool {
		return path.Base(f.Name) == base && depth(f.Name) <= maxDepth
	}, func(f *zip.File) error {
		if best == nil || depth(f.Name) < depth(best.Name) {
			best = f
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	if best == nil {
		return "", nil, fmt.Errorf("%s in %s: %w", base, archive, ErrNotFound)
	}
	data, err = readEntry(best)
	if err != nil {
		return "", nil, fmt.Errorf("unable to read %s from %s: %w", best.Name, archive, err)
	}
	return best.Name, data, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > maxEntrySize {
		return nil, fmt.Errorf("entry is too large (%d bytes)", f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, maxEntrySize))
}

func depth(name string) int {
	return strings.Count(strings.Trim(name, "/"), "/")
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
