package domain

import (
	"fmt"
	"strings"
)

// RootFolderID is the folder id of the media root. The remote store models
// the root as the absence of a parent, so it has no id of its own.
const RootFolderID = ""

// FolderPath is an absolute media folder path, addressed segment by segment.
// The zero-length path denotes the root folder.
type FolderPath []string

// ParseFolderPath parses an absolute, slash-delimited folder path like
// "/Product Media/api_imported". Relative paths are rejected with
// ErrInvalidInput before any remote call is made. "/" parses to the empty
// path, which denotes the root folder.
func ParseFolderPath(raw string) (FolderPath, error) {
	if !strings.HasPrefix(raw, "/") {
		return nil, fmt.Errorf("media folder path %q is invalid, it must be absolute: %w", raw, ErrInvalidInput)
	}

	var segments FolderPath
	for _, part := range strings.Split(raw, "/") {
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}
	return segments, nil
}

// String renders the path back to its absolute slash-delimited form.
func (p FolderPath) String() string {
	return "/" + strings.Join(p, "/")
}

// IsRoot reports whether the path denotes the root folder.
func (p FolderPath) IsRoot() bool {
	return len(p) == 0
}

// Join returns a new path with the given segments appended.
func (p FolderPath) Join(segments ...string) FolderPath {
	joined := make(FolderPath, 0, len(p)+len(segments))
	joined = append(joined, p...)
	joined = append(joined, segments...)
	return joined
}
