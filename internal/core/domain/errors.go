package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors: the HTTP adapter reports its
// own typed error for remote failures, which callers receive unwrapped.
var (
	// ErrNotFound indicates a remote lookup expected exactly one match and got zero.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed input detectable without a remote call,
	// such as a media filename without an extension or a relative folder path.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFolderNotEmpty indicates a folder delete without force on a folder
	// that still contains media or subfolders.
	ErrFolderNotEmpty = errors.New("folder not empty")

	// ErrRootFolder indicates an operation that is never allowed on the root
	// folder, regardless of flags.
	ErrRootFolder = errors.New("root folder can not be deleted")
)
