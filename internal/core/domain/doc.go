// Package domain defines the core business types for shopctl.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FolderPath: An absolute media folder path, resolved segment by segment
//   - Picture: One entry of a product's ordered picture list
//   - Identity helpers: content-derived ids for media, products and relations
//
// # Identity
//
// The remote store enforces uniqueness on ids and on media filenames, so all
// ids are derived from content (md5 over a normalised input) rather than taken
// from server-assigned sequences. The derivation must stay bit-identical
// across releases: retry safety and duplicate rejection on the remote side
// depend on the same input always producing the same 32-hex-character id.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
