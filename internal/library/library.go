// Package library resolves import_library's search path and caches already
// imported sources by content hash, so re-importing the same library inside
// a loop is a cheap no-op rather than a re-parse. Grounded on the teacher's
// module loader search-path shape, generalized to vlsng's library files.
package library

import (
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"

	"vlsng/internal/errors"
)

// Loader resolves a library name to source text, trying, in order:
// <searchPath>/<name>, <searchPath>/<name>.vlsng, <name>, <name>.vlsng.
type Loader struct {
	SearchPath string
	seen       map[[32]byte]bool
}

// NewLoader builds a Loader rooted at the given library search path.
func NewLoader(searchPath string) *Loader {
	return &Loader{SearchPath: searchPath, seen: make(map[[32]byte]bool)}
}

// Resolve reads the named library's source text. alreadyImported is true
// when an identical source (by blake2b-256 hash) was previously resolved by
// this Loader, in which case source is empty and the caller should skip
// re-parsing.
func (l *Loader) Resolve(name string) (source string, alreadyImported bool, err error) {
	candidates := []string{
		filepath.Join(l.SearchPath, name),
		filepath.Join(l.SearchPath, name+".vlsng"),
		name,
		name + ".vlsng",
	}

	var data []byte
	var readErr error
	for _, candidate := range candidates {
		data, readErr = os.ReadFile(candidate)
		if readErr == nil {
			break
		}
	}
	if readErr != nil {
		return "", false, errors.Newf(errors.IO, "library %q not found under %q", name, l.SearchPath)
	}

	hash := blake2b.Sum256(data)
	if l.seen[hash] {
		return "", true, nil
	}
	l.seen[hash] = true
	return string(data), false, nil
}
