package graph

import (
	"fmt"

	"github.com/minio/highwayhash"
)

// fingerprintKey is fixed so fingerprints are stable across runs
var fingerprintKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// ImportForm describes the syntactic form of a static import
type ImportForm string

const (
	ImportDefault    ImportForm = "default"     // import X from '...'
	ImportNamed      ImportForm = "named"       // import { X } from '...'
	ImportNamespace  ImportForm = "namespace"   // import * as X from '...'
	ImportSideEffect ImportForm = "side-effect" // import '...'
	ImportReExport   ImportForm = "re-export"   // export ... from '...'
)

// File represents an inspected source file: its boundary directive and raw import specifiers
type File struct {
	Path      string   // canonical path of the file
	Directive bool     // first statement is the boundary literal
	Imports   []Import // static imports in source order
	Hash      uint64   // content fingerprint
}

// Import represents a static import statement
type Import struct {
	Specifier string     // raw specifier, unquoted
	Form      ImportForm // syntactic form
	Line      int        // 1-based line of the statement
}

// Specifiers returns raw import specifiers in source order
func (f *File) Specifiers() []string {
	result := make([]string, 0, len(f.Imports))
	for _, imp := range f.Imports {
		result = append(result, imp.Specifier)
	}
	return result
}

// Fingerprint returns a HighwayHash-64 digest of file content
func Fingerprint(content []byte) (uint64, error) {
	hasher, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0, fmt.Errorf("failed to create hasher: %w", err)
	}
	if _, err = hasher.Write(content); err != nil {
		return 0, err
	}
	return hasher.Sum64(), nil
}
