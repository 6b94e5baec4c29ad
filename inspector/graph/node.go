package graph

import (
	"path"
	"sort"
	"strings"
)

// FileID is a canonical absolute slash-separated path; the identity of a node
type FileID string

// NewFileID cleans a path into a FileID
func NewFileID(location string) FileID {
	if location == "" {
		return ""
	}
	return FileID(path.Clean(strings.ReplaceAll(location, "\\", "/")))
}

// Dir returns the directory of the file
func (id FileID) Dir() string {
	return path.Dir(string(id))
}

// Under reports whether the file is physically located under dir
func (id FileID) Under(dir string) bool {
	dir = path.Clean(dir)
	if dir == "/" {
		return strings.HasPrefix(string(id), "/")
	}
	return strings.HasPrefix(string(id), dir+"/")
}

// Classification of a node in the split rendering model
type Classification int

const (
	// Unclassified is the construction-time state, replaced by Classify
	Unclassified Classification = iota
	Server
	Client
)

// String returns the textual classification
func (c Classification) String() string {
	switch c {
	case Server:
		return "server"
	case Client:
		return "client"
	default:
		return "unclassified"
	}
}

// MarshalText encodes the classification as text
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Node represents a source file in the import graph
type Node struct {
	ID             FileID
	Declared       bool     // first statement is the boundary directive
	RawImports     []string // specifiers in source order
	Discovered     bool     // false for ghost nodes
	Excluded       bool     // ghost located under a root directory: filtered, unreadable or unparsable
	Hash           uint64
	Classification Classification

	edges      map[FileID]struct{} // resolved imports
	importedBy map[FileID]struct{} // exact transpose of edges
}

func newNode(id FileID, discovered bool) *Node {
	return &Node{
		ID:         id,
		Discovered: discovered,
		edges:      map[FileID]struct{}{},
		importedBy: map[FileID]struct{}{},
	}
}

// Imports returns resolved import targets, sorted
func (n *Node) Imports() []FileID {
	return sortedIDs(n.edges)
}

// ImportedBy returns importers, sorted
func (n *Node) ImportedBy() []FileID {
	return sortedIDs(n.importedBy)
}

// HasEdge reports whether the node has a resolved edge to target
func (n *Node) HasEdge(target FileID) bool {
	_, ok := n.edges[target]
	return ok
}

// NodeView is a read-only snapshot of a node handed to consumers
type NodeView struct {
	Classification Classification `json:"classification" yaml:"classification"`
	Declared       bool           `json:"declared" yaml:"declared"`
	Imports        []FileID       `json:"imports" yaml:"imports"`
	ImportedBy     []FileID       `json:"importedBy" yaml:"importedBy"`
	Discovered     bool           `json:"discovered" yaml:"discovered"`
	Excluded       bool           `json:"excluded,omitempty" yaml:"excluded,omitempty"`
	RawImports     []string       `json:"rawImports,omitempty" yaml:"rawImports,omitempty"`
	Hash           uint64         `json:"hash,omitempty" yaml:"hash,omitempty"`
}

func (n *Node) view() NodeView {
	return NodeView{
		Classification: n.Classification,
		Declared:       n.Declared,
		Imports:        n.Imports(),
		ImportedBy:     n.ImportedBy(),
		Discovered:     n.Discovered,
		Excluded:       n.Excluded,
		RawImports:     append([]string(nil), n.RawImports...),
		Hash:           n.Hash,
	}
}

func sortedIDs(set map[FileID]struct{}) []FileID {
	result := make([]FileID, 0, len(set))
	for id := range set {
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
