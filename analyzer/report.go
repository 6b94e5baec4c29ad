package analyzer

import "github.com/viant/boundary/inspector/diag"

// Report summarizes a build and classification run
type Report struct {
	Files       int               `json:"files" yaml:"files"`           // discovered and inspected files
	Ghosts      int               `json:"ghosts" yaml:"ghosts"`         // imported but not discovered
	Excluded    int               `json:"excluded" yaml:"excluded"`     // ghosts under a root directory
	Edges       int               `json:"edges" yaml:"edges"`           // distinct resolved imports
	External    int               `json:"external" yaml:"external"`     // package imports, never nodes
	Unresolved  int               `json:"unresolved" yaml:"unresolved"` // local specifiers without a file
	Client      int               `json:"client" yaml:"client"`
	Server      int               `json:"server" yaml:"server"`
	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Count returns number of diagnostics with code
func (r *Report) Count(code diag.ErrorCode) int {
	count := 0
	for _, item := range r.Diagnostics {
		if item.Code == code {
			count++
		}
	}
	return count
}
