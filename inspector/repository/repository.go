package repository

import (
	"golang.org/x/mod/semver"
)

// clientBoundaryVersion is the first framework release honoring the boundary directive
const clientBoundaryVersion = "v13.0.0"

// Project represents information about a detected web application project
type Project struct {
	RootPath         string   // directory holding package.json, or the inspected dir when none found
	Name             string   // package.json name, or the directory name
	Framework        string   // detected framework package, e.g. next
	FrameworkVersion string   // semver with v prefix, empty when unknown
	AppDir           string   // app router directory, empty when absent
	PagesDir         string   // pages router directory, empty when absent
	RootDirs         []string // directories to scan, app first
}

// SupportsClientBoundary reports whether the framework version understands the boundary directive.
// Unknown versions are assumed to support it.
func (p *Project) SupportsClientBoundary() bool {
	if p.FrameworkVersion == "" || !semver.IsValid(p.FrameworkVersion) {
		return true
	}
	return semver.Compare(p.FrameworkVersion, clientBoundaryVersion) >= 0
}
