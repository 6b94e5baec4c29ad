package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"golang.org/x/mod/semver"
)

const packageManifest = "package.json"

// frameworkPackages are dependency names recognized as split rendering frameworks, in priority order
var frameworkPackages = []string{"next"}

// Detector identifies the project root and its routing directories
type Detector struct {
	fs FS
	// candidate router directories relative to the project root, first existing wins
	appDirs   []string
	pagesDirs []string
}

// NewDetector creates a new project detector instance
func NewDetector(fs FS) *Detector {
	return &Detector{
		fs:        fs,
		appDirs:   []string{"src/app", "app"},
		pagesDirs: []string{"src/pages", "pages"},
	}
}

// DetectProject walks up from dir to the nearest package.json and locates app and pages directories
func (d *Detector) DetectProject(ctx context.Context, dir string) (*Project, error) {
	dir = path.Clean(dir)
	entry, err := d.fs.Stat(ctx, dir)
	if err != nil {
		return nil, err
	}
	if entry == nil || !entry.IsDir {
		return nil, fmt.Errorf("project directory not found: %s", dir)
	}

	project := &Project{RootPath: dir, Name: path.Base(dir)}
	if root, ok := d.findProjectRoot(ctx, dir); ok {
		project.RootPath = root
		project.Name = path.Base(root)
		d.readManifest(ctx, project)
	}

	project.AppDir = d.firstDir(ctx, project.RootPath, d.appDirs)
	project.PagesDir = d.firstDir(ctx, project.RootPath, d.pagesDirs)
	for _, candidate := range []string{project.AppDir, project.PagesDir} {
		if candidate != "" {
			project.RootDirs = append(project.RootDirs, candidate)
		}
	}
	return project, nil
}

// findProjectRoot searches up the directory tree for package.json
func (d *Detector) findProjectRoot(ctx context.Context, startDir string) (string, bool) {
	dir := startDir
	for {
		if entry, _ := d.fs.Stat(ctx, path.Join(dir, packageManifest)); entry != nil && !entry.IsDir {
			return dir, true
		}
		parent := path.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func (d *Detector) firstDir(ctx context.Context, root string, candidates []string) string {
	for _, candidate := range candidates {
		location := path.Join(root, candidate)
		if entry, _ := d.fs.Stat(ctx, location); entry != nil && entry.IsDir {
			return location
		}
	}
	return ""
}

type manifest struct {
	Name            string            `json:"name"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// readManifest fills project name and framework version; a malformed manifest leaves defaults
func (d *Detector) readManifest(ctx context.Context, project *Project) {
	data, err := d.fs.ReadFile(ctx, path.Join(project.RootPath, packageManifest))
	if err != nil {
		return
	}
	var aManifest manifest
	if err = json.Unmarshal(data, &aManifest); err != nil {
		return
	}
	if aManifest.Name != "" {
		project.Name = aManifest.Name
	}
	for _, framework := range frameworkPackages {
		version, ok := aManifest.Dependencies[framework]
		if !ok {
			version, ok = aManifest.DevDependencies[framework]
		}
		if !ok {
			continue
		}
		project.Framework = framework
		project.FrameworkVersion = normalizeVersion(version)
		return
	}
}

// normalizeVersion converts a package.json range such as ^14.1.0 or ~13.4 into a canonical semver
func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	version = strings.TrimLeft(version, "^~>=< ")
	if index := strings.IndexAny(version, " |"); index != -1 {
		version = version[:index]
	}
	if version == "" {
		return ""
	}
	candidate := "v" + strings.TrimPrefix(version, "v")
	if !semver.IsValid(candidate) {
		return ""
	}
	return semver.Canonical(candidate)
}
