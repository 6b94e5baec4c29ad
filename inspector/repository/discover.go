package repository

import (
	"context"
	"fmt"
	"iter"
	"path"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/viant/boundary/inspector/diag"
	"github.com/viant/boundary/inspector/graph"
	"github.com/viant/boundary/inspector/info"
)

// Discoverer enumerates candidate source files under root directories
type Discoverer struct {
	fs         FS
	config     *info.Config
	ignore     *ignore.GitIgnore
	ignoreRoot string
}

// NewDiscoverer creates a discoverer
func NewDiscoverer(fs FS, config *info.Config) *Discoverer {
	if config == nil {
		config = info.DefaultConfig()
	}
	return &Discoverer{fs: fs, config: config}
}

// LoadGitignore compiles projectRoot/.gitignore when present and enabled
func (d *Discoverer) LoadGitignore(ctx context.Context, projectRoot string) error {
	if !d.config.RespectGitignore {
		return nil
	}
	location := path.Join(projectRoot, ".gitignore")
	entry, err := d.fs.Stat(ctx, location)
	if err != nil || entry == nil || entry.IsDir {
		return err
	}
	data, err := d.fs.ReadFile(ctx, location)
	if err != nil {
		return err
	}
	d.ignore = ignore.CompileIgnoreLines(strings.Split(string(data), "\n")...)
	d.ignoreRoot = path.Clean(projectRoot)
	return nil
}

// Files returns a lazy, restartable sequence of source files under rootDirs in lexical depth-first order.
// Listing failures and files above the size cap are yielded as errors and the walk carries on.
func (d *Discoverer) Files(ctx context.Context, rootDirs []string) iter.Seq2[graph.FileID, error] {
	return func(yield func(graph.FileID, error) bool) {
		seen := map[graph.FileID]bool{}
		for _, root := range rootDirs {
			root = path.Clean(root)
			entry, err := d.fs.Stat(ctx, root)
			if err != nil {
				err = diag.New(diag.DirList, root, "failed to open root directory", err)
			} else if entry == nil || !entry.IsDir {
				err = diag.New(diag.DirList, root, "root directory not found", nil)
			}
			if err != nil {
				if !yield("", err) {
					return
				}
				continue
			}
			if !d.walk(ctx, root, seen, yield) {
				return
			}
		}
	}
}

func (d *Discoverer) walk(ctx context.Context, dir string, seen map[graph.FileID]bool, yield func(graph.FileID, error) bool) bool {
	if ctx.Err() != nil {
		return yield("", ctx.Err())
	}
	entries, err := d.fs.ListDir(ctx, dir)
	if err != nil {
		return yield("", diag.New(diag.DirList, dir, "failed to list directory", err))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	for _, entry := range entries {
		if entry.IsDir {
			if d.config.IsIgnoredDir(entry.Name) || d.gitignored(entry.Path, true) {
				continue
			}
			if !d.walk(ctx, entry.Path, seen, yield) {
				return false
			}
			continue
		}
		if !d.config.HasExtension(path.Ext(entry.Name)) || d.gitignored(entry.Path, false) {
			continue
		}
		id := graph.NewFileID(entry.Path)
		if seen[id] {
			continue
		}
		seen[id] = true
		if d.config.MaxFileSizeBytes > 0 && entry.Size > d.config.MaxFileSizeBytes {
			err := diag.New(diag.FileTooLarge, entry.Path,
				fmt.Sprintf("file size %d exceeds limit %d", entry.Size, d.config.MaxFileSizeBytes), nil)
			if !yield("", err) {
				return false
			}
			continue
		}
		if !yield(id, nil) {
			return false
		}
	}
	return true
}

func (d *Discoverer) gitignored(location string, isDir bool) bool {
	if d.ignore == nil {
		return false
	}
	if !graph.FileID(location).Under(d.ignoreRoot) {
		return false
	}
	relative := strings.TrimPrefix(strings.TrimPrefix(location, d.ignoreRoot), "/")
	if d.ignore.MatchesPath(relative) {
		return true
	}
	return isDir && d.ignore.MatchesPath(relative+"/")
}
