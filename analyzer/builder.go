package analyzer

import (
	"context"
	"fmt"
	"sort"

	"github.com/viant/boundary/inspector"
	"github.com/viant/boundary/inspector/diag"
	"github.com/viant/boundary/inspector/graph"
	"github.com/viant/boundary/inspector/info"
	"github.com/viant/boundary/inspector/repository"
	"github.com/viant/boundary/inspector/resolver"
	"golang.org/x/sync/errgroup"
)

// session holds per run collaborators
type session struct {
	config      *info.Config
	discoverer  *repository.Discoverer
	aliases     info.AliasMap
	diagnostics *diag.Diagnostics
	factory     *inspector.Factory
	resolver    *resolver.Resolver
}

// parsedFile is the worker output for one discovered file
type parsedFile struct {
	id         graph.FileID
	file       *graph.File
	targets    []graph.FileID // resolved local imports, source order
	external   int
	unresolved int
}

// Build discovers files under rootDirs, inspects them and wires the import graph.
// Every node of the returned graph is Unclassified; call Classify to finish.
func (a *Analyzer) Build(ctx context.Context, rootDirs []string, aliases info.AliasMap) (*graph.Graph, *Report, error) {
	return a.build(ctx, &session{
		config:      a.config,
		discoverer:  repository.NewDiscoverer(a.fs, a.config),
		aliases:     aliases,
		diagnostics: &diag.Diagnostics{},
	}, rootDirs)
}

func (a *Analyzer) build(ctx context.Context, s *session, rootDirs []string) (*graph.Graph, *Report, error) {
	report := &Report{}
	defer func() { report.Diagnostics = s.diagnostics.Items() }()
	if err := s.config.Validate(); err != nil {
		s.diagnostics.AddError(diag.UnsupportedExtension, "", err)
		return nil, report, err
	}
	if len(rootDirs) == 0 {
		err := diag.New(diag.EmptyProject, "", "no root directories to analyze", nil)
		s.diagnostics.AddError(diag.EmptyProject, "", err)
		return nil, report, err
	}

	var files []graph.FileID
	for id, err := range s.discoverer.Files(ctx, rootDirs) {
		if err != nil {
			if ctx.Err() != nil {
				return nil, report, ctx.Err()
			}
			s.diagnostics.AddError(diag.DirList, "", err)
			a.logger.Warn("discovery skipped an entry", "error", err)
			continue
		}
		files = append(files, id)
	}
	if len(files) == 0 {
		err := diag.New(diag.EmptyProject, "", fmt.Sprintf("no source files found in %v", rootDirs), nil)
		s.diagnostics.AddError(diag.EmptyProject, "", err)
		return nil, report, err
	}

	var err error
	s.factory = inspector.NewFactory(s.config)
	if s.resolver, err = resolver.New(a.fs, s.aliases, s.config); err != nil {
		return nil, report, err
	}

	parsed, err := a.parseFiles(ctx, s, files)
	if err != nil {
		return nil, report, err
	}
	g, err := merge(parsed, rootDirs, report)
	if err != nil {
		return nil, report, err
	}
	stats := g.Stats()
	report.Files = stats.Nodes - stats.Ghosts
	report.Ghosts = stats.Ghosts
	report.Excluded = stats.Excluded
	report.Edges = stats.Edges
	return g, report, nil
}

// parseFiles reads, inspects and resolves files on a bounded worker pool; workers never touch the graph
func (a *Analyzer) parseFiles(ctx context.Context, s *session, files []graph.FileID) ([]*parsedFile, error) {
	results := make([]*parsedFile, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(a.workers(s.config))
	for i, id := range files {
		group.Go(func() error {
			parsed, err := a.parseFile(groupCtx, s, id)
			if err != nil {
				return err
			}
			results[i] = parsed
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	var ret []*parsedFile
	for _, parsed := range results {
		if parsed != nil {
			ret = append(ret, parsed)
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].id < ret[j].id })
	return ret, nil
}

// parseFile returns nil without error when the file is excluded
func (a *Analyzer) parseFile(ctx context.Context, s *session, id graph.FileID) (*parsedFile, error) {
	location := string(id)
	data, err := a.fs.ReadFile(ctx, location)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.diagnostics.Add(diag.FileRead, location, err.Error())
		a.logger.Warn("skipping unreadable file", "path", location, "error", err)
		return nil, nil
	}
	file, err := s.factory.InspectSource(ctx, location, data)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.diagnostics.Add(diag.FileRead, location, err.Error())
		a.logger.Warn("skipping unparsable file", "path", location, "error", err)
		return nil, nil
	}
	if file.Hash, err = graph.Fingerprint(data); err != nil {
		return nil, err
	}

	ret := &parsedFile{id: id, file: file}
	for _, imported := range file.Imports {
		resolved := s.resolver.Resolve(ctx, imported.Specifier, id)
		switch resolved.Kind {
		case resolver.Local:
			ret.targets = append(ret.targets, resolved.Target)
		case resolver.External:
			ret.external++
		default:
			ret.unresolved++
			s.diagnostics.Add(diag.UnresolvedImport, location,
				fmt.Sprintf("cannot resolve %q at line %d", imported.Specifier, imported.Line))
		}
	}
	return ret, nil
}

// merge assembles the graph single-threaded: discovered nodes, then ghosts, then edges.
// A ghost under a root directory is flagged excluded to tell it apart from an out-of-tree file.
func merge(parsed []*parsedFile, rootDirs []string, report *Report) (*graph.Graph, error) {
	g := graph.New()
	for _, item := range parsed {
		node := g.AddNode(item.id, true)
		node.Declared = item.file.Directive
		node.RawImports = item.file.Specifiers()
		node.Hash = item.file.Hash
		report.External += item.external
		report.Unresolved += item.unresolved
	}
	for _, item := range parsed {
		for _, target := range item.targets {
			if _, ok := g.Node(target); !ok {
				g.AddNode(target, false).Excluded = underAny(target, rootDirs)
			}
		}
	}
	for _, item := range parsed {
		for _, target := range item.targets {
			if err := g.AddEdge(item.id, target); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func underAny(id graph.FileID, dirs []string) bool {
	for _, dir := range dirs {
		if id.Under(dir) {
			return true
		}
	}
	return false
}

func (a *Analyzer) workers(config *info.Config) int {
	if a.concurrency > 0 {
		return a.concurrency
	}
	if config != nil && config.Concurrency > 0 {
		return config.Concurrency
	}
	return 1
}
