package analyzer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/google/uuid"
	"github.com/viant/boundary/inspector/diag"
	"github.com/viant/boundary/inspector/graph"
	"github.com/viant/boundary/inspector/info"
	"github.com/viant/boundary/inspector/repository"
)

// Analyzer builds and classifies the import graph of a project
type Analyzer struct {
	fs            repository.FS
	config        *info.Config
	configSet     bool
	configFile    string
	logger        *slog.Logger
	aliases       *info.AliasMap
	rootDirs      []string
	concurrency   int
	graphExporter GraphExporter
}

// Result represents the outcome of a project analysis
type Result struct {
	RunID   string
	Project *repository.Project
	Graph   *graph.Graph
	Report  *Report
}

// New creates an analyzer reading through fs
func New(fs repository.FS, opts ...Option) *Analyzer {
	if fs == nil {
		fs = repository.NewLocalFS()
	}
	ret := &Analyzer{
		fs:     fs,
		config: info.DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Config returns the configuration used for explicit Build calls
func (a *Analyzer) Config() *info.Config {
	return a.config
}

// Classify computes final classifications on a built graph
func (a *Analyzer) Classify(g *graph.Graph) graph.Summary {
	return graph.Classify(g)
}

// Analyze detects the project at projectPath, builds its import graph and classifies it.
// Configuration problems degrade to defaults and are recorded in the report.
func (a *Analyzer) Analyze(ctx context.Context, projectPath string) (*Result, error) {
	project, err := repository.NewDetector(a.fs).DetectProject(ctx, projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect project: %w", err)
	}
	runID := uuid.New().String()
	logger := a.logger.With("run", runID, "project", project.Name, "root", project.RootPath)
	if !project.SupportsClientBoundary() {
		logger.Warn("framework version predates client boundary directive",
			"framework", project.Framework, "version", project.FrameworkVersion)
	}

	diagnostics := &diag.Diagnostics{}
	config := a.projectConfig(ctx, project, diagnostics, logger)

	discoverer := repository.NewDiscoverer(a.fs, config)
	if err = discoverer.LoadGitignore(ctx, project.RootPath); err != nil {
		diagnostics.AddError(diag.FileRead, path.Join(project.RootPath, ".gitignore"), err)
		logger.Warn("failed to load .gitignore", "error", err)
	}

	aliases := a.projectAliases(ctx, project, config, diagnostics, logger)

	rootDirs := project.RootDirs
	if len(a.rootDirs) > 0 {
		rootDirs = a.rootDirs
	}
	logger.Debug("analyzing", "rootDirs", rootDirs, "aliases", aliases.Len())

	result := &Result{RunID: runID, Project: project}
	result.Graph, result.Report, err = a.build(ctx, &session{
		config:      config,
		discoverer:  discoverer,
		aliases:     aliases,
		diagnostics: diagnostics,
	}, rootDirs)
	if err != nil {
		return result, err
	}

	summary := a.Classify(result.Graph)
	result.Report.Client = summary.Client
	result.Report.Server = summary.Server
	logger.Info("analysis complete",
		"files", result.Report.Files,
		"ghosts", result.Report.Ghosts,
		"edges", result.Report.Edges,
		"client", summary.Client,
		"server", summary.Server,
		"unresolved", result.Report.Unresolved,
		"diagnostics", len(result.Report.Diagnostics))

	if a.graphExporter != nil {
		if err = a.graphExporter.Export(BuildIRGraph(result.Graph)); err != nil {
			return result, fmt.Errorf("failed to export graph: %w", err)
		}
	}
	return result, nil
}

func (a *Analyzer) projectConfig(ctx context.Context, project *repository.Project, diagnostics *diag.Diagnostics, logger *slog.Logger) *info.Config {
	if a.configSet {
		return a.config
	}
	location := path.Join(project.RootPath, a.configFile)
	if a.configFile == "" {
		var ok bool
		if location, ok = repository.FindConfig(ctx, a.fs, project.RootPath); !ok {
			return a.config
		}
	}
	config, err := repository.LoadConfig(ctx, a.fs, location)
	if err != nil {
		diagnostics.AddError(diag.ConfigParse, location, err)
		logger.Warn("using default analyzer config", "path", location, "error", err)
		return a.config
	}
	logger.Debug("loaded analyzer config", "path", location)
	return config
}

func (a *Analyzer) projectAliases(ctx context.Context, project *repository.Project, config *info.Config, diagnostics *diag.Diagnostics, logger *slog.Logger) info.AliasMap {
	if a.aliases != nil {
		return *a.aliases
	}
	aliases, err := repository.LoadAliases(ctx, a.fs, project.RootPath, config)
	if err != nil {
		diagnostics.AddError(diag.ConfigParse, project.RootPath, err)
		logger.Warn("using default alias map", "error", err)
	}
	return aliases
}
