package analyzer

import (
	"log/slog"

	"github.com/viant/boundary/inspector/info"
)

type Option func(*Analyzer)

// WithConfig sets the analyzer configuration; it disables loading the project config file
func WithConfig(config *info.Config) Option {
	return func(a *Analyzer) {
		if config != nil {
			a.config = config
			a.configSet = true
		}
	}
}

// WithConfigFile sets the config file name read from the project root instead of the first of repository.ConfigFiles
func WithConfigFile(name string) Option {
	return func(a *Analyzer) {
		a.configFile = name
	}
}

// WithLogger sets a structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithAliases sets the alias map, skipping jsconfig.json/tsconfig.json lookup
func WithAliases(aliases info.AliasMap) Option {
	return func(a *Analyzer) {
		a.aliases = &aliases
	}
}

// WithRootDirs overrides detected app/pages directories
func WithRootDirs(dirs ...string) Option {
	return func(a *Analyzer) {
		a.rootDirs = dirs
	}
}

// WithConcurrency sets the parse worker pool size
func WithConcurrency(workers int) Option {
	return func(a *Analyzer) {
		a.concurrency = workers
	}
}
