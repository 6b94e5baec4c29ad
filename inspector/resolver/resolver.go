package resolver

import (
	"context"
	"fmt"
	"path"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/viant/boundary/inspector/graph"
	"github.com/viant/boundary/inspector/info"
	"github.com/viant/boundary/inspector/repository"
)

// Kind classifies a resolution outcome
type Kind int

const (
	// Local specifier resolved to a file
	Local Kind = iota
	// External specifier names a package; it never produces a node or edge
	External
	// Unresolved relative or aliased specifier that matched no file
	Unresolved
)

func (k Kind) String() string {
	switch k {
	case Local:
		return "local"
	case External:
		return "external"
	default:
		return "unresolved"
	}
}

// Result represents a resolved import specifier
type Result struct {
	Kind   Kind
	Target graph.FileID // set for Local only
}

type probe uint8

const (
	missing probe = iota
	regularFile
	directory
)

// Resolver maps import specifiers to file identities using aliases and filesystem probing.
// It is safe for concurrent use; probes are cached for the lifetime of the resolver.
type Resolver struct {
	fs         repository.FS
	aliases    info.AliasMap
	extensions []string
	cache      *lru.Cache[string, probe]
}

// New creates a resolver; extensions are probed in config order
func New(fs repository.FS, aliases info.AliasMap, config *info.Config) (*Resolver, error) {
	if config == nil {
		config = info.DefaultConfig()
	}
	size := config.ResolveCacheSize
	if size <= 0 {
		size = info.DefaultConfig().ResolveCacheSize
	}
	cache, err := lru.New[string, probe](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver cache: %w", err)
	}
	return &Resolver{
		fs:         fs,
		aliases:    aliases,
		extensions: append([]string(nil), config.Extensions...),
		cache:      cache,
	}, nil
}

// Resolve resolves specifier imported from importer
func (r *Resolver) Resolve(ctx context.Context, specifier string, importer graph.FileID) Result {
	var candidates []string
	switch {
	case IsRelative(specifier):
		candidates = []string{path.Join(importer.Dir(), specifier)}
	default:
		aliased, ok := r.aliases.Lookup(specifier)
		if !ok {
			return Result{Kind: External}
		}
		candidates = aliased
	}
	for _, candidate := range candidates {
		if target, ok := r.resolvePath(ctx, candidate); ok {
			return Result{Kind: Local, Target: graph.NewFileID(target)}
		}
	}
	return Result{Kind: Unresolved}
}

// IsRelative reports whether specifier starts with a relative path marker
func IsRelative(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}

// resolvePath tries the exact file, then each extension, then an index file per extension
func (r *Resolver) resolvePath(ctx context.Context, location string) (string, bool) {
	if r.probe(ctx, location) == regularFile {
		return location, true
	}
	for _, ext := range r.extensions {
		candidate := location + ext
		if r.probe(ctx, candidate) == regularFile {
			return candidate, true
		}
	}
	for _, ext := range r.extensions {
		candidate := path.Join(location, "index"+ext)
		if r.probe(ctx, candidate) == regularFile {
			return candidate, true
		}
	}
	return "", false
}

func (r *Resolver) probe(ctx context.Context, location string) probe {
	if cached, ok := r.cache.Get(location); ok {
		return cached
	}
	entry, err := r.fs.Stat(ctx, location)
	if err != nil {
		return missing
	}
	result := missing
	if entry != nil {
		result = regularFile
		if entry.IsDir {
			result = directory
		}
	}
	r.cache.Add(location, result)
	return result
}
