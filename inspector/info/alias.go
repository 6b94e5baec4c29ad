package info

import (
	"path"
	"sort"
	"strings"
)

// Alias maps a symbolic import prefix to one or more base directories, tried in order
type Alias struct {
	Prefix string   `yaml:"prefix"`
	Dirs   []string `yaml:"dirs"`
	Exact  bool     `yaml:"exact,omitempty"` // matches the whole specifier only (no wildcard)
}

// AliasMap is an immutable prefix to directory mapping built once per run
type AliasMap struct {
	aliases []Alias // sorted by descending prefix length
}

// NewAliasMap creates an alias map; later duplicates of a prefix are ignored
func NewAliasMap(aliases ...Alias) AliasMap {
	seen := map[string]bool{}
	var result []Alias
	for _, alias := range aliases {
		if alias.Prefix == "" || len(alias.Dirs) == 0 {
			continue
		}
		key := alias.Prefix
		if alias.Exact {
			key = "=" + key
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		dirs := make([]string, len(alias.Dirs))
		for i, dir := range alias.Dirs {
			dirs[i] = path.Clean(dir)
		}
		result = append(result, Alias{Prefix: alias.Prefix, Dirs: dirs, Exact: alias.Exact})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if len(result[i].Prefix) != len(result[j].Prefix) {
			return len(result[i].Prefix) > len(result[j].Prefix)
		}
		return result[i].Exact && !result[j].Exact
	})
	return AliasMap{aliases: result}
}

// DefaultAliasMap returns the single conventional alias used in degraded mode
func DefaultAliasMap(projectRoot string, cfg *Config) AliasMap {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return NewAliasMap(Alias{
		Prefix: cfg.DefaultAliasPrefix,
		Dirs:   []string{path.Join(projectRoot, cfg.DefaultAliasDir)},
	})
}

// Lookup matches the longest configured prefix and returns candidate paths with the prefix substituted
func (m AliasMap) Lookup(specifier string) ([]string, bool) {
	for _, alias := range m.aliases {
		if alias.Exact {
			if specifier != alias.Prefix {
				continue
			}
			return append([]string(nil), alias.Dirs...), true
		}
		if !strings.HasPrefix(specifier, alias.Prefix) {
			continue
		}
		rest := strings.TrimPrefix(specifier, alias.Prefix)
		candidates := make([]string, 0, len(alias.Dirs))
		for _, dir := range alias.Dirs {
			candidates = append(candidates, path.Join(dir, rest))
		}
		return candidates, true
	}
	return nil, false
}

// Aliases returns a copy of the configured aliases, longest prefix first
func (m AliasMap) Aliases() []Alias {
	result := make([]Alias, len(m.aliases))
	for i, alias := range m.aliases {
		result[i] = Alias{Prefix: alias.Prefix, Dirs: append([]string(nil), alias.Dirs...), Exact: alias.Exact}
	}
	return result
}

// Len returns number of aliases
func (m AliasMap) Len() int {
	return len(m.aliases)
}
