package repository

import (
	"context"
	"encoding/json"
	"path"
	"sort"
	"strings"

	"github.com/tailscale/hujson"
	"github.com/viant/boundary/inspector/diag"
	"github.com/viant/boundary/inspector/info"
)

// aliasConfigFiles are project compiler configs carrying path mappings, first existing wins
var aliasConfigFiles = []string{"jsconfig.json", "tsconfig.json"}

type compilerConfig struct {
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

// LoadAliases builds the alias map from jsconfig.json or tsconfig.json under projectRoot.
// Missing config or config without path mappings yields the default alias.
// A malformed config yields the default alias together with a CONFIG_PARSE error; callers record it and continue.
func LoadAliases(ctx context.Context, fs FS, projectRoot string, config *info.Config) (info.AliasMap, error) {
	projectRoot = path.Clean(projectRoot)
	defaults := info.DefaultAliasMap(projectRoot, config)
	for _, name := range aliasConfigFiles {
		location := path.Join(projectRoot, name)
		entry, err := fs.Stat(ctx, location)
		if err != nil {
			return defaults, diag.New(diag.ConfigParse, location, "failed to stat alias config", err)
		}
		if entry == nil || entry.IsDir {
			continue
		}
		data, err := fs.ReadFile(ctx, location)
		if err != nil {
			return defaults, diag.New(diag.ConfigParse, location, "failed to read alias config", err)
		}
		aliases, err := parseAliases(data, projectRoot)
		if err != nil {
			return defaults, diag.New(diag.ConfigParse, location, "failed to parse alias config", err)
		}
		if aliases.Len() == 0 {
			return defaults, nil
		}
		return aliases, nil
	}
	return defaults, nil
}

// parseAliases decodes a JSONC compiler config into an alias map
func parseAliases(data []byte, projectRoot string) (info.AliasMap, error) {
	standard, err := hujson.Standardize(data)
	if err != nil {
		return info.AliasMap{}, err
	}
	var config compilerConfig
	if err = json.Unmarshal(standard, &config); err != nil {
		return info.AliasMap{}, err
	}
	base := projectRoot
	if config.CompilerOptions.BaseURL != "" {
		base = path.Join(projectRoot, config.CompilerOptions.BaseURL)
	}

	keys := make([]string, 0, len(config.CompilerOptions.Paths))
	for key := range config.CompilerOptions.Paths {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var aliases []info.Alias
	for _, key := range keys {
		targets := config.CompilerOptions.Paths[key]
		wildcard := strings.HasSuffix(key, "*")
		alias := info.Alias{Prefix: strings.TrimSuffix(key, "*"), Exact: !wildcard}
		for _, target := range targets {
			target = strings.TrimSuffix(target, "*")
			if target == "" {
				target = "."
			}
			alias.Dirs = append(alias.Dirs, path.Join(base, target))
		}
		aliases = append(aliases, alias)
	}
	return info.NewAliasMap(aliases...), nil
}
