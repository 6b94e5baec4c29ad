package repository

import (
	"context"
	"path"
	"strings"

	"github.com/viant/boundary/inspector/diag"
	"github.com/viant/boundary/inspector/info"
)

// ConfigFiles are analyzer config names looked up in the project root, first existing wins
var ConfigFiles = []string{".boundary.yaml", ".boundary.yml", ".boundary.toml"}

// LoadConfig reads an analyzer config, TOML for .toml files and YAML otherwise; a missing file yields defaults
func LoadConfig(ctx context.Context, fs FS, location string) (*info.Config, error) {
	entry, err := fs.Stat(ctx, location)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return info.DefaultConfig(), nil
	}
	data, err := fs.ReadFile(ctx, location)
	if err != nil {
		return nil, err
	}
	parse := info.ParseConfig
	if strings.EqualFold(path.Ext(location), ".toml") {
		parse = info.ParseTOMLConfig
	}
	config, err := parse(data)
	if err != nil {
		return nil, diag.New(diag.ConfigParse, location, "invalid analyzer config", err)
	}
	return config, nil
}

// FindConfig returns the first existing analyzer config under projectRoot
func FindConfig(ctx context.Context, fs FS, projectRoot string) (string, bool) {
	for _, name := range ConfigFiles {
		location := path.Join(projectRoot, name)
		if entry, _ := fs.Stat(ctx, location); entry != nil && !entry.IsDir {
			return location, true
		}
	}
	return "", false
}
