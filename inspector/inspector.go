package inspector

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/viant/boundary/inspector/graph"
	"github.com/viant/boundary/inspector/info"
	"github.com/viant/boundary/inspector/jsx"
)

// Inspector provides an interface for inspecting source code
type Inspector interface {
	// InspectSource parses source code and extracts the boundary directive and static imports
	InspectSource(ctx context.Context, path string, src []byte) (*graph.File, error)
}

// Language identifies a grammar
type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
)

// Factory creates appropriate inspectors based on file extension
type Factory struct {
	config     *info.Config
	inspectors map[Language]Inspector
}

// NewFactory creates a new inspector factory with the given config
func NewFactory(config *info.Config) *Factory {
	if config == nil {
		config = info.DefaultConfig()
	}
	languages := map[Language]*sitter.Language{
		JavaScript: javascript.GetLanguage(),
		TypeScript: typescript.GetLanguage(),
		TSX:        tsx.GetLanguage(),
	}
	inspectors := make(map[Language]Inspector, len(languages))
	for name, language := range languages {
		inspectors[name] = jsx.NewInspector(language, config.Directive)
	}
	return &Factory{config: config, inspectors: inspectors}
}

// LanguageOf returns grammar for a file extension
func LanguageOf(filename string) (Language, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return JavaScript, true
	case ".ts", ".mts", ".cts":
		return TypeScript, true
	case ".tsx":
		return TSX, true
	}
	return "", false
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	language, ok := LanguageOf(filename)
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
	return f.inspectors[language], nil
}

// InspectSource is a convenience method that gets the appropriate inspector and inspects the source
func (f *Factory) InspectSource(ctx context.Context, filename string, src []byte) (*graph.File, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	return inspector.InspectSource(ctx, filename, src)
}
