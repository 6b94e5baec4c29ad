package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/boundary/inspector/diag"
	"github.com/viant/boundary/inspector/graph"
	"github.com/viant/boundary/inspector/info"
	"github.com/viant/boundary/inspector/repository"
)

func collect(t *testing.T, d *repository.Discoverer, roots ...string) ([]graph.FileID, []error) {
	t.Helper()
	var files []graph.FileID
	var errs []error
	for id, err := range d.Files(context.Background(), roots) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		files = append(files, id)
	}
	return files, errs
}

func TestDiscoverer_Files(t *testing.T) {
	fs := newMemFS(t, "/discover", map[string]string{
		".gitignore":                    "generated/\n*.test.js\n",
		"src/app/page.js":               "",
		"src/app/layout.tsx":            "",
		"src/app/ui/Button.jsx":         "",
		"src/app/ui/Button.test.js":     "",
		"src/app/styles.css":            "",
		"src/app/generated/schema.ts":   "",
		"src/app/node_modules/pkg/x.js": "",
		"src/app/.cache/y.js":           "",
		"src/pages/index.ts":            "",
		"src/pages/api/hello.js":        "",
		"src/pages/README.md":           "",
	})
	discoverer := repository.NewDiscoverer(fs, info.DefaultConfig())
	require.NoError(t, discoverer.LoadGitignore(context.Background(), "/discover"))

	files, errs := collect(t, discoverer, "/discover/src/app", "/discover/src/pages", "/discover/src/app")
	assert.Empty(t, errs)
	assert.Equal(t, []graph.FileID{
		"/discover/src/app/layout.tsx",
		"/discover/src/app/page.js",
		"/discover/src/app/ui/Button.jsx",
		"/discover/src/pages/api/hello.js",
		"/discover/src/pages/index.ts",
	}, files)

	// restartable
	again, _ := collect(t, discoverer, "/discover/src/app", "/discover/src/pages")
	assert.Equal(t, files, again)
}

func TestDiscoverer_WithoutGitignore(t *testing.T) {
	fs := newMemFS(t, "/discover2", map[string]string{
		".gitignore":       "*.test.js\n",
		"app/a.test.js":    "",
		"app/.hidden/b.js": "",
	})
	config := info.DefaultConfig()
	config.RespectGitignore = false
	config.SkipHidden = false
	discoverer := repository.NewDiscoverer(fs, config)
	require.NoError(t, discoverer.LoadGitignore(context.Background(), "/discover2"))

	files, errs := collect(t, discoverer, "/discover2/app")
	assert.Empty(t, errs)
	assert.Equal(t, []graph.FileID{"/discover2/app/.hidden/b.js", "/discover2/app/a.test.js"}, files)
}

func TestDiscoverer_SizeLimit(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app"), 0755))
	big := "'use client'\nexport const pad = '" + strings.Repeat("x", 2048) + "'\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "app", "big.js"), []byte(big), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app", "page.js"), []byte("import big from './big'\n"), 0644))
	fs := repository.NewLocalFS()
	appDir := filepath.ToSlash(filepath.Join(root, "app"))

	files, errs := collect(t, repository.NewDiscoverer(fs, info.DefaultConfig()), appDir)
	assert.Empty(t, errs)
	assert.Equal(t, []graph.FileID{graph.FileID(appDir + "/big.js"), graph.FileID(appDir + "/page.js")}, files)

	config := info.DefaultConfig()
	config.MaxFileSizeBytes = 1024
	files, errs = collect(t, repository.NewDiscoverer(fs, config), appDir)
	assert.Equal(t, []graph.FileID{graph.FileID(appDir + "/page.js")}, files)
	require.Len(t, errs, 1)
	assert.True(t, diag.IsCode(errs[0], diag.FileTooLarge))
	assert.Contains(t, errs[0].Error(), appDir+"/big.js")
}

func TestDiscoverer_MissingRoot(t *testing.T) {
	fs := newMemFS(t, "/discover3", map[string]string{"app/a.js": ""})
	discoverer := repository.NewDiscoverer(fs, nil)

	files, errs := collect(t, discoverer, "/discover3/missing", "/discover3/app")
	assert.Equal(t, []graph.FileID{"/discover3/app/a.js"}, files)
	require.Len(t, errs, 1)
	assert.True(t, diag.IsCode(errs[0], diag.DirList))
}

func TestDiscoverer_Cancelled(t *testing.T) {
	fs := newMemFS(t, "/discover4", map[string]string{"app/a.js": ""})
	discoverer := repository.NewDiscoverer(fs, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var errs []error
	for _, err := range discoverer.Files(ctx, []string{"/discover4/app"}) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	require.NotEmpty(t, errs)
	assert.ErrorIs(t, errs[0], context.Canceled)
}
