package repository

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// Entry describes a filesystem entry
type Entry struct {
	Path  string // absolute slash path
	Name  string
	IsDir bool
	Size  int64
}

// FS is the filesystem abstraction consumed by discovery, detection and resolution
type FS interface {
	// ReadFile returns file content
	ReadFile(ctx context.Context, location string) ([]byte, error)
	// ListDir returns direct children of a directory
	ListDir(ctx context.Context, location string) ([]Entry, error)
	// Stat returns nil entry without error when location does not exist
	Stat(ctx context.Context, location string) (*Entry, error)
}

// Service adapts an afs.Service to FS; paths are resolved against a base URL
type Service struct {
	fs      afs.Service
	baseURL string
}

// NewFS creates FS backed by afs; baseURL is e.g. file://localhost or mem://localhost
func NewFS(fs afs.Service, baseURL string) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, baseURL: strings.TrimRight(baseURL, "/")}
}

// NewLocalFS creates FS for the local file system
func NewLocalFS() *Service {
	return NewFS(afs.New(), "file://localhost")
}

// URL returns the storage URL of an absolute path
func (s *Service) URL(location string) string {
	return s.baseURL + "/" + strings.TrimLeft(path.Clean(location), "/")
}

func (s *Service) ReadFile(ctx context.Context, location string) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, s.URL(location))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return data, nil
}

func (s *Service) ListDir(ctx context.Context, location string) ([]Entry, error) {
	dir := path.Clean(location)
	objects, err := s.fs.List(ctx, s.URL(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", location, err)
	}
	entries := make([]Entry, 0, len(objects))
	for _, object := range objects {
		objectPath := path.Clean("/" + strings.TrimLeft(url.Path(object.URL()), "/"))
		if objectPath == dir {
			continue // afs lists the folder itself first
		}
		entries = append(entries, Entry{
			Path:  objectPath,
			Name:  object.Name(),
			IsDir: object.IsDir(),
			Size:  object.Size(),
		})
	}
	return entries, nil
}

func (s *Service) Stat(ctx context.Context, location string) (*Entry, error) {
	URL := s.URL(location)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", location, err)
	}
	if !exists {
		return nil, nil
	}
	object, err := s.fs.Object(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", location, err)
	}
	return &Entry{
		Path:  path.Clean(location),
		Name:  object.Name(),
		IsDir: object.IsDir(),
		Size:  object.Size(),
	}, nil
}
