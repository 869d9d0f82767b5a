// Package filesystem serves the preset sample articles from a local directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Wajihx/News-Article-Classifier/internal/domain/repository"
)

// DefaultExtensions are the sample file types listed by default
var DefaultExtensions = []string{".txt", ".pdf", ".html"}

type sampleRepository struct {
	dir  string
	exts map[string]struct{}
}

// NewSampleRepository creates a repository over dir listing files with the given extensions
func NewSampleRepository(dir string, exts []string) repository.SampleRepository {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return &sampleRepository{dir: dir, exts: set}
}

func (r *sampleRepository) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", repository.ErrSampleDirMissing, r.dir)
		}
		return nil, fmt.Errorf("failed to read sample directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !r.allowed(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", repository.ErrNoSamples, r.dir)
	}

	sort.Strings(names)
	return names, nil
}

func (r *sampleRepository) Read(_ context.Context, name string) ([]byte, error) {
	if !validName(name) || !r.allowed(name) {
		return nil, fmt.Errorf("%w: %q", repository.ErrSampleNotFound, name)
	}

	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", repository.ErrSampleNotFound, name)
		}
		return nil, fmt.Errorf("failed to read sample %q: %w", name, err)
	}
	return data, nil
}

func (r *sampleRepository) allowed(name string) bool {
	_, ok := r.exts[strings.ToLower(filepath.Ext(name))]
	return ok
}

// validName rejects anything that could escape the sample directory
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return filepath.Base(name) == name
}
