package repository

import (
	"context"
	"errors"
)

var (
	// ErrSampleDirMissing is returned when the sample directory does not exist
	ErrSampleDirMissing = errors.New("sample directory not found")
	// ErrNoSamples is returned when the sample directory holds no usable files
	ErrNoSamples = errors.New("no sample articles found")
	// ErrSampleNotFound is returned for unknown or unsafe sample names
	ErrSampleNotFound = errors.New("sample not found")
)

// SampleRepository provides the preset sample articles
type SampleRepository interface {
	// List returns sample file names sorted by name
	List(ctx context.Context) ([]string, error)

	// Read returns the raw bytes of one sample
	Read(ctx context.Context, name string) ([]byte, error)
}
