// Package source loads translation-unit bytes for the CLI driver. It wraps
// github.com/viant/afs so a positional file argument may be a local path or
// any URL afs supports, matching the read idiom the teacher's asset loader
// and document builder both used.
package source

import (
	"context"
	"fmt"

	"github.com/viant/afs"
)

// Loader reads translation-unit source bytes.
type Loader struct {
	fs afs.Service
}

// NewLoader returns a Loader backed by a default afs.Service.
func NewLoader() *Loader {
	return &Loader{fs: afs.New()}
}

// Read returns the contents of path (local path or afs-supported URL).
func (l *Loader) Read(ctx context.Context, path string) ([]byte, error) {
	data, err := l.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("source: failed to read %s: %w", path, err)
	}
	return data, nil
}
