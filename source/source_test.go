package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoader_ReadLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.cpp")
	assert.NoError(t, os.WriteFile(path, []byte("int f() { return 0; }"), 0o644))

	l := NewLoader()
	data, err := l.Read(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, "int f() { return 0; }", string(data))
}

func TestLoader_ReadMissingFileErrors(t *testing.T) {
	l := NewLoader()
	_, err := l.Read(context.Background(), filepath.Join(t.TempDir(), "missing.cpp"))
	assert.Error(t, err)
}
