package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/edicat/internal/core/ports/driven"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "order.edi")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func readAll(t *testing.T, o *Opener, name string) string {
	t.Helper()
	rc, err := o.Open(name)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestOpener_File(t *testing.T) {
	path := writeFile(t, "UNB+UNOC:3+A+B'")

	assert.Equal(t, "UNB+UNOC:3+A+B'", readAll(t, New(), path))
}

func TestOpener_FileURI(t *testing.T) {
	path := writeFile(t, "UNB+UNOC:3+A+B'")

	assert.Equal(t, "UNB+UNOC:3+A+B'", readAll(t, New(), "file://"+path))
}

func TestOpener_Stdin(t *testing.T) {
	o := NewWithStdin(strings.NewReader("ISA*00*"))

	assert.Equal(t, "ISA*00*", readAll(t, o, driven.StdinName))
}

func TestOpener_StdinCloseIsNoOp(t *testing.T) {
	stdin := strings.NewReader("ISA*00*")
	o := NewWithStdin(stdin)

	rc, err := o.Open(driven.StdinName)
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	// Still readable after the first consumer closed it.
	data, err := io.ReadAll(stdin)
	require.NoError(t, err)
	assert.Equal(t, "ISA*00*", string(data))
}

func TestOpener_MissingFile(t *testing.T) {
	_, err := New().Open(filepath.Join(t.TempDir(), "missing.edi"))

	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestOpener_Directory(t *testing.T) {
	rc, err := New().Open(t.TempDir())
	if err == nil {
		// Opening a directory succeeds on Unix; reading it fails.
		defer rc.Close()
		_, err = io.ReadAll(rc)
	}

	assert.Error(t, err)
}
