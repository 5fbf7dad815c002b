package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.cpp")
	require.NoError(t, os.WriteFile(path, []byte("#include <iostream>\r\n\nint main() {\n}"), 0644))

	lines, err := ReadLines(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"#include <iostream>", "", "int main() {", "}"}, lines)
}

func TestReadLines_Missing(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "nope.cpp"))
	require.Error(t, err)
}
