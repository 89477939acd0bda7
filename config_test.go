package auda_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/auda"
)

func TestParseOptions(t *testing.T) {
	opt, err := auda.ParseOptions([]byte("keep_case: true\nkeep_escapes: true\nmax_body_bytes: 1024\nupload_dir: /var/tmp\n"))
	require.NoError(t, err)
	assert.True(t, opt.KeepCase)
	assert.True(t, opt.KeepEscapes)
	assert.EqualValues(t, 1024, opt.MaxBodyBytes)
	assert.Equal(t, "/var/tmp", opt.UploadDir)
}

func TestParseOptions_Defaults(t *testing.T) {
	opt, err := auda.ParseOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, auda.DefaultMaxBodyBytes, opt.MaxBodyBytes)
	assert.False(t, opt.KeepCase)
}

func TestParseOptions_Rejects(t *testing.T) {
	_, err := auda.ParseOptions([]byte("keep_cas: true\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = auda.ParseOptions([]byte("max_body_bytes: -1\n"))
	assert.Error(t, err)
}

func TestLoadOptions(t *testing.T) {
	p := filepath.Join(t.TempDir(), "auda.yaml")
	require.NoError(t, os.WriteFile(p, []byte("keep_case: true\n"), 0o600))

	opt, err := auda.LoadOptions(p)
	require.NoError(t, err)
	assert.True(t, opt.KeepCase)

	_, err = auda.LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
