package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewCfg().Load(&CommandLineArgs{ConfigPath: filepath.Join(t.TempDir(), "missing.ini")})

	assert.Equal(t, 32, cfg.TreeOrder)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 128, cfg.DemoKeys)
}

func TestLoadIni(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xbtree.ini")
	content := `
[btree]
order = 4
data_dir = /tmp/xbtree

[logs]
log_level = debug

[demo]
keys = 16
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := NewCfg().Load(&CommandLineArgs{ConfigPath: path})

	assert.Equal(t, 4, cfg.TreeOrder)
	assert.Equal(t, "/tmp/xbtree", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 16, cfg.DemoKeys)
}

func TestInvalidValuesKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xbtree.ini")
	content := `
[btree]
order = -1

[logs]
log_level = chatty
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := NewCfg().Load(&CommandLineArgs{ConfigPath: path})

	assert.Equal(t, 32, cfg.TreeOrder)
	assert.Equal(t, "info", cfg.LogLevel)
}
