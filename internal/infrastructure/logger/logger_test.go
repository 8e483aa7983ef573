package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/books-api/internal/infrastructure/config"
)

func TestNew_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := &config.Config{
		Log:     config.LogConfig{Level: "info", Format: "json", Output: path},
		Tracing: config.TracingConfig{ServiceName: "books-api"},
	}

	log, err := New(cfg)
	require.NoError(t, err)

	log.Debug("不应输出")
	log.Info("book created")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"book created"`)
	assert.Contains(t, string(data), `"service":"books-api"`)
	assert.NotContains(t, string(data), "不应输出")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&config.Config{Log: config.LogConfig{Level: "verbose"}})
	assert.Error(t, err)
}
