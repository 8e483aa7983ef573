package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  mode: release
  read_timeout: 3s
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: books
  password: secret
  dbname: library
redis:
  enabled: true
  book_ttl: 1m
log:
  level: debug
  format: json
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ":9090", cfg.Server.Addr())
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	// 未配置的字段取默认值
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Minute, cfg.Redis.BookTTL)
	assert.Equal(t, uint32(5), cfg.Redis.BreakerFailures)
	assert.Equal(t, 30*time.Second, cfg.Redis.BreakerTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoadFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
database:
  password: from-file
`)
	t.Setenv("BOOKS_DATABASE_PASSWORD", "from-env")
	t.Setenv("BOOKS_SERVER_PORT", "7070")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_WithoutFile(t *testing.T) {
	// 空目录下既没有config.yaml也没有.env，应完全使用默认值
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "books", cfg.Database.DBName)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BOOKS_DATABASE_DBNAME=from_dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("BOOKS_DATABASE_DBNAME") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from_dotenv", cfg.Database.DBName)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"无效端口", "server:\n  port: 70000\n"},
		{"无效模式", "server:\n  mode: prod\n"},
		{"不支持的驱动", "database:\n  driver: oracle\n"},
		{"无效日志级别", "log:\n  level: verbose\n"},
		{"缓存TTL为0", "redis:\n  enabled: true\n  book_ttl: 0s\n"},
		{"熔断超时为0", "redis:\n  enabled: true\n  breaker_timeout: 0s\n"},
		{"采样比例越界", "tracing:\n  sample_ratio: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("MySQL", func(t *testing.T) {
		d := DatabaseConfig{
			Driver: DriverMySQL, User: "root", Password: "pw", Host: "localhost", Port: 3306,
			DBName: "books", Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
		}
		assert.Equal(t,
			"root:pw@tcp(localhost:3306)/books?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
			d.DSN())
	})

	t.Run("Postgres", func(t *testing.T) {
		d := DatabaseConfig{
			Driver: DriverPostgres, User: "postgres", Password: "pw", Host: "localhost", Port: 5432,
			DBName: "books", SSLMode: "disable",
		}
		assert.Equal(t,
			"host=localhost port=5432 user=postgres password=pw dbname=books sslmode=disable",
			d.DSN())
	})
}
