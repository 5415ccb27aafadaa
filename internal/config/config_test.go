package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Missing file falls back to defaults", func(t *testing.T) {
		config, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
		require.NoError(t, err)

		assert.Equal(t, "info", config.LogLevel)
		assert.Equal(t, "", config.HTTPPort)
		assert.Equal(t, 3, config.BoardSize)
		assert.Equal(t, DefaultPlayers(), config.Players)
		assert.Equal(t, StorageFile, config.ResultLog.Storage)
		assert.Equal(t, "game_data.txt", config.ResultLog.Path)
		assert.Equal(t, "game_data.db", config.ResultLog.SQLitePath)
		assert.Equal(t, "tictactoe:results", config.ResultLog.RedisKey)
		assert.Equal(t, "localhost:6379", config.Redis.GetRedisAddr())
	})

	t.Run("Values from file", func(t *testing.T) {
		path := writeConfig(t, `
log-level: debug
http-port: "9090"
board-size: 4
players:
  - name: Alice
    symbol: A
    kind: human
  - name: CPU
    symbol: C
    kind: computer
result-log:
  storage: sqlite
  sqlite-path: /tmp/results.db
redis:
  host: redis
  port: "6380"
`)

		config, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "debug", config.LogLevel)
		assert.Equal(t, "9090", config.HTTPPort)
		assert.Equal(t, 4, config.BoardSize)
		assert.Equal(t, []Player{
			{Name: "Alice", Symbol: "A", Kind: "human"},
			{Name: "CPU", Symbol: "C", Kind: "computer"},
		}, config.Players)
		assert.Equal(t, StorageSQLite, config.ResultLog.Storage)
		assert.Equal(t, "/tmp/results.db", config.ResultLog.SQLitePath)
		assert.Equal(t, "game_data.txt", config.ResultLog.Path)
		assert.Equal(t, "redis:6380", config.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides file", func(t *testing.T) {
		t.Setenv("BOARD_SIZE", "5")
		path := writeConfig(t, "board-size: 4\n")

		config, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 5, config.BoardSize)
	})

	t.Run("Invalid values are rejected", func(t *testing.T) {
		path := writeConfig(t, "board-size: 0\n")

		_, err := Load(path)

		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			BoardSize: 3,
			Players:   DefaultPlayers(),
			ResultLog: ResultLog{Storage: StorageFile},
		}
	}

	tests := []struct {
		name    string
		mutate  func(config *Config)
		wantErr bool
	}{
		{name: "Valid", mutate: func(*Config) {}},
		{name: "Redis storage", mutate: func(config *Config) { config.ResultLog.Storage = StorageRedis }},
		{name: "Single cell board", mutate: func(config *Config) { config.BoardSize = 1 }},
		{name: "Negative board size", mutate: func(config *Config) { config.BoardSize = -2 }, wantErr: true},
		{name: "One player", mutate: func(config *Config) { config.Players = config.Players[:1] }, wantErr: true},
		{name: "Unknown kind", mutate: func(config *Config) { config.Players[1].Kind = "robot" }, wantErr: true},
		{name: "Unknown storage", mutate: func(config *Config) { config.ResultLog.Storage = "s3" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)

			err := config.Validate()

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}
