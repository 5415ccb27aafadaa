package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort  string    `yaml:"http-port" env:"HTTP_PORT" env-default:""`
	BoardSize int       `yaml:"board-size" env:"BOARD_SIZE" env-default:"3"`
	Players   []Player  `yaml:"players"`
	ResultLog ResultLog `yaml:"result-log"`
	Redis     Redis     `yaml:"redis"`
}

type Player struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
	Kind   string `yaml:"kind"`
}

type ResultLog struct {
	Storage    string `yaml:"storage" env:"RESULT_STORAGE" env-default:"file"`
	Path       string `yaml:"path" env:"RESULT_LOG_PATH" env-default:"game_data.txt"`
	SQLitePath string `yaml:"sqlite-path" env:"RESULT_SQLITE_PATH" env-default:"game_data.db"`
	RedisKey   string `yaml:"redis-key" env:"RESULT_REDIS_KEY" env-default:"tictactoe:results"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// DefaultPlayers - two humans, used when the config lists none.
func DefaultPlayers() []Player {
	return []Player{
		{Name: "Player X", Symbol: "X", Kind: "human"},
		{Name: "Player O", Symbol: "O", Kind: "human"},
	}
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load - reads path, or only the environment when path does not exist, and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else if err = cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if len(config.Players) == 0 {
		config.Players = DefaultPlayers()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.BoardSize < 1 {
		return fmt.Errorf("%w: board-size must be at least 1, got %d", ErrInvalidConfig, that.BoardSize)
	}

	if len(that.Players) < 2 {
		return fmt.Errorf("%w: at least 2 players required, got %d", ErrInvalidConfig, len(that.Players))
	}

	for _, player := range that.Players {
		switch player.Kind {
		case "human", "computer":
		default:
			return fmt.Errorf("%w: player %q has unknown kind %q", ErrInvalidConfig, player.Name, player.Kind)
		}
	}

	switch that.ResultLog.Storage {
	case StorageFile, StorageRedis, StorageSQLite:
	default:
		return fmt.Errorf("%w: unknown result-log storage %q", ErrInvalidConfig, that.ResultLog.Storage)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
