package config

import (
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// FileName is looked up in the working directory first.
	FileName = "config.yml"
	// xdgFile is looked up under the XDG config directories.
	xdgFile = "tictactoe-engine/config.yml"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel   string        `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	Mode       string        `yaml:"mode" env:"TICTACTOE_MODE" env-default:"3x3" validate:"required"`
	HumanMark  string        `yaml:"human-mark" env:"TICTACTOE_HUMAN_MARK" env-default:"X" validate:"oneof=X O random"`
	ThinkDelay time.Duration `yaml:"think-delay" env:"TICTACTOE_THINK_DELAY" env-default:"150ms" validate:"gte=0"`
	Trace      bool          `yaml:"trace" env:"TICTACTOE_TRACE" env-default:"false"`
	Engine     Engine        `yaml:"engine"`
	Storage    Storage       `yaml:"storage"`
	Redis      Redis         `yaml:"redis"`
}

type Engine struct {
	LargeBoardDepth int `yaml:"large-board-depth" env:"TICTACTOE_ENGINE_LARGE_BOARD_DEPTH" env-default:"4" validate:"min=1,max=8"`
}

type Storage struct {
	Kind       string        `yaml:"kind" env:"TICTACTOE_STORAGE_KIND" env-default:"memory" validate:"oneof=memory redis"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"TICTACTOE_STORAGE_SESSION_TTL" env-default:"24h" validate:"gte=0"`
}

type Redis struct {
	Host     string `yaml:"host" env:"TICTACTOE_REDIS_HOST" env-default:"localhost" validate:"required"`
	Port     string `yaml:"port" env:"TICTACTOE_REDIS_PORT" env-default:"6379" validate:"numeric"`
	Password string `yaml:"password" env:"TICTACTOE_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"TICTACTOE_REDIS_DB" env-default:"0" validate:"gte=0"`
}

// Lookup returns the config file to read: explicit if set, else config.yml
// in the working directory, else the XDG config file. An empty result means
// environment and defaults only.
func Lookup(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	if path, err := xdg.SearchConfigFile(xdgFile); err == nil {
		return path
	}

	return ""
}

// Load reads path (or only the environment when path is empty) and
// validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err = validator.New(validator.WithRequiredStructEnabled()).Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations, panics on failure.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
