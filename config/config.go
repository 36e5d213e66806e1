package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Log    LogConfig
	Map    MapConfig
	Redis  RedisConfig
	Export ExportConfig
}

type ServerConfig struct {
	Addr string
}

type LogConfig struct {
	Level string
}

type MapConfig struct {
	TickInterval     time.Duration `mapstructure:"tick_interval"`
	Jitter           float64
	CenterLat        float64 `mapstructure:"center_lat"`
	CenterLng        float64 `mapstructure:"center_lng"`
	Zoom             int
	TrackZoom        int    `mapstructure:"track_zoom"`
	TileURL          string `mapstructure:"tile_url"`
	Index            string
	MaxRetries       int  `mapstructure:"max_retries"`
	GeohashPrecision uint `mapstructure:"geohash_precision"`
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type ExportConfig struct {
	Filename string
}

// EnvPrefix is prepended to every environment override, e.g.
// FOODONBUS_SERVER_ADDR for server.addr.
const EnvPrefix = "FOODONBUS"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("map.tick_interval", "2s")
	v.SetDefault("map.jitter", 0.02)
	v.SetDefault("map.center_lat", 20.5937)
	v.SetDefault("map.center_lng", 78.9629)
	v.SetDefault("map.zoom", 5)
	v.SetDefault("map.track_zoom", 12)
	v.SetDefault("map.tile_url", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png")
	v.SetDefault("map.index", "rtree")
	v.SetDefault("map.max_retries", 5)
	v.SetDefault("map.geohash_precision", 5)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("export.filename", "foodonbus_db.json")
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from path, or from ./config.yaml when path is
// empty. A missing ./config.yaml is not an error; defaults and environment
// overrides still apply. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := newViper(path)
	return read(v, path)
}

func read(v *viper.Viper, path string) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &cfg, nil
}

// InitConfig loads the configuration and, when a config file was found,
// calls onChange with the reloaded configuration every time the file is
// written or replaced. onChange runs on the watcher goroutine.
func InitConfig(path string, onChange func(*Config)) (*Config, error) {
	v := newViper(path)
	cfg, err := read(v, path)
	if err != nil {
		return nil, err
	}

	if onChange != nil && v.ConfigFileUsed() != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				return
			}
			var next Config
			if err := v.Unmarshal(&next); err != nil {
				return
			}
			onChange(&next)
		})
		v.WatchConfig()
	}
	return cfg, nil
}
