package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string        `yaml:"env" env:"ENV" env-default:"local"`
	DSN     string        `yaml:"dsn" env:"DSN" env-required:"true"`
	HTTP    HTTPConfig    `yaml:"http"`
	Redis   RedisConf     `yaml:"redis"`
	Cache   CacheConfig   `yaml:"cache"`
	Gateway GatewayConfig `yaml:"gateway"`
	Session SessionConfig `yaml:"session"`
	Media   MediaConfig   `yaml:"media"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
	// разрешённые origin для редактора, пусто значит любой
	AllowOrigins []string `yaml:"allow_origins"`
}

type RedisConf struct {
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env-default:"0"`
	DialTimeout   time.Duration `yaml:"dial_timeout" env-default:"5s"`
}

type CacheConfig struct {
	RenderTTL  time.Duration `yaml:"render_ttl" env-default:"5m"`
	CatalogTTL time.Duration `yaml:"catalog_ttl" env-default:"1m"`
	CartTTL    time.Duration `yaml:"cart_ttl" env-default:"168h"`
}

// GatewayConfig адрес REST API для инструментов, которые ходят в него как клиент.
type GatewayConfig struct {
	BaseURL string        `yaml:"base_url" env:"GATEWAY_URL" env-default:"http://localhost:8080"`
	Token   string        `yaml:"token" env:"GATEWAY_TOKEN"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

type SessionConfig struct {
	Secret string `yaml:"secret" env:"SESSION_SECRET" env-required:"true"`
	MaxAge int    `yaml:"max_age" env-default:"2592000"`
	Secure bool   `yaml:"secure" env-default:"false"`
}

// MediaConfig загрузки редактора: изображения и видео для блоков.
type MediaConfig struct {
	BaseDir string `yaml:"base_dir" env:"MEDIA_DIR" env-default:"./uploads"`
	BaseURL string `yaml:"base_url" env-default:"/uploads"`
	MaxSize int64  `yaml:"max_size" env-default:"52428800"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the YAML file and applies env overrides and defaults.
func Load(configPath string) (*Config, error) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &os.PathError{Op: "config", Path: configPath, Err: os.ErrNotExist}
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
