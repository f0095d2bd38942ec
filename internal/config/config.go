// config предоставляет структуру конфигурации portal-service
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pribylovaa/go-content-portal/internal/region"
)

// MaxPerKindLimit — жёсткий потолок выдачи поиска на один вид контента.
const MaxPerKindLimit = 10

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string        `yaml:"env"     env:"ENV"        env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	DB       DBConfig      `yaml:"db"`
	Mongo    MongoConfig   `yaml:"mongo"`
	S3       S3Config      `yaml:"s3"`
	Search   SearchConfig  `yaml:"search"`
	Limits   LimitsConfig  `yaml:"limits"`
	Regions  RegionsConfig `yaml:"regions"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	// Service — общий дедлайн HTTP-запроса.
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
	// Query — дедлайн одного запроса к хранилищу контента.
	Query time.Duration `yaml:"query" env:"QUERY_TIMEOUT" env-default:"3s"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50080"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — подключение к PostgreSQL с контентом.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// MongoConfig — подключение к MongoDB с лидами.
type MongoConfig struct {
	URL string `yaml:"url" env:"MONGO_URL" env-required:"true"`
}

// S3Config — MinIO/S3 с файлами материалов.
// Пустой Endpoint отключает выдачу ссылок (используется file_url записи).
type S3Config struct {
	Endpoint     string        `yaml:"endpoint"      env:"S3_ENDPOINT"`
	RootUser     string        `yaml:"root_user"     env:"S3_ROOT_USER"`
	RootPassword string        `yaml:"root_password" env:"S3_ROOT_PASSWORD"`
	Bucket       string        `yaml:"bucket"        env:"S3_BUCKET"      env-default:"materials"`
	PresignTTL   time.Duration `yaml:"presign_ttl"   env:"S3_PRESIGN_TTL" env-default:"15m"`
}

// SearchConfig — параметры агрегированного поиска и связанных материалов.
type SearchConfig struct {
	// PerKindLimit — потолок выдачи на один вид контента (не больше MaxPerKindLimit).
	PerKindLimit int `yaml:"per_kind_limit" env:"SEARCH_PER_KIND_LIMIT" env-default:"10"`
	// RelatedLimit — сколько связанных материалов отдавать на странице сущности.
	RelatedLimit int `yaml:"related_limit" env:"SEARCH_RELATED_LIMIT" env-default:"4"`
}

// LimitsConfig — серверные лимиты на выдачу списков.
type LimitsConfig struct {
	// Применяется при запросе с limit=0.
	Default int `yaml:"default" env:"DEFAULT_LIMIT" env-default:"12"`
	// Верхняя граница для limit.
	Max int `yaml:"max" env:"MAX_LIMIT" env-default:"100"`
}

// RegionsConfig — регион по умолчанию (для запросов без региона в пути).
type RegionsConfig struct {
	Default string `yaml:"default" env:"DEFAULT_REGION" env-default:"pt"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultRegion возвращает регион по умолчанию (валидность проверена в validate).
func (c *Config) DefaultRegion() region.Region {
	r, err := region.Parse(c.Regions.Default)
	if err != nil {
		return region.Default
	}
	return r
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}
	if c.Mongo.URL == "" {
		return fmt.Errorf("mongo.url is required")
	}
	if c.Search.PerKindLimit <= 0 || c.Search.PerKindLimit > MaxPerKindLimit {
		return fmt.Errorf("search.per_kind_limit must be in [1, %d]", MaxPerKindLimit)
	}
	if c.Search.RelatedLimit < 0 {
		return fmt.Errorf("search.related_limit must be >= 0")
	}
	if c.Limits.Default <= 0 {
		return fmt.Errorf("limits.default must be > 0")
	}
	if c.Limits.Max <= 0 {
		return fmt.Errorf("limits.max must be > 0")
	}
	if c.Limits.Default > c.Limits.Max {
		return fmt.Errorf("limits.default must be <= limits.max")
	}
	if _, err := region.Parse(c.Regions.Default); err != nil {
		return fmt.Errorf("regions.default: %w", err)
	}
	if c.S3.Endpoint != "" && c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required when s3.endpoint is set")
	}
	return nil
}
