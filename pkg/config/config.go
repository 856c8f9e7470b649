// Package config 提供 TOML 配置加载、环境变量覆盖与校验
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/wyfcoding/storefront/pkg/logging"
)

// EnvPrefix 环境变量前缀，例如 STOREFRONT_API_BASE_URL
const EnvPrefix = "STOREFRONT"

// ClientConfig 店面客户端配置
type ClientConfig struct {
	// 环境：dev, staging, prod
	Environment string `mapstructure:"environment"`
	// 后端 API 配置
	API APIConfig `mapstructure:"api"`
	// 商品目录来源配置
	Catalog CatalogConfig `mapstructure:"catalog"`
	// 本地持久化配置（游客购物车/心愿单、登录令牌）
	Storage StorageConfig `mapstructure:"storage"`
	// Redis 配置（storage.driver = redis 时使用）
	Redis RedisConfig `mapstructure:"redis"`
	// 横幅轮播配置
	Banner BannerConfig `mapstructure:"banner"`
	// 搜索输入防抖配置
	Search SearchConfig `mapstructure:"search"`
	// 日志配置
	Logger logging.Config `mapstructure:"logger"`
}

// APIConfig 后端 API 配置
type APIConfig struct {
	// 基础地址
	BaseURL string `mapstructure:"base_url"`
	// 单次请求超时
	Timeout time.Duration `mapstructure:"timeout"`
}

// CatalogConfig 商品目录来源：remote 或 static
type CatalogConfig struct {
	Source string `mapstructure:"source"`
}

// StorageConfig 本地键值存储配置
type StorageConfig struct {
	// 驱动：file, redis, memory
	Driver string `mapstructure:"driver"`
	// file 驱动的数据文件路径
	Path string `mapstructure:"path"`
	// redis 驱动的 key 前缀
	KeyPrefix string `mapstructure:"key_prefix"`
}

// BannerConfig 横幅轮播配置
type BannerConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// SearchConfig 搜索防抖配置，0 表示不防抖
type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// ServerConfig 后端服务配置
type ServerConfig struct {
	// 服务名称
	ServiceName string `mapstructure:"service_name"`
	// 服务版本
	Version string `mapstructure:"version"`
	// 环境：dev, staging, prod
	Environment string `mapstructure:"environment"`
	// HTTP 服务配置
	HTTP HTTPConfig `mapstructure:"http"`
	// 数据库配置
	Database DatabaseConfig `mapstructure:"database"`
	// Redis 配置
	Redis RedisConfig `mapstructure:"redis"`
	// Kafka 配置
	Kafka KafkaConfig `mapstructure:"kafka"`
	// JWT 配置
	JWT JWTConfig `mapstructure:"jwt"`
	// 限流配置
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	// 指标配置
	Metrics MetricsConfig `mapstructure:"metrics"`
	// 日志配置
	Logger logging.Config `mapstructure:"logger"`
	// 启动时是否写入示例数据
	Seed bool `mapstructure:"seed"`
}

// HTTPConfig HTTP 服务配置
type HTTPConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// 允许跨域的来源
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// 驱动：mysql, postgres
	Driver string `mapstructure:"driver"`
	// 数据源名称
	DSN string `mapstructure:"dsn"`
	// 最大连接数
	MaxOpenConns int `mapstructure:"max_open_conns"`
	// 最大空闲连接数
	MaxIdleConns int `mapstructure:"max_idle_conns"`
	// 连接最大生命周期
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	// 是否启用 SQL 日志
	LogEnabled bool `mapstructure:"log_enabled"`
	// 慢查询阈值
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`
}

// RedisConfig Redis 配置，Addr 为空表示不启用
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// KafkaConfig Kafka 配置，Brokers 为空表示不发布事件
type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

// JWTConfig 访问令牌配置
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Period  time.Duration `mapstructure:"period"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoadClient 加载客户端配置；configPath 为空或文件不存在时只使用默认值与环境变量
func LoadClient(configPath string) (*ClientConfig, error) {
	v := newViper()
	setClientDefaults(v)
	if err := readOptional(v, configPath); err != nil {
		return nil, err
	}

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadServer 加载后端服务配置
func LoadServer(configPath string) (*ServerConfig, error) {
	v := newViper()
	setServerDefaults(v)
	if err := readOptional(v, configPath); err != nil {
		return nil, err
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func readOptional(v *viper.Viper, configPath string) error {
	if configPath == "" {
		return nil
	}
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Validate 验证客户端配置
func (c *ClientConfig) Validate() error {
	if c.Environment == "" {
		c.Environment = "dev"
	}
	switch c.Catalog.Source {
	case "remote":
		if c.API.BaseURL == "" {
			return fmt.Errorf("api.base_url is required for remote catalog")
		}
	case "static":
	default:
		return fmt.Errorf("invalid catalog source: %q", c.Catalog.Source)
	}
	switch c.Storage.Driver {
	case "file":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for file driver")
		}
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for redis driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported storage driver: %q", c.Storage.Driver)
	}
	if c.Banner.Interval <= 0 {
		return fmt.Errorf("invalid banner interval: %s", c.Banner.Interval)
	}
	return nil
}

// Validate 验证后端服务配置
func (c *ServerConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}
	if c.Environment == "" {
		c.Environment = "dev"
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTP.Port)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database DSN is required for %s driver", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	return nil
}

func setClientDefaults(v *viper.Viper) {
	v.SetDefault("environment", "dev")

	v.SetDefault("api.base_url", "http://localhost:5000/api")
	v.SetDefault("api.timeout", 10*time.Second)

	v.SetDefault("catalog.source", "remote")

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", defaultStoragePath())
	v.SetDefault("storage.key_prefix", "storefront:")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 4)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("banner.interval", 3600*time.Millisecond)
	v.SetDefault("search.debounce", 0)

	setLoggerDefaults(v, "file", "logs/storefront.log")
}

func setServerDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "storefront-api")
	v.SetDefault("version", "dev")
	v.SetDefault("environment", "dev")
	v.SetDefault("seed", true)

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 5000)
	v.SetDefault("http.read_timeout", 30*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.allowed_origins", []string{
		"http://localhost:3000", "http://127.0.0.1:3000",
		"http://localhost:5500", "http://127.0.0.1:5500",
		"http://localhost:8000", "http://127.0.0.1:8000",
	})

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.log_enabled", false)
	v.SetDefault("database.slow_query_threshold", time.Second)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.max_retries", 3)
	v.SetDefault("kafka.retry_backoff", 100*time.Millisecond)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 15*time.Minute)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.limit", 120)
	v.SetDefault("rate_limit.period", time.Minute)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	setLoggerDefaults(v, "stdout", "logs/storefront-api.log")
}

func setLoggerDefaults(v *viper.Viper, output, filePath string) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", output)
	v.SetDefault("logger.file_path", filePath)
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.with_caller", false)
}

func defaultStoragePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "storefront", "local.json")
	}
	return filepath.Join(".storefront", "local.json")
}
