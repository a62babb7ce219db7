package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	App        AppConfig        `mapstructure:"app"`
	Services   ServicesConfig   `mapstructure:"services"`
	Push       PushConfig       `mapstructure:"push"`
	OSS        OSSConfig        `mapstructure:"oss"`
	Visibility VisibilityConfig `mapstructure:"visibility"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Port     string `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Expire int64  `mapstructure:"expire"` // 小时
}

type AppConfig struct {
	Env   string `mapstructure:"env"`
	Debug bool   `mapstructure:"debug"`
}

// ServicesConfig 下游服务地址。所有外部调用必须带超时。
type ServicesConfig struct {
	UserURL        string `mapstructure:"user_url"`        // 用户/社交关系服务
	InteractionURL string `mapstructure:"interaction_url"` // 互动计数服务
	TimeoutMs      int    `mapstructure:"timeout_ms"`
}

type PushConfig struct {
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	AppKey          int64  `mapstructure:"app_key"`
	RegionID        string `mapstructure:"region_id"` // e.g., "cn-hangzhou"
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
}

// VisibilityConfig 私密帖子可见性判定策略。
// OnGraphError 决定 follower 关系查询失败时的行为：
//
//	deny        - 拒绝访问（当作非 follower 处理）
//	unavailable - 返回依赖不可用错误
type VisibilityConfig struct {
	OnGraphError string `mapstructure:"on_graph_error"`
}

const (
	GraphErrorDeny        = "deny"
	GraphErrorUnavailable = "unavailable"
)

var GlobalConfig Config

// ClientTimeout 外部服务调用超时
func (s *ServicesConfig) ClientTimeout() time.Duration {
	if s.TimeoutMs <= 0 {
		return 3 * time.Second
	}
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.JWT.Secret == "" || c.JWT.Secret == "your_super_secret_key" {
		return errors.New("please set a secure JWT secret in production")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("JWT secret should be at least 32 characters")
	}

	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		return errors.New("database configuration is incomplete")
	}

	if c.Redis.Addr == "" {
		return errors.New("redis address is required")
	}

	if c.Services.UserURL == "" || c.Services.InteractionURL == "" {
		return errors.New("downstream service URLs are required")
	}

	if c.Visibility.OnGraphError != GraphErrorDeny && c.Visibility.OnGraphError != GraphErrorUnavailable {
		return errors.New("visibility.on_graph_error must be 'deny' or 'unavailable'")
	}

	return nil
}

// LoadConfig 加载配置
func LoadConfig() {
	// 获取环境变量，默认为dev
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	// 根据环境选择配置文件
	configName := "config"
	if env != "" && env != "dev" {
		configName = "config." + env
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("jwt.expire", 24)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("app.env", "dev")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("services.timeout_ms", 3000)
	viper.SetDefault("visibility.on_graph_error", GraphErrorDeny)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Config file not found, using defaults or env vars: %v", err)
	}

	// 绑定环境变量
	viper.AutomaticEnv()

	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		log.Fatalf("Unable to decode into struct: %v", err)
	}

	// 手动覆盖，以防 viper 无法正确解析复杂结构或环境变量
	if host := os.Getenv("DB_HOST"); host != "" {
		GlobalConfig.Database.Host = host
	}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		GlobalConfig.Redis.Addr = redisAddr
	}
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		GlobalConfig.JWT.Secret = jwtSecret
	}
	if userURL := os.Getenv("USER_SERVICE_URL"); userURL != "" {
		GlobalConfig.Services.UserURL = userURL
	}
	if interactionURL := os.Getenv("INTERACTION_SERVICE_URL"); interactionURL != "" {
		GlobalConfig.Services.InteractionURL = interactionURL
	}

	// 验证配置
	if err := GlobalConfig.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	log.Printf("Configuration loaded and validated successfully. Environment: %s", GlobalConfig.App.Env)
}
