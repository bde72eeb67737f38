package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "github.com/orris-inc/tenantdesk/internal/shared/config"
)

type Config struct {
	Server     sharedConfig.ServerConfig     `mapstructure:"server"`
	Database   sharedConfig.DatabaseConfig   `mapstructure:"database"`
	Logger     sharedConfig.LoggerConfig     `mapstructure:"logger"`
	Auth       sharedConfig.AuthConfig       `mapstructure:"auth"`
	OAuth      sharedConfig.OAuthConfig      `mapstructure:"oauth"`
	Email      sharedConfig.EmailConfig      `mapstructure:"email"`
	Redis      sharedConfig.RedisConfig      `mapstructure:"redis"`
	Scheduler  sharedConfig.SchedulerConfig  `mapstructure:"scheduler"`
	RateLimit  sharedConfig.RateLimitConfig  `mapstructure:"ratelimit"`
	Permission sharedConfig.PermissionConfig `mapstructure:"permission"`
	Timezone   string                        `mapstructure:"timezone"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads an optional .env file, then configs/config.yaml, then TENANTDESK_*
// environment variables. A missing config file is not an error; defaults apply.
func Load(env string) (*Config, error) {
	// .env is optional; variables already set in the environment win.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("TENANTDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Server.Mode == "release" && config.Auth.JWT.Secret == defaultJWTSecret {
		return nil, fmt.Errorf("auth.jwt.secret must be set in release mode")
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

const defaultJWTSecret = "change-me-in-production"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.driver", sharedConfig.DriverMySQL)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "tenantdesk_dev")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.jwt.secret", defaultJWTSecret)
	v.SetDefault("auth.jwt.access_exp_minutes", 15)
	v.SetDefault("auth.jwt.refresh_exp_days", 7)

	v.SetDefault("oauth.google.redirect_url", "http://localhost:8080/api/v1/auth/oauth/google/callback")
	v.SetDefault("oauth.github.redirect_url", "http://localhost:8080/api/v1/auth/oauth/github/callback")

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 1025)
	v.SetDefault("email.from_address", "noreply@tenantdesk.local")
	v.SetDefault("email.from_name", "Tenantdesk")

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.expiry_spec", "0 5 0 * * *")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.limit", 120)
	v.SetDefault("ratelimit.window_seconds", 60)

	v.SetDefault("permission.persist", true)
	v.SetDefault("timezone", "UTC")
}
