package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Storage   StorageConfig
	LLM       LLMConfig
	Auth      AuthConfig
	CacheTTLs CacheTTLConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type LoggerConfig struct {
	Level string
	Env   string
	// File enables a rotating JSON log file next to stdout when set.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	Secure        bool
	PublicBaseURL string
}

type LLMConfig struct {
	Provider    string
	Model       string
	APIKey      string
	ServerURL   string
	Timeout     time.Duration
	Temperature float64
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
	Audience  string
}

type CacheTTLConfig struct {
	MaterialSummary time.Duration
}

const (
	LLMProviderOllama = "ollama"
	LLMProviderOpenAI = "openai"
)

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
			BodyLimit:    viper.GetInt("server.body_limit"),
		},
		Logger: LoggerConfig{
			Level:      viper.GetString("logger.level"),
			Env:        viper.GetString("logger.env"),
			File:       viper.GetString("logger.file"),
			MaxSizeMB:  viper.GetInt("logger.max_size_mb"),
			MaxBackups: viper.GetInt("logger.max_backups"),
			MaxAgeDays: viper.GetInt("logger.max_age_days"),
		},
		Mongo: MongoConfig{
			URI:            viper.GetString("mongo.uri"),
			Database:       viper.GetString("mongo.database"),
			ConnectTimeout: viper.GetDuration("mongo.connect_timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Storage: StorageConfig{
			Endpoint:      viper.GetString("storage.endpoint"),
			AccessKey:     viper.GetString("storage.access_key"),
			SecretKey:     viper.GetString("storage.secret_key"),
			Bucket:        viper.GetString("storage.bucket"),
			Secure:        viper.GetBool("storage.secure"),
			PublicBaseURL: viper.GetString("storage.public_base_url"),
		},
		LLM: LLMConfig{
			Provider:    viper.GetString("llm.provider"),
			Model:       viper.GetString("llm.model"),
			APIKey:      viper.GetString("llm.api_key"),
			ServerURL:   viper.GetString("llm.server_url"),
			Timeout:     viper.GetDuration("llm.timeout") * time.Second,
			Temperature: viper.GetFloat64("llm.temperature"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("auth.jwt_secret"),
			Issuer:    viper.GetString("auth.issuer"),
			Audience:  viper.GetString("auth.audience"),
		},
		CacheTTLs: CacheTTLConfig{
			MaterialSummary: viper.GetDuration("cache_ttls.material_summary"),
		},
	}

	// Override with environment variables if set
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		config.Mongo.URI = uri
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = viper.GetInt("server.port")
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 120)
	viper.SetDefault("server.body_limit", 4*1024*1024)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("logger.max_size_mb", 100)
	viper.SetDefault("logger.max_backups", 5)
	viper.SetDefault("logger.max_age_days", 30)
	viper.SetDefault("mongo.database", "quizcraft")
	viper.SetDefault("mongo.connect_timeout", 10)
	viper.SetDefault("llm.provider", LLMProviderOllama)
	viper.SetDefault("llm.timeout", 120)
	viper.SetDefault("llm.temperature", 0.4)
	viper.SetDefault("cache_ttls.material_summary", "24h")
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case LLMProviderOpenAI:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("llm.api_key is required for provider %q", c.LLM.Provider)
		}
	case LLMProviderOllama:
		if c.LLM.ServerURL == "" {
			return fmt.Errorf("llm.server_url is required for provider %q", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unsupported llm.provider %q", c.LLM.Provider)
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	return nil
}

// MaterialSummaryTTL returns the summary cache TTL, falling back to a day.
func (c *Config) MaterialSummaryTTL() time.Duration {
	if c.CacheTTLs.MaterialSummary <= 0 {
		return 24 * time.Hour
	}
	return c.CacheTTLs.MaterialSummary
}
