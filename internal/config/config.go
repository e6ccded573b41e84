package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
		// PublicURL prefixes the interview links returned by the room listing.
		PublicURL string `yaml:"publicUrl"`
	} `yaml:"server"`
	WebSocket struct {
		SendBuffer      int    `yaml:"sendBuffer"`
		MaxMessageBytes int64  `yaml:"maxMessageBytes"`
		PingInterval    string `yaml:"pingInterval"`
		PongWait        string `yaml:"pongWait"`
		WriteWait       string `yaml:"writeWait"`
	} `yaml:"websocket"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Questions struct {
		TTL string `yaml:"ttl"`
	} `yaml:"questions"`
	AI struct {
		APIKey        string  `yaml:"apiKey"`
		BaseURL       string  `yaml:"baseUrl"`
		Model         string  `yaml:"model"`
		Temperature   float32 `yaml:"temperature"`
		Timeout       string  `yaml:"timeout"`
		VoiceTimeout  string  `yaml:"voiceTimeout"`
		ReportTimeout string  `yaml:"reportTimeout"`
		Concurrency   int     `yaml:"concurrency"`
	} `yaml:"ai"`
	Executor struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"executor"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// Load reads YAML config from path, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv lets secrets and deployment endpoints come from the environment
// (or a .env file) instead of the YAML file.
func applyEnv(cfg *Config) {
	setString(&cfg.Server.PublicURL, "PUBLIC_URL")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Postgres.URL, "POSTGRES_URL")
	setString(&cfg.AI.APIKey, "OPENROUTER_API_KEY")
	setString(&cfg.AI.BaseURL, "OPENROUTER_BASE_URL")
	setString(&cfg.AI.Model, "AI_MODEL")
	setString(&cfg.Executor.URL, "EXECUTOR_URL")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
