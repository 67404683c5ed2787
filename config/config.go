package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Auth       AuthConfig       `yaml:"auth"`
	Users      []User           `yaml:"users"`
	Minio      MinioConfig      `yaml:"minio"`
	LLM        LLMConfig        `yaml:"llm"`
	Perplexity PerplexityConfig `yaml:"perplexity"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Prober     ProberConfig     `yaml:"prober"`
	Smartlead  SmartleadConfig  `yaml:"smartlead"`
	Email      EmailConfig      `yaml:"email"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
	// WriteTimeoutSeconds bounds a whole response, search streams included.
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`
	RateLimitPerMinute  int `yaml:"rate_limit_per_minute"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	TokenExpireHours int    `yaml:"token_expire_hours"`
}

type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MinioConfig configures the blob store. An empty endpoint selects the
// in-memory store.
type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
	// MaxDocuments caps the search history kept by the in-memory store,
	// 0 = unlimited.
	MaxDocuments int `yaml:"max_documents"`
}

type LLMConfig struct {
	Provider     string  `yaml:"provider"` // perplexity, gemini
	RateLimitRPS float64 `yaml:"rate_limit_rps"`
}

type PerplexityConfig struct {
	APIURL         string `yaml:"api_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type ProberConfig struct {
	TimeoutMillis int    `yaml:"timeout_millis"`
	UserAgent     string `yaml:"user_agent"`
}

type SmartleadConfig struct {
	BaseURL    string `yaml:"base_url"`
	APIKey     string `yaml:"api_key"`
	CampaignID string `yaml:"campaign_id"`
}

type EmailConfig struct {
	// Signature closes every generated email.
	Signature string `yaml:"signature"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return &cfg, nil
}

// applyEnv lets secrets live outside the config file.
func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	override(&c.Perplexity.APIKey, "PERPLEXITY_API_KEY")
	override(&c.Gemini.APIKey, "GEMINI_API_KEY")
	override(&c.Smartlead.APIKey, "SMARTLEAD_API_KEY")
	override(&c.Minio.AccessKey, "MINIO_ACCESS_KEY")
	override(&c.Minio.SecretKey, "MINIO_SECRET_KEY")
	override(&c.Auth.JWTSecret, "JWT_SECRET")
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 600
	}
	if c.Server.RateLimitPerMinute == 0 {
		c.Server.RateLimitPerMinute = 100
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Auth.TokenExpireHours == 0 {
		c.Auth.TokenExpireHours = 24
	}
	if c.Minio.Bucket == "" {
		c.Minio.Bucket = "outreach"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "perplexity"
	}
	if c.LLM.RateLimitRPS == 0 {
		c.LLM.RateLimitRPS = 2
	}
	if c.Perplexity.APIURL == "" {
		c.Perplexity.APIURL = "https://api.perplexity.ai"
	}
	if c.Perplexity.Model == "" {
		c.Perplexity.Model = "sonar"
	}
	if c.Perplexity.TimeoutSeconds == 0 {
		c.Perplexity.TimeoutSeconds = 120
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Prober.TimeoutMillis == 0 {
		c.Prober.TimeoutMillis = 3000
	}
	if c.Prober.UserAgent == "" {
		c.Prober.UserAgent = "Mozilla/5.0 (compatible; BusinessScanner/1.0)"
	}
	if c.Email.Signature == "" {
		c.Email.Signature = "Best Regards,\nThe Lead-V team"
	}
	if c.Smartlead.BaseURL == "" {
		c.Smartlead.BaseURL = "https://server.smartlead.ai/api/v1"
	}
}

// FindUser finds a user by username
func (c *Config) FindUser(username string) *User {
	for i := range c.Users {
		if c.Users[i].Username == username {
			return &c.Users[i]
		}
	}
	return nil
}

func (c PerplexityConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c ProberConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMillis) * time.Millisecond
}
