package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when no -config flag is given.
const DefaultConfigPath = "config.yaml"

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int              `yaml:"port"`
	Env            string           `yaml:"env"` // "development" | "production"
	DSN            string           `yaml:"dsn"` // MySQL DSN
	Database       DatabaseConfig   `yaml:"database"`
	RedisURL       string           `yaml:"redis_url"`
	JWTSecret      string           `yaml:"jwt_secret"`
	AllowedOrigins []string         `yaml:"allowed_origins"`
	StaticDir      string           `yaml:"static_dir"`
	Media          MediaConfig      `yaml:"media"`
	S3             S3Options        `yaml:"s3"`
	Revalidate     RevalidateConfig `yaml:"revalidate"`
}

// DatabaseConfig builds a DSN from parts when no full DSN is configured.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// MediaConfig limits uploads to the media library.
type MediaConfig struct {
	MaxSizeMB      int    `yaml:"max_size_mb"`
	AllowedFormats string `yaml:"allowed_formats"` // comma-separated extensions
}

// S3Options configures the optional S3-compatible upload target.
type S3Options struct {
	Enable          bool   `yaml:"enable"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
	PathTemplate    string `yaml:"path_template"`
}

// RevalidateConfig points at the front end's cache hooks.
type RevalidateConfig struct {
	// NotifyURL receives a best-effort POST {paths:[...]} after content writes.
	NotifyURL string `yaml:"notify_url"`
	// DeployHookURL is the build hook triggered by the admin redeploy action.
	DeployHookURL string `yaml:"deploy_hook_url"`
}

// Load reads and validates the YAML config file at path.
func Load(path string) (*AppConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &AppConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()

	if cfg.ResolveDSN() == "" {
		return nil, fmt.Errorf("database is not configured: set dsn or database.*")
	}
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = 2333
	}
	if c.Env == "" {
		c.Env = "production"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.Media.MaxSizeMB == 0 {
		c.Media.MaxSizeMB = 10
	}
	if c.Media.AllowedFormats == "" {
		c.Media.AllowedFormats = "png,jpg,jpeg,webp,avif,gif,svg"
	}
	if c.Database.Charset == "" {
		c.Database.Charset = "utf8mb4"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
}

// ResolveDSN returns the full DSN, preferring the explicit dsn field.
func (c *AppConfig) ResolveDSN() string {
	if dsn := strings.TrimSpace(c.DSN); dsn != "" {
		return dsn
	}
	d := c.Database
	if d.Host == "" || d.User == "" || d.Name == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name, d.Charset)
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development") ||
		strings.EqualFold(strings.TrimSpace(c.Env), "dev")
}
