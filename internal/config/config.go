package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort     string
	EnableSeed     bool
	CORSOrigins    []string
	SecureCookies  bool
	DBDriver       string
	DatabaseURL    string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	SessionSecret  string
	SessionTTL     time.Duration
	LocalTTL       time.Duration
	RefreshTimeout time.Duration
	OIDC           OIDCConfig
	StrictAnswers  bool
	CatalogCache   int
	LogLevel       string
	LogFormat      string
}

type OIDCConfig struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether an external identity provider is configured.
func (c OIDCConfig) Enabled() bool {
	return c.IssuerURL != "" && c.ClientID != ""
}

// legacyEnv maps flat environment variable names onto config keys.
var legacyEnv = map[string]string{
	"server.port":         "SERVER_PORT",
	"database.dsn":        "DATABASE_URL",
	"database.host":       "DB_HOST",
	"database.port":       "DB_PORT",
	"database.user":       "DB_USER",
	"database.password":   "DB_PASSWORD",
	"database.name":       "DB_NAME",
	"auth.session_secret": "SESSION_SECRET",
	"oidc.issuer_url":     "ISSUER_URL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.enable_seed", true)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.secure_cookies", false)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "mindconnect")
	v.SetDefault("auth.session_secret", "fallback-secret-for-dev")
	v.SetDefault("auth.session_ttl", 7*24*time.Hour)
	v.SetDefault("auth.local_session_ttl", 24*time.Hour)
	v.SetDefault("auth.refresh_timeout", 10*time.Second)
	v.SetDefault("oidc.issuer_url", "")
	v.SetDefault("oidc.client_id", "")
	v.SetDefault("oidc.client_secret", "")
	v.SetDefault("oidc.redirect_url", "")
	v.SetDefault("assessment.strict_questions", true)
	v.SetDefault("assessment.cache_size", 128)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration from defaults, an optional file and the environment.
// Environment variables use the MINDCONNECT_ prefix (MINDCONNECT_SERVER_PORT);
// the flat names in legacyEnv are honoured as well.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MINDCONNECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, "MINDCONNECT_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		ServerPort:     v.GetString("server.port"),
		EnableSeed:     v.GetBool("server.enable_seed"),
		CORSOrigins:    v.GetStringSlice("server.cors_origins"),
		SecureCookies:  v.GetBool("server.secure_cookies"),
		DBDriver:       strings.ToLower(v.GetString("database.driver")),
		DatabaseURL:    v.GetString("database.dsn"),
		DBHost:         v.GetString("database.host"),
		DBPort:         v.GetString("database.port"),
		DBUser:         v.GetString("database.user"),
		DBPassword:     v.GetString("database.password"),
		DBName:         v.GetString("database.name"),
		SessionSecret:  v.GetString("auth.session_secret"),
		SessionTTL:     v.GetDuration("auth.session_ttl"),
		LocalTTL:       v.GetDuration("auth.local_session_ttl"),
		RefreshTimeout: v.GetDuration("auth.refresh_timeout"),
		OIDC: OIDCConfig{
			IssuerURL:    strings.TrimRight(v.GetString("oidc.issuer_url"), "/"),
			ClientID:     v.GetString("oidc.client_id"),
			ClientSecret: v.GetString("oidc.client_secret"),
			RedirectURL:  v.GetString("oidc.redirect_url"),
		},
		StrictAnswers: v.GetBool("assessment.strict_questions"),
		CatalogCache:  v.GetInt("assessment.cache_size"),
		LogLevel:      v.GetString("log.level"),
		LogFormat:     v.GetString("log.format"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("auth.session_secret must not be empty")
	}
	if c.SessionTTL <= 0 || c.LocalTTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("server.cors_origins must list at least one origin")
	}
	if c.CatalogCache <= 0 {
		c.CatalogCache = 128
	}
	return nil
}
