package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"movie-i18n/internal/globalize"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Database DatabaseConfig `envPrefix:"DB_"`
	TMDB     TMDBConfig     `envPrefix:"TMDB_"`
	MinIO    MinIOConfig
	Redis    RedisConfig `envPrefix:"REDIS_"`
	I18n     I18nConfig  `envPrefix:"I18N_"`
}

type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:"8010"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
}

type DatabaseConfig struct {
	Driver          string        `env:"DRIVER" envDefault:"postgres"`
	DSN             string        `env:"DSN"`
	Host            string        `env:"HOST" envDefault:"localhost"`
	Port            string        `env:"PORT" envDefault:"5432"`
	User            string        `env:"USER" envDefault:"postgres"`
	Password        string        `env:"PASSWORD" envDefault:"postgres"`
	DBName          string        `env:"NAME" envDefault:"movie_i18n"`
	SSLMode         string        `env:"SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	QueryTimeout    time.Duration `env:"QUERY_TIMEOUT" envDefault:"10s"`
}

type TMDBConfig struct {
	APIKey      string        `env:"API_KEY"`
	BaseURL     string        `env:"BASE_URL" envDefault:"https://api.themoviedb.org/3"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	// Languages are requested in turn on every sync, e.g. "en-US,fr-FR".
	Languages []string `env:"LANGUAGES" envSeparator:"," envDefault:"en-US"`
}

type MinIOConfig struct {
	Endpoint        string `env:"AWS_ENDPOINT" envDefault:"localhost:9000"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	BucketName      string `env:"AWS_BUCKET" envDefault:"posters"`
	Region          string `env:"AWS_DEFAULT_REGION" envDefault:"us-east-1"`
	UseSSL          bool   `env:"AWS_USE_SSL" envDefault:"true"`
	PublicURL       string `env:"AWS_URL" envDefault:"http://localhost:9000/posters"`
}

// RedisConfig enables the translated-languages cache when Addr is set.
type RedisConfig struct {
	Addr     string        `env:"ADDR"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	TTL      time.Duration `env:"TTL" envDefault:"5m"`
}

type I18nConfig struct {
	DefaultLanguage string   `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	Languages       []string `env:"LANGUAGES" envSeparator:"," envDefault:"en,fr,de,es,id"`
	// Fallbacks lists chains as "fr-CA=fr,en;de-AT=de".
	Fallbacks     string `env:"FALLBACKS"`
	FallbacksFile string `env:"FALLBACKS_FILE"`
}

// fallbacksFile is the YAML layout of I18N_FALLBACKS_FILE.
type fallbacksFile struct {
	Default string              `yaml:"default"`
	Chains  map[string][]string `yaml:"chains"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// GetDSN returns the connection string for the configured driver
func (c *Config) GetDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}

	switch c.Database.Driver {
	case "mysql":
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.DBName,
		)
	case "sqlite":
		return c.Database.DBName + ".db"
	default:
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC connect_timeout=10",
			c.Database.Host,
			c.Database.Port,
			c.Database.User,
			c.Database.Password,
			c.Database.DBName,
			c.Database.SSLMode,
		)
	}
}

func (c *Config) Validate() error {
	return validation.Errors{
		"TMDB_API_KEY":          validation.Validate(c.TMDB.APIKey, validation.Required),
		"DB_DRIVER":             validation.Validate(c.Database.Driver, validation.Required, validation.In("postgres", "mysql", "sqlite")),
		"DB_HOST":               validation.Validate(c.Database.Host, validation.When(c.Database.Driver != "sqlite", validation.Required)),
		"I18N_DEFAULT_LANGUAGE": validation.Validate(c.I18n.DefaultLanguage, validation.Required),
		"AWS_ACCESS_KEY_ID":     validation.Validate(c.MinIO.AccessKeyID, validation.Required),
		"AWS_SECRET_ACCESS_KEY": validation.Validate(c.MinIO.SecretAccessKey, validation.Required),
		"AWS_ENDPOINT":          validation.Validate(c.MinIO.Endpoint, validation.Required),
	}.Filter()
}

// Fallbacks merges the chains of I18N_FALLBACKS_FILE and I18N_FALLBACKS.
// Chains from the environment variable win over the file.
func (c *Config) Fallbacks() (globalize.Fallbacks, error) {
	defaultLanguage := c.I18n.DefaultLanguage
	chains := make(map[string][]string)

	if c.I18n.FallbacksFile != "" {
		file, err := readFallbacksFile(c.I18n.FallbacksFile)
		if err != nil {
			return globalize.Fallbacks{}, err
		}
		if file.Default != "" {
			defaultLanguage = file.Default
		}
		for code, chain := range file.Chains {
			chains[code] = chain
		}
	}

	parsed, err := ParseFallbackChains(c.I18n.Fallbacks)
	if err != nil {
		return globalize.Fallbacks{}, err
	}
	for code, chain := range parsed {
		chains[code] = chain
	}

	return globalize.NewFallbacks(defaultLanguage, chains), nil
}

// ParseFallbackChains parses "fr-CA=fr,en;de-AT=de".
func ParseFallbackChains(value string) (map[string][]string, error) {
	chains := make(map[string][]string)
	for entry := range strings.SplitSeq(value, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		code, list, ok := strings.Cut(entry, "=")
		code = strings.TrimSpace(code)
		if !ok || code == "" {
			return nil, fmt.Errorf("invalid fallback chain %q: expected code=fallback,...", entry)
		}

		var chain []string
		for fallback := range strings.SplitSeq(list, ",") {
			if fallback = strings.TrimSpace(fallback); fallback != "" {
				chain = append(chain, fallback)
			}
		}
		chains[code] = chain
	}
	return chains, nil
}

func readFallbacksFile(path string) (*fallbacksFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fallbacks file: %w", err)
	}

	var file fallbacksFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse fallbacks file %s: %w", path, err)
	}
	return &file, nil
}
