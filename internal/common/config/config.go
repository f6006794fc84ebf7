package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type DB struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Pass     string `yaml:"password"`
	Name     string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int32  `yaml:"max_conns"`
}

type MQ struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	User   string `yaml:"user"`
	Pass   string `yaml:"password"`
	VHost  string `yaml:"vhost"`
	UseTLS bool   `yaml:"tls"`
}

// Enabled reports whether a broker is configured. Report queueing is optional.
func (m MQ) Enabled() bool { return m.Host != "" }

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (r Redis) Enabled() bool { return r.Addr != "" }

type HTTP struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type Storage struct {
	Endpoint     string `yaml:"endpoint"`
	Region       string `yaml:"region"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	Bucket       string `yaml:"bucket"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

// Enabled reports whether an S3 endpoint or credentials are configured.
// Without them report files are kept in memory.
func (s Storage) Enabled() bool { return s.Endpoint != "" || s.AccessKey != "" }

type Auth struct {
	Issuer   string `yaml:"issuer"`
	ClientID string `yaml:"client_id"`
	// RoleClaim names the token claim carrying employee|admin.
	RoleClaim string `yaml:"role_claim"`
}

type App struct {
	Timezone string `yaml:"timezone"`
	LogLevel string `yaml:"log_level"`
}

type Config struct {
	Database DB      `yaml:"database"`
	Rabbit   MQ      `yaml:"rabbitmq"`
	Redis    Redis   `yaml:"redis"`
	HTTP     HTTP    `yaml:"http"`
	Storage  Storage `yaml:"storage"`
	Auth     Auth    `yaml:"auth"`
	App      App     `yaml:"app"`
}

func defaults() Config {
	return Config{
		Database: DB{Port: 5432, SSLMode: "disable", MaxConns: 10},
		Rabbit:   MQ{Port: 5672, VHost: "/"},
		HTTP: HTTP{
			Port:            3000,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Storage: Storage{Region: "us-east-1", Bucket: "reports"},
		Auth:    Auth{RoleClaim: "role"},
		App:     App{Timezone: "Local", LogLevel: "info"},
	}
}

// Load reads the YAML file at path, applies PIZZA_* environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
		return errors.New("invalid config: database host, user and database are required")
	}
	if c.Rabbit.Enabled() && c.Rabbit.User == "" {
		return errors.New("invalid config: rabbitmq user is required when host is set")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid config: timezone %q: %w", c.App.Timezone, err)
	}
	return nil
}

func (c Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" || c.App.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.App.Timezone)
}

func applyEnv(c *Config) {
	setString(&c.Database.Host, "PIZZA_DB_HOST")
	setInt(&c.Database.Port, "PIZZA_DB_PORT")
	setString(&c.Database.User, "PIZZA_DB_USER")
	setString(&c.Database.Pass, "PIZZA_DB_PASSWORD")
	setString(&c.Database.Name, "PIZZA_DB_NAME")
	setString(&c.Rabbit.Host, "PIZZA_RABBITMQ_HOST")
	setString(&c.Rabbit.User, "PIZZA_RABBITMQ_USER")
	setString(&c.Rabbit.Pass, "PIZZA_RABBITMQ_PASSWORD")
	setString(&c.Redis.Addr, "PIZZA_REDIS_ADDR")
	setString(&c.Redis.Password, "PIZZA_REDIS_PASSWORD")
	setInt(&c.HTTP.Port, "PIZZA_HTTP_PORT")
	setString(&c.Storage.Endpoint, "PIZZA_STORAGE_ENDPOINT")
	setString(&c.Storage.AccessKey, "PIZZA_STORAGE_ACCESS_KEY")
	setString(&c.Storage.SecretKey, "PIZZA_STORAGE_SECRET_KEY")
	setString(&c.Storage.Bucket, "PIZZA_STORAGE_BUCKET")
	setString(&c.Auth.Issuer, "PIZZA_AUTH_ISSUER")
	setString(&c.Auth.ClientID, "PIZZA_AUTH_CLIENT_ID")
	setString(&c.App.Timezone, "PIZZA_TIMEZONE")
	setString(&c.App.LogLevel, "PIZZA_LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "deploy/config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}
