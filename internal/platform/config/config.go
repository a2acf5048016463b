package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config del servicio. Todo viene de env; un store sin URI/host usa el adapter in-memory.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppName   string `env:"APP_NAME" envDefault:"pet-adoption-insights"`

	Postgres PostgresConfig `envPrefix:"POSTGRES_"`
	Mongo    MongoConfig    `envPrefix:"MONGO_"`
	Neo4j    Neo4jConfig    `envPrefix:"NEO4J_"`

	// SeedDemo carga datos sintéticos al arrancar (solo tiene sentido en modo in-memory).
	SeedDemo   bool  `env:"SEED_DEMO" envDefault:"false"`
	SeedRandom int64 `env:"SEED_RANDOM" envDefault:"42"`
}

type PostgresConfig struct {
	DSN      string `env:"DSN"`
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"5432"`
	DB       string `env:"DB" envDefault:"pet_tracker"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
}

type MongoConfig struct {
	URI      string `env:"URI"`
	Database string `env:"DATABASE" envDefault:"pet_tracker"`
}

type Neo4jConfig struct {
	URI      string `env:"URI"`
	User     string `env:"USER"`
	Pass     string `env:"PASS"`
	Database string `env:"DATABASE" envDefault:"neo4j"`
}

// Load parsea la config desde el entorno.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ConnString devuelve el DSN explícito o lo arma desde host/user/db.
// Vacío si Postgres no está configurado.
func (c PostgresConfig) ConnString() string {
	if dsn := strings.TrimSpace(c.DSN); dsn != "" {
		return dsn
	}
	if strings.TrimSpace(c.Host) == "" {
		return ""
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.DB,
	}
	if c.User != "" {
		if c.Password != "" {
			u.User = url.UserPassword(c.User, c.Password)
		} else {
			u.User = url.User(c.User)
		}
	}
	return u.String()
}

func (c MongoConfig) Enabled() bool { return strings.TrimSpace(c.URI) != "" }
func (c Neo4jConfig) Enabled() bool { return strings.TrimSpace(c.URI) != "" }
