package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"

	"loan-portal/internal/domain/creditscore"
)

type Config struct {
	AppPort        string        `env:"APP_PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	MySQLHost   string `env:"MYSQL_HOST" envDefault:"mysql"`
	MySQLPort   string `env:"MYSQL_PORT" envDefault:"3306"`
	MySQLDB     string `env:"MYSQL_DB" envDefault:"loans"`
	MySQLUser   string `env:"MYSQL_USER" envDefault:"loans"`
	MySQLPass   string `env:"MYSQL_PASS" envDefault:"loans"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"redis:6379"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	IdempTTLSecs int `env:"IDEMPOTENCY_TTL_SECONDS" envDefault:"300"`

	// HS256 secret shared with the identity provider.
	JWTSecret string `env:"JWT_SECRET"`

	PaymentMaxRetries int `env:"PAYMENT_MAX_RETRIES" envDefault:"3"`

	LateFlagSchedule    string `env:"LATE_FLAG_SCHEDULE" envDefault:"@every 1m"`
	LatePenaltySchedule string `env:"LATE_PENALTY_SCHEDULE" envDefault:"@every 1m"`

	ScoreDefault     int `env:"CREDIT_SCORE_DEFAULT" envDefault:"750"`
	ScoreNudge       int `env:"CREDIT_SCORE_NUDGE" envDefault:"5"`
	ScoreLatePenalty int `env:"CREDIT_SCORE_LATE_PENALTY" envDefault:"20"`
}

func Load() (*Config, error) {
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.PaymentMaxRetries < 0 {
		return fmt.Errorf("PAYMENT_MAX_RETRIES must be >= 0, got %d", c.PaymentMaxRetries)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	for name, spec := range map[string]string{
		"LATE_FLAG_SCHEDULE":    c.LateFlagSchedule,
		"LATE_PENALTY_SCHEDULE": c.LatePenaltySchedule,
	} {
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, spec, err)
		}
	}
	return nil
}

// CreditParams returns the scoring constants with config overrides applied.
func (c *Config) CreditParams() creditscore.Params {
	p := creditscore.DefaultParams()
	p.Default = p.Clamp(c.ScoreDefault)
	p.Nudge = c.ScoreNudge
	p.LatePenalty = c.ScoreLatePenalty
	return p
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
