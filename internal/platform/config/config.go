package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"vet-clinic-scheduling/internal/platform/dates"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvProduction Environment = "production"
)

type Config struct {
	App struct {
		Name string      `env:"APP_NAME" envDefault:"vet-clinic-scheduling"`
		Env  Environment `env:"APP_ENV" envDefault:"local"`
		Port string      `env:"PORT" envDefault:"8080"`
	}

	Clinic struct {
		Timezone     string `env:"CLINIC_TIMEZONE" envDefault:"UTC"`
		WorkdayStart string `env:"WORKDAY_START" envDefault:"09:00"`
		WorkdayEnd   string `env:"WORKDAY_END" envDefault:"17:00"`

		Location *time.Location
	}

	Log struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"text"`
	}

	DB struct {
		DSN string `env:"DB_DSN"`
	}

	Redis struct {
		Addr          string        `env:"REDIS_ADDR"`
		Password      string        `env:"REDIS_PASSWORD"`
		SubmitLockTTL time.Duration `env:"SUBMIT_LOCK_TTL" envDefault:"30s"`
	}

	AMQP struct {
		URL   string `env:"AMQP_URL"`
		Queue string `env:"AMQP_QUEUE" envDefault:"appointments.changed"`
	}

	// Si BACKEND_URL viene, las citas se crean en el backend REST de la clínica.
	Backend struct {
		URL     string        `env:"BACKEND_URL"`
		Token   string        `env:"BACKEND_TOKEN"`
		Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
	}

	Auth struct {
		JWTSecret string `env:"JWT_SECRET"`
		JWTIssuer string `env:"JWT_ISSUER"`
	}

	HTTP struct {
		RateLimitRPS int      `env:"RATE_LIMIT_RPS" envDefault:"20"`
		CORSOrigins  []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	}

	Cache struct {
		PatientSize int `env:"PATIENT_CACHE_SIZE" envDefault:"512"`
	}
}

// Load lee .env (si existe) y luego variables de entorno.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse solo lee variables de entorno (sin .env); útil en tests.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	loc, err := time.LoadLocation(strings.TrimSpace(cfg.Clinic.Timezone))
	if err != nil {
		return nil, fmt.Errorf("config: CLINIC_TIMEZONE: %w", err)
	}
	cfg.Clinic.Location = loc

	openH, openM, err := dates.ParseClock(cfg.Clinic.WorkdayStart)
	if err != nil {
		return nil, fmt.Errorf("config: WORKDAY_START: %w", err)
	}
	closeH, closeM, err := dates.ParseClock(cfg.Clinic.WorkdayEnd)
	if err != nil {
		return nil, fmt.Errorf("config: WORKDAY_END: %w", err)
	}
	if closeH*60+closeM <= openH*60+openM {
		return nil, fmt.Errorf("config: WORKDAY_END %q must be after WORKDAY_START %q", cfg.Clinic.WorkdayEnd, cfg.Clinic.WorkdayStart)
	}

	if cfg.HTTP.RateLimitRPS <= 0 {
		cfg.HTTP.RateLimitRPS = 20
	}
	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}
