package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppPort string `yaml:"app_port"`

	MySQLHost string `yaml:"mysql_host"`
	MySQLPort string `yaml:"mysql_port"`
	MySQLDB   string `yaml:"mysql_db"`
	MySQLUser string `yaml:"mysql_user"`
	MySQLPass string `yaml:"mysql_pass"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	IdempTTLSecs int `yaml:"idempotency_ttl_seconds"`

	Log         LogConfig       `yaml:"log"`
	AutoMigrate bool            `yaml:"auto_migrate"`
	Refinance   RefinanceConfig `yaml:"refinance"`
	Lock        LockConfig      `yaml:"lock"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Env     string `yaml:"env"` // production | development
	DBLevel string `yaml:"db_level"`
	Service string `yaml:"service"`
}

type RefinanceConfig struct {
	LoanPrefix         string         `yaml:"loan_prefix"`
	StandardLoanPrefix string         `yaml:"standard_loan_prefix"`
	QuotaScale         int32          `yaml:"quota_scale"`
	Currency           string         `yaml:"currency"`
	StrictLoanMatch    bool           `yaml:"strict_loan_match"`
	RestoreLoans       []RestoreLoan  `yaml:"restore_loans"`
	DefaultOffers      []DefaultOffer `yaml:"default_offers"`
}

// RestoreLoan is one row of the reset table: the state a closed loan returns to.
type RestoreLoan struct {
	LoanNumber      string `yaml:"loan_number"`
	RemainingAmount string `yaml:"remaining_amount"`
	PaidQuotas      int    `yaml:"paid_quotas"`
}

type DefaultOffer struct {
	MaxAmount   string `yaml:"max_amount"`
	MaxQuotas   int    `yaml:"max_quotas"`
	MonthlyRate string `yaml:"monthly_rate"`
	MinDTI      string `yaml:"min_dti"`
}

type LockConfig struct {
	Backend    string        `yaml:"backend"` // redis | local
	TTL        time.Duration `yaml:"ttl"`
	Tries      int           `yaml:"tries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

const (
	LockBackendRedis = "redis"
	LockBackendLocal = "local"
)

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Defaults() *Config {
	return &Config{
		AppPort:   "8080",
		MySQLHost: "mysql",
		MySQLPort: "3306",
		MySQLDB:   "refinance",
		MySQLUser: "refinance",
		MySQLPass: "refinance",

		RedisAddr:    "redis:6379",
		IdempTTLSecs: 300,

		Log: LogConfig{Level: "info", Env: "production", DBLevel: "warn", Service: "loan-refinance"},
		Refinance: RefinanceConfig{
			LoanPrefix:         "REF-",
			StandardLoanPrefix: "LOAN-",
			QuotaScale:         2,
			Currency:           "ARS",
			RestoreLoans: []RestoreLoan{
				{LoanNumber: "LOAN-001", RemainingAmount: "500000.00", PaidQuotas: 0},
				{LoanNumber: "LOAN-002", RemainingAmount: "120000.00", PaidQuotas: 6},
				{LoanNumber: "LOAN-003", RemainingAmount: "160000.00", PaidQuotas: 6},
				{LoanNumber: "LOAN-004", RemainingAmount: "140000.00", PaidQuotas: 3},
				{LoanNumber: "LOAN-005", RemainingAmount: "175000.00", PaidQuotas: 3},
			},
			DefaultOffers: []DefaultOffer{
				{MaxAmount: "1500000.00", MaxQuotas: 60, MonthlyRate: "75.0", MinDTI: "0.30"},
				{MaxAmount: "2000000.00", MaxQuotas: 36, MonthlyRate: "80.5", MinDTI: "0.35"},
				{MaxAmount: "1200000.00", MaxQuotas: 24, MonthlyRate: "65.5", MinDTI: "0.25"},
				{MaxAmount: "2500000.00", MaxQuotas: 48, MonthlyRate: "89.9", MinDTI: "0.40"},
			},
		},
		Lock: LockConfig{
			Backend:    LockBackendRedis,
			TTL:        10 * time.Second,
			Tries:      3,
			RetryDelay: 200 * time.Millisecond,
		},
	}
}

// Load builds the config from defaults, then the YAML file named by CONFIG_FILE (if any), then env vars.
func Load() (*Config, error) {
	c := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := c.loadFile(path); err != nil {
			return nil, err
		}
	}
	c.applyEnv()
	return c, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.AppPort = getenv("APP_PORT", c.AppPort)
	c.MySQLHost = getenv("MYSQL_HOST", c.MySQLHost)
	c.MySQLPort = getenv("MYSQL_PORT", c.MySQLPort)
	c.MySQLDB = getenv("MYSQL_DB", c.MySQLDB)
	c.MySQLUser = getenv("MYSQL_USER", c.MySQLUser)
	c.MySQLPass = getenv("MYSQL_PASS", c.MySQLPass)
	c.RedisAddr = getenv("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getenv("REDIS_PASSWORD", c.RedisPassword)

	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}

	c.Log.Level = getenv("LOG_LEVEL", c.Log.Level)
	c.Log.Env = getenv("LOG_ENV", c.Log.Env)
	c.Log.DBLevel = getenv("DB_LOG_LEVEL", c.Log.DBLevel)
	if v := os.Getenv("AUTO_MIGRATE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AutoMigrate = b
		}
	}

	c.Refinance.LoanPrefix = getenv("REFINANCE_LOAN_PREFIX", c.Refinance.LoanPrefix)
	c.Refinance.Currency = getenv("REFINANCE_CURRENCY", c.Refinance.Currency)
	if v := os.Getenv("REFINANCE_STRICT_LOAN_MATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Refinance.StrictLoanMatch = b
		}
	}

	c.Lock.Backend = strings.ToLower(getenv("LOCK_BACKEND", c.Lock.Backend))
	if v := os.Getenv("LOCK_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Lock.TTL = d
		}
	}
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
	if c.Refinance.LoanPrefix == "" || c.Refinance.StandardLoanPrefix == "" {
		return errors.New("missing refinance loan prefixes")
	}
	if c.Refinance.QuotaScale < 0 {
		return fmt.Errorf("invalid quota scale %d", c.Refinance.QuotaScale)
	}
	if len(c.Refinance.Currency) != 3 {
		return fmt.Errorf("invalid currency %q (want ISO 4217 code)", c.Refinance.Currency)
	}
	switch c.Lock.Backend {
	case LockBackendRedis, LockBackendLocal:
	default:
		return fmt.Errorf("invalid LOCK_BACKEND %q", c.Lock.Backend)
	}
	if c.Lock.TTL <= 0 || c.Lock.Tries < 1 {
		return errors.New("lock ttl and tries must be positive")
	}
	for _, r := range c.Refinance.RestoreLoans {
		if _, err := decimal.NewFromString(r.RemainingAmount); err != nil {
			return fmt.Errorf("restore loan %s: bad remaining_amount: %w", r.LoanNumber, err)
		}
	}
	for i, o := range c.Refinance.DefaultOffers {
		for _, s := range []string{o.MaxAmount, o.MonthlyRate, o.MinDTI} {
			if _, err := decimal.NewFromString(s); err != nil {
				return fmt.Errorf("default offer %d: %w", i, err)
			}
		}
		if o.MaxQuotas <= 0 {
			return fmt.Errorf("default offer %d: max_quotas must be positive", i)
		}
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
