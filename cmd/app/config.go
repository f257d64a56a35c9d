package main

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`

	DBHost         string        `mapstructure:"POSTGRES_HOST"`
	DBPort         string        `mapstructure:"POSTGRES_PORT"`
	DBUser         string        `mapstructure:"POSTGRES_USER"`
	DBPassword     string        `mapstructure:"POSTGRES_PASSWORD"`
	DBName         string        `mapstructure:"POSTGRES_DB"`
	DBMaxOpenConns int           `mapstructure:"POSTGRES_MAX_OPEN_CONNS"`
	DBMaxIdleConns int           `mapstructure:"POSTGRES_MAX_IDLE_CONNS"`
	DBMaxIdleTime  time.Duration `mapstructure:"POSTGRES_MAX_IDLE_TIME"`
	MigrationsPath string        `mapstructure:"MIGRATIONS_PATH"`

	BasicAuthLogin    string `mapstructure:"BASIC_AUTH_LOGIN"`
	BasicAuthPassword string `mapstructure:"BASIC_AUTH_PASSWORD"`
	BcryptCost        int    `mapstructure:"BCRYPT_COST"`

	CacheTTL time.Duration `mapstructure:"CACHE_TTL"`

	RateLimitEnabled bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RateLimitRPS     float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int     `mapstructure:"RATE_LIMIT_BURST"`

	MQEnabled  bool   `mapstructure:"RABBITMQ_ENABLED"`
	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	MailHost     string `mapstructure:"MAIL_HOST"`
	MailPort     int    `mapstructure:"MAIL_PORT"`
	MailUser     string `mapstructure:"MAIL_USER"`
	MailPassword string `mapstructure:"MAIL_PASSWORD"`
	MailSender   string `mapstructure:"MAIL_SENDER"`

	TLSCertFile string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE"`
}

// every key needs a default, otherwise AutomaticEnv cannot see it during Unmarshal
var configDefaults = map[string]any{
	"PORT":                    "5000",
	"ENVIRONMENT":             "development",
	"VERSION":                 "1.0.0",
	"TRUSTED_ORIGINS":         "",
	"POSTGRES_HOST":           "localhost",
	"POSTGRES_PORT":           "5432",
	"POSTGRES_USER":           "postgres",
	"POSTGRES_PASSWORD":       "",
	"POSTGRES_DB":             "blogplatform",
	"POSTGRES_MAX_OPEN_CONNS": 25,
	"POSTGRES_MAX_IDLE_CONNS": 25,
	"POSTGRES_MAX_IDLE_TIME":  "15m",
	"MIGRATIONS_PATH":         "migrations",
	"BASIC_AUTH_LOGIN":        "admin",
	"BASIC_AUTH_PASSWORD":     "qwerty",
	"BCRYPT_COST":             12,
	"CACHE_TTL":               "5m",
	"RATE_LIMIT_ENABLED":      false,
	"RATE_LIMIT_RPS":          10,
	"RATE_LIMIT_BURST":        20,
	"RABBITMQ_ENABLED":        false,
	"RABBITMQ_HOST":           "localhost",
	"RABBITMQ_PORT":           "5672",
	"RABBITMQ_USER":           "guest",
	"RABBITMQ_PASSWORD":       "guest",
	"MAIL_HOST":               "localhost",
	"MAIL_PORT":               1025,
	"MAIL_USER":               "",
	"MAIL_PASSWORD":           "",
	"MAIL_SENDER":             "Blog Platform <no-reply@blogplatform.local>",
	"TLS_CERT_FILE":           "",
	"TLS_KEY_FILE":            "",
}

// loadConfig reads a dotenv file at path. A missing file is not an error;
// environment variables override anything read from the file.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}

	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.TrustedOrigins = splitOrigins(v.GetString("TRUSTED_ORIGINS"))

	return &config, nil
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		origins = append(origins, strings.Trim(o, `"`))
	}
	return origins
}
