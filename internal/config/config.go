package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DbHost    string
	DbPort    string
	DbUser    string
	DbPass    string
	DbName    string
	DbSSLMode string

	MigrateOnStart bool

	JWTSecret      string
	AccessTokenTTL string

	Log      string
	LogLevel string
	LogDir   string
	Env      string // dev|prod

	MailDriver   string // smtp|ses
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	MailFromName string
	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string

	FrontendURL string
	// Origins для CORS; по умолчанию только FRONTEND_URL.
	CORSOrigins []string
	// Адреса/подсети прокси, которым можно верить в X-Forwarded-For.
	TrustedProxies []string

	PasswordResetSecret    string
	PasswordResetTTLMin    string
	PasswordResetSingleUse bool
	ResetRateLimitPerHour  int
	// Задержка ответа для неизвестного пользователя, мс.
	ResetDecoyDelayMinMs int
	ResetDecoyDelayMaxMs int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RabbitMQURL string
	NotifyQueue string

	UploadsDir  string
	MaxUploadMB int

	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует — чтобы не создавать зависимость от logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	cfg := &Config{
		Port:      def(os.Getenv("PORT"), "8080"),
		DbHost:    os.Getenv("DB_HOST"),
		DbPort:    def(os.Getenv("DB_PORT"), "5432"),
		DbUser:    os.Getenv("DB_USER"),
		DbPass:    os.Getenv("DB_PASSWORD"),
		DbName:    def(os.Getenv("DB_NAME"), "dbaccounting"),
		DbSSLMode: def(os.Getenv("DB_SSLMODE"), "disable"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: def(os.Getenv("ACCESS_TOKEN_EXPIRY"), "12h"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		LogDir:   def(os.Getenv("LOG_DIR"), "logs"),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		MailDriver:   strings.ToLower(def(os.Getenv("MAIL_DRIVER"), "smtp")),
		SMTPHost:     def(os.Getenv("SMTP_HOST"), "smtp.gmail.com"),
		SMTPPort:     def(os.Getenv("SMTP_PORT"), "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailFromName: def(os.Getenv("MAIL_FROM_NAME"), "Accounting System"),
		AWSRegion:    def(os.Getenv("AWS_REGION"), "us-east-1"),
		AWSAccessKey: os.Getenv("SES_ACCESS_KEY_ID"),
		AWSSecretKey: os.Getenv("SES_SECRET_ACCESS_KEY"),

		FrontendURL:    strings.TrimRight(def(os.Getenv("FRONTEND_URL"), "http://localhost:3000"), "/"),
		TrustedProxies: splitList(os.Getenv("TRUSTED_PROXIES")),

		PasswordResetSecret: os.Getenv("PASSWORD_RESET_SECRET"),
		PasswordResetTTLMin: def(os.Getenv("PASSWORD_RESET_TTL_MIN"), "10"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		NotifyQueue: def(os.Getenv("NOTIFY_QUEUE"), "accounting.notifications"),

		UploadsDir: def(os.Getenv("UPLOADS_DIR"), "uploads"),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
	}

	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUser
	}
	if cfg.CORSOrigins = splitList(os.Getenv("CORS_ORIGINS")); len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{originOf(cfg.FrontendURL)}
	}

	var err error
	if cfg.MigrateOnStart, err = parseBool("MIGRATE_ON_START", true); err != nil {
		return nil, err
	}
	if cfg.PasswordResetSingleUse, err = parseBool("PASSWORD_RESET_SINGLE_USE", false); err != nil {
		return nil, err
	}
	if cfg.ResetRateLimitPerHour, err = parseInt("RESET_RATE_LIMIT_PER_HOUR", 5); err != nil {
		return nil, err
	}
	if cfg.ResetDecoyDelayMinMs, err = parseInt("RESET_DECOY_DELAY_MIN_MS", 200); err != nil {
		return nil, err
	}
	if cfg.ResetDecoyDelayMaxMs, err = parseInt("RESET_DECOY_DELAY_MAX_MS", 800); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = parseInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.MaxUploadMB, err = parseInt("MAX_UPLOAD_MB", 20); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseBool(key string, d bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return d, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func parseInt(key string, d int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return d, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
// originOf оставляет от адреса только схему и хост.
func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host
}

func (c *Config) Validate() (warnings []string, err error) {
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}

	if strings.TrimSpace(c.PasswordResetSecret) == "" {
		if c.Env == "prod" {
			return nil, fmt.Errorf("PASSWORD_RESET_SECRET is required in prod")
		}
		warnings = append(warnings, "PASSWORD_RESET_SECRET is empty")
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		warnings = append(warnings, "JWT_SECRET is empty")
	}

	switch c.MailDriver {
	case "smtp":
		if c.SMTPHost == "" || c.SMTPUser == "" {
			warnings = append(warnings, "SMTP is not fully configured")
		}
	case "ses":
		if c.MailFrom == "" {
			warnings = append(warnings, "MAIL_FROM must be a verified SES identity")
		}
	default:
		return nil, fmt.Errorf("unknown MAIL_DRIVER %q (smtp|ses)", c.MailDriver)
	}

	if c.RedisAddr == "" {
		warnings = append(warnings, "REDIS_ADDR is empty, reset rate limiting disabled")
		if c.PasswordResetSingleUse {
			return warnings, fmt.Errorf("PASSWORD_RESET_SINGLE_USE requires REDIS_ADDR")
		}
	}

	return warnings, nil
}

// ResetTTL — срок жизни токена сброса пароля.
func (c *Config) ResetTTL() time.Duration {
	n, err := strconv.Atoi(c.PasswordResetTTLMin)
	if err != nil || n <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(n) * time.Minute
}

// AccessTTL парсит ACCESS_TOKEN_EXPIRY.
// ResetDecoyDelay — диапазон задержки для неизвестного пользователя.
func (c *Config) ResetDecoyDelay() (time.Duration, time.Duration) {
	return time.Duration(c.ResetDecoyDelayMinMs) * time.Millisecond,
		time.Duration(c.ResetDecoyDelayMaxMs) * time.Millisecond
}

func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil || d <= 0 {
		return 12 * time.Hour
	}
	return d
}

// ResetLinkBase — страница фронтенда, куда ведёт ссылка из письма.
func (c *Config) ResetLinkBase() string {
	return c.FrontendURL + "/accounting/#/reset-password"
}

func (c *Config) LoginURL() string {
	return c.FrontendURL + "/#/"
}

// GetDSN — полная DSN (с паролем)
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe — DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}
