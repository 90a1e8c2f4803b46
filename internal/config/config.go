package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Site
	SiteTitle   string
	SiteTagline string
	SiteURL     string
	SiteAuthor  string

	// Application
	AppEnv string
	Port   string

	// Content layout
	ContentPath string
	LayoutsPath string
	StaticPath  string
	OutputPath  string

	// Build manifest database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Preview server
	WatchDebounce time.Duration

	// Newsletter
	EmailFrom        string
	ResendAPIKey     string
	ResendAudienceID string
	AnnounceTo       []string

	// Observability (optional)
	SentryDSN string

	// Deploy target (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional: for S3-compatible services
	S3Prefix    string // Optional: key prefix inside the bucket
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Site
		SiteTitle:   envString("SITE_TITLE", "Inkwell"),
		SiteTagline: envString("SITE_TAGLINE", ""),
		SiteURL:     envString("SITE_URL", "http://localhost:8080"),
		SiteAuthor:  envString("SITE_AUTHOR", ""),

		// Application
		AppEnv: envString("APP_ENV", "development"),
		Port:   envString("PORT", "8080"),

		// Content layout
		ContentPath: envString("CONTENT_PATH", "content"),
		LayoutsPath: envString("LAYOUTS_PATH", "layouts"),
		StaticPath:  envString("STATIC_PATH", "static"),
		OutputPath:  envString("OUTPUT_PATH", "public"),

		// Build manifest database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./.inkwell/manifest.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Preview server
		WatchDebounce: envDuration("WATCH_DEBOUNCE", 500*time.Millisecond),

		// Newsletter (RESEND_API_KEY optional in development, required for announce in production)
		EmailFrom:        envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey:     envString("RESEND_API_KEY", ""),
		ResendAudienceID: envString("RESEND_AUDIENCE_ID", ""),
		AnnounceTo:       envList("ANNOUNCE_TO"),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Deploy target
		S3Region:    envString("S3_REGION", ""),
		S3Bucket:    envString("S3_BUCKET", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""),
		S3Prefix:    envString("S3_PREFIX", ""),
	}

	// Production: validate required settings
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv != "production"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// validateProduction ensures settings a production publish relies on are
// configured. Development allows fallback modes (announce logs instead of
// sending) for easier local testing.
func validateProduction(cfg *Config) {
	if cfg.SiteURL == "" || strings.HasPrefix(cfg.SiteURL, "http://localhost") {
		slog.Error("production publishing requires SITE_URL",
			"hint", "set APP_ENV=development for local preview builds")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}
