package config

import (
	"fmt"
	"os"
	"strings"
)

// Config carries everything the service reads from the environment,
// loaded once at startup and threaded explicitly into constructors.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// SiteAdminEmail is the single identity allowed to approve
	// restaurants.
	SiteAdminEmail string

	R2AccessKey     string
	R2SecretKey     string
	R2Bucket        string
	R2Endpoint      string
	R2PublicBaseURL string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:            envOr("PORT", "8000"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		SiteAdminEmail:  os.Getenv("SITE_ADMIN_EMAIL"),
		R2AccessKey:     os.Getenv("R2_ACCESS_KEY"),
		R2SecretKey:     os.Getenv("R2_SECRET_KEY"),
		R2Bucket:        os.Getenv("R2_BUCKET_NAME"),
		R2Endpoint:      os.Getenv("R2_ENDPOINT"),
		R2PublicBaseURL: os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	var missing []string
	for name, value := range map[string]string{
		"DATABASE_URL":     cfg.DatabaseURL,
		"JWT_SECRET":       cfg.JWTSecret,
		"SITE_ADMIN_EMAIL": cfg.SiteAdminEmail,
		"R2_ACCESS_KEY":    cfg.R2AccessKey,
		"R2_SECRET_KEY":    cfg.R2SecretKey,
		"R2_BUCKET_NAME":   cfg.R2Bucket,
		"R2_ENDPOINT":      cfg.R2Endpoint,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing env vars: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
