package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config é carregado uma vez no start do processo. Credenciais e destinatário
// nunca ficam no código.
type Config struct {
	HTTPAddr   string
	RecordsDir string

	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
	}

	Mail struct {
		From      string
		To        string
		BodyStyle string // "plain" ou "styled"
	}

	Session struct {
		Secret string
		Secure bool
	}

	CORSAllowedOrigins []string

	Brand struct {
		Name        string
		ContactLine string
	}

	Log struct {
		Level  string
		Format string
	}
}

const DevSessionSecret = "dev-session-secret-change-me"

// Load lê o .env (se existir) e depois as variáveis de ambiente.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{}
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.RecordsDir = getEnv("RECORDS_DIR", "submissions")

	cfg.SMTP.Host = getEnv("SMTP_HOST", "smtp.gmail.com")
	port, err := strconv.Atoi(getEnv("SMTP_PORT", "465"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid SMTP_PORT %q", os.Getenv("SMTP_PORT"))
	}
	cfg.SMTP.Port = port
	cfg.SMTP.Username = getEnv("SMTP_USERNAME", "")
	cfg.SMTP.Password = getEnv("SMTP_PASSWORD", "")

	cfg.Mail.From = getEnv("MAIL_FROM", "noreply@alhayadevelopments.com")
	cfg.Mail.To = getEnv("MAIL_TO", "")
	cfg.Mail.BodyStyle = strings.ToLower(getEnv("MAIL_BODY_STYLE", "plain"))
	if cfg.Mail.BodyStyle != "plain" && cfg.Mail.BodyStyle != "styled" {
		return nil, fmt.Errorf("invalid MAIL_BODY_STYLE %q (want plain or styled)", cfg.Mail.BodyStyle)
	}

	cfg.Session.Secret = getEnv("SESSION_SECRET", DevSessionSecret)
	cfg.Session.Secure = getEnv("SESSION_SECURE", "false") == "true"

	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", ""))

	cfg.Brand.Name = getEnv("BRAND_NAME", "Al Hayah Developments")
	cfg.Brand.ContactLine = getEnv("CONTACT_LINE", "For inquiries, please contact us @ Mobile Number - 01288359654")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
