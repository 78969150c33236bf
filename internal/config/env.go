package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr string
	GinMode string

	// Commerce backend (external collaborator reached over REST).
	BackendBaseURL string
	BackendToken   string
	BackendTimeout time.Duration

	// Console sessions.
	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string
	SessionTTL        time.Duration

	// Saved-filter persistence: MySQL when a DSN is set, JSON file otherwise.
	FilterStoreDSN  string
	FilterStorePath string

	// Zero disables the background reload loop.
	AutoRefreshInterval time.Duration

	CORSAllowedOrigins []string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	backendURL := strings.TrimSpace(os.Getenv("BACKEND_BASE_URL"))
	if backendURL == "" {
		backendURL = "http://localhost:3333/api"
	}

	filterPath := strings.TrimSpace(os.Getenv("FILTER_STORE_PATH"))
	if filterPath == "" {
		filterPath = "saved_filters.json"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	adminUser := strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))
	if adminUser == "" {
		adminUser = "admin"
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:3000", "http://127.0.0.1:3000",
			"http://localhost:5173", "http://127.0.0.1:5173",
		}
	}

	return Env{
		AppAddr:             appAddr,
		GinMode:             strings.TrimSpace(os.Getenv("GIN_MODE")),
		BackendBaseURL:      backendURL,
		BackendToken:        strings.TrimSpace(os.Getenv("BACKEND_TOKEN")),
		BackendTimeout:      durationEnv("BACKEND_TIMEOUT_SECONDS", 15*time.Second),
		JWTSecret:           secret,
		AdminUsername:       adminUser,
		AdminPasswordHash:   strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
		SessionTTL:          durationEnv("SESSION_TTL_SECONDS", 24*time.Hour),
		FilterStoreDSN:      strings.TrimSpace(os.Getenv("FILTER_STORE_DSN")),
		FilterStorePath:     filterPath,
		AutoRefreshInterval: durationEnv("AUTO_REFRESH_SECONDS", 0),
		CORSAllowedOrigins:  origins,
	}
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
