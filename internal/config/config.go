package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// PageLimits holds the fixed page size of each list view.
type PageLimits struct {
	Tasks     int
	Projects  int
	Employees int
	Report    int
	Roles     int
}

// Config is the runtime configuration of the console service.
type Config struct {
	Port        string
	DBPath      string
	LogFilePath string
	LogLevel    string

	// Remote collaborator
	BackendBaseURL string
	BackendOrigin  string
	BackendTimeout time.Duration

	SessionTTL time.Duration
	ScreenTTL  time.Duration

	PageLimits PageLimits

	RoutesFile         string
	LoginRatePerMinute int
	LoginBurst         int
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	baseURL := strings.TrimRight(getEnvString("BACKEND_BASE_URL", "http://127.0.0.1:8000"), "/")
	cfg := &Config{
		Port:           getEnvString("PORT", "8008"),
		DBPath:         getEnvString("DB_PATH", "worknest-console.db"),
		LogFilePath:    getEnvString("LOG_FILE_PATH", ""),
		LogLevel:       getEnvString("LOG_LEVEL", "info"),
		BackendBaseURL: baseURL,
		BackendOrigin:  strings.TrimRight(getEnvString("BACKEND_ORIGIN", baseURL), "/"),
		BackendTimeout: getEnvDuration("BACKEND_TIMEOUT", 0),
		SessionTTL:     getEnvDuration("SESSION_TTL", 24*time.Hour),
		ScreenTTL:      getEnvDuration("SCREEN_TTL", 30*time.Minute),
		PageLimits: PageLimits{
			Tasks:     getEnvInt("PAGE_LIMIT_TASKS", 5),
			Projects:  getEnvInt("PAGE_LIMIT_PROJECTS", 5),
			Employees: getEnvInt("PAGE_LIMIT_EMPLOYEES", 5),
			Report:    getEnvInt("PAGE_LIMIT_REPORT", 10),
			Roles:     getEnvInt("PAGE_LIMIT_ROLES", 10),
		},
		RoutesFile:         getEnvString("ROUTES_FILE", ""),
		LoginRatePerMinute: getEnvInt("LOGIN_RATE_PER_MINUTE", 30),
		LoginBurst:         getEnvInt("LOGIN_BURST", 10),
	}
	return cfg, nil
}

// Default returns the configuration used when no environment is set. Tests use it.
func Default() *Config {
	return &Config{
		Port:               "8008",
		DBPath:             ":memory:",
		LogLevel:           "info",
		BackendBaseURL:     "http://127.0.0.1:8000",
		BackendOrigin:      "http://127.0.0.1:8000",
		SessionTTL:         24 * time.Hour,
		ScreenTTL:          30 * time.Minute,
		PageLimits:         PageLimits{Tasks: 5, Projects: 5, Employees: 5, Report: 10, Roles: 10},
		LoginRatePerMinute: 30,
		LoginBurst:         10,
	}
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
