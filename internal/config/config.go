// internal/config/config.go
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

const DefaultBaseURL = "https://api.scrapecreators.com/v1/reddit/search"

// envFiles are loaded in order; values already present in the environment win.
var envFiles = []string{".env.local", ".env"}

type Config struct {
	APIKey         string
	BaseURL        string
	ProxyURLs      []string
	UserAgent      string
	MaxRetries     int
	RetryBackoff   time.Duration
	RequestTimeout time.Duration
	TLSFingerprint bool
	OutputDir      string
	ServerPort     string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       string
	LogFormat      string
	LogOutput      string
	LogFile        string
}

// LoadConfig reads configuration from .env files and the process environment.
// A missing API key is not an error here; the search client reports it at call time.
func LoadConfig() (*Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading %s file: %w", file, err)
		}
	}

	proxyURLs, err := parseProxyURLs(os.Getenv("HTTP_PROXY_URLS"))
	if err != nil {
		return nil, err
	}

	baseURL := getEnv("SCRAPECREATORS_BASE_URL", DefaultBaseURL)
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid SCRAPECREATORS_BASE_URL %q: %w", baseURL, err)
	}

	maxRetries := getEnvInt("HTTP_MAX_RETRIES", 1)
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &Config{
		APIKey:         strings.TrimSpace(os.Getenv("REDDIT_API_KEY")),
		BaseURL:        baseURL,
		ProxyURLs:      proxyURLs,
		UserAgent:      getEnv("HTTP_USER_AGENT", "reddit-search-mcp/0.1"),
		MaxRetries:     maxRetries,
		RetryBackoff:   getEnvDuration("HTTP_RETRY_BACKOFF", time.Second),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		TLSFingerprint: getEnvBool("TLS_FINGERPRINT", false),
		OutputDir:      getEnv("SEARCH_OUTPUT_DIR", "output"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		ReadTimeout:    getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogOutput:      getEnv("LOG_OUTPUT", "console"),
		LogFile:        getEnv("LOG_FILE", "logs/reddit-search-mcp.log"),
	}, nil
}

func parseProxyURLs(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var proxyURLs []string
	for _, proxy := range strings.Split(raw, ",") {
		proxy = strings.TrimSpace(proxy)
		if proxy == "" {
			continue
		}

		if !strings.HasPrefix(proxy, "http://") &&
			!strings.HasPrefix(proxy, "https://") &&
			!strings.HasPrefix(proxy, "socks5://") {
			return nil, fmt.Errorf("invalid proxy URL format, must start with http://, https:// or socks5://: %s", proxy)
		}

		if _, err := url.Parse(proxy); err != nil {
			return nil, fmt.Errorf("invalid proxy URL %s: %w", proxy, err)
		}

		proxyURLs = append(proxyURLs, proxy)
	}

	return proxyURLs, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
