package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPPort      int
	PublicBaseURL string

	ConverterAPIURL      string
	CoinsAPIURL          string
	ConverterTimeoutSecs int
	UpstreamRatePerSec   int
	SearchLimit          int

	RedisURL         string
	RateLimitEnabled bool
	RateLimit        string
	APIKey           string

	TelegramBotToken string

	SSHPort           int
	SSHHostKeyPath    string
	SSHAuthorizedKeys string

	MCPTransport          string
	MCPHTTPBind           string
	MCPHTTPPort           int
	MCPAuthToken          string
	MCPRequestTimeoutSecs int
	MCPRateLimitPerMin    int
}

func Load() *Config {
	cfg := &Config{
		ConverterAPIURL:   strings.TrimSpace(os.Getenv("CONVERTER_API_URL")),
		CoinsAPIURL:       strings.TrimSpace(os.Getenv("COINS_API_URL")),
		RedisURL:          os.Getenv("REDIS_URL"),
		APIKey:            strings.TrimSpace(os.Getenv("API_KEY")),
		TelegramBotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		SSHAuthorizedKeys: strings.TrimSpace(os.Getenv("SSH_AUTHORIZED_KEYS")),
		MCPAuthToken:      os.Getenv("MCP_AUTH_TOKEN"),
	}

	cfg.HTTPPort = positiveInt("HTTP_PORT", 8080)

	cfg.PublicBaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL")), "/")
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:" + strconv.Itoa(cfg.HTTPPort)
		log.Printf("Warning: PUBLIC_BASE_URL not set, defaulting to %s", cfg.PublicBaseURL)
	}

	cfg.ConverterTimeoutSecs = positiveInt("CONVERTER_TIMEOUT_SECS", 15)
	cfg.UpstreamRatePerSec = positiveInt("UPSTREAM_RATE_PER_SEC", 10)

	// 0 means no cap
	cfg.SearchLimit = 20
	if v := strings.TrimSpace(os.Getenv("SEARCH_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.SearchLimit = n
		}
	}

	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	cfg.RateLimitEnabled = !strings.EqualFold(strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED")), "false")
	cfg.RateLimit = strings.TrimSpace(os.Getenv("RATE_LIMIT"))
	if cfg.RateLimit == "" {
		cfg.RateLimit = "120-M"
	}

	if cfg.APIKey == "" {
		log.Println("Warning: API_KEY not set, /api is open")
	}
	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set")
	}

	cfg.SSHPort = positiveInt("SSH_PORT", 2222)
	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/id_ed25519"
	}

	cfg.MCPTransport = strings.ToLower(strings.TrimSpace(os.Getenv("MCP_TRANSPORT")))
	if cfg.MCPTransport == "" {
		cfg.MCPTransport = "stdio"
	}
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		log.Printf("Warning: unsupported MCP_TRANSPORT=%q, defaulting to stdio", cfg.MCPTransport)
		cfg.MCPTransport = "stdio"
	}

	cfg.MCPHTTPBind = strings.TrimSpace(os.Getenv("MCP_HTTP_BIND"))
	if cfg.MCPHTTPBind == "" {
		cfg.MCPHTTPBind = "127.0.0.1"
	}

	cfg.MCPHTTPPort = positiveInt("MCP_HTTP_PORT", 8090)
	cfg.MCPRequestTimeoutSecs = positiveInt("MCP_REQUEST_TIMEOUT_SECS", 15)
	cfg.MCPRateLimitPerMin = positiveInt("MCP_RATE_LIMIT_PER_MIN", 60)

	return cfg
}

func positiveInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, defaulting to %d", key, v, def)
		return def
	}
	return n
}
