package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL string
	LogLevel    string
	Debug       bool
	ServiceName string
	Environment string
	ServerPort  string
	JwtSecret   string
	SessionTTL  time.Duration
	MediaDir    string
}

func LoadConfig() (*Config, error) {
	databaseUrl := os.Getenv("DATABASE_URL")
	if databaseUrl == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	debug := os.Getenv("DEBUG")
	if debug == "" {
		debug = "false"
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "quill"
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	sessionTTL := 24 * time.Hour
	if ttl := os.Getenv("SESSION_TTL_HOURS"); ttl != "" {
		if parsed, err := strconv.Atoi(ttl); err == nil && parsed > 0 {
			sessionTTL = time.Duration(parsed) * time.Hour
		}
	}

	mediaDir := os.Getenv("MEDIA_DIR")
	if mediaDir == "" {
		mediaDir = "./media"
	}

	return &Config{
		DatabaseURL: databaseUrl,
		LogLevel:    logLevel,
		Debug:       debug == "true",
		ServiceName: serviceName,
		Environment: environment,
		ServerPort:  serverPort,
		JwtSecret:   jwtSecret,
		SessionTTL:  sessionTTL,
		MediaDir:    mediaDir,
	}, nil
}
