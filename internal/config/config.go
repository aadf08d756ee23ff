package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port            string
	DatabaseDSN     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	JWTExpiry       time.Duration
	AllowedOrigins  []string
	SensorRetention time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using system environment")
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_DSN environment variable is not set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatal().Str("REDIS_DB", v).Msg("REDIS_DB must be an integer")
		}
		redisDB = n
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET environment variable is not set")
	}

	jwtExpiry := 24 * time.Hour
	if v := os.Getenv("JWT_EXPIRY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatal().Str("JWT_EXPIRY", v).Msg("JWT_EXPIRY must be a duration such as 24h")
		}
		jwtExpiry = d
	}

	sensorRetention := 30 * 24 * time.Hour
	if v := os.Getenv("SENSOR_RETENTION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatal().Str("SENSOR_RETENTION", v).Msg("SENSOR_RETENTION must be a duration such as 720h")
		}
		sensorRetention = d
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		Port:            port,
		DatabaseDSN:     dsn,
		RedisAddr:       redisAddr,
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         redisDB,
		JWTSecret:       jwtSecret,
		JWTExpiry:       jwtExpiry,
		AllowedOrigins:  origins,
		SensorRetention: sensorRetention,
	}
}
