package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Session    SessionConfig
	Redis      RedisConfig
	Email      EmailConfig
	Kafka      KafkaConfig
	Booking    BookingConfig
	Cloudinary CloudinaryConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	CORSOrigins string
}

type StorageConfig struct {
	Driver       string // postgres or memory
	DatabaseURL  string
	AutoMigrate  bool
	SeedFixtures bool
}

type SessionConfig struct {
	Store      string // database, redis or memory
	TTL        time.Duration
	CookieName string
}

type RedisConfig struct {
	URL string
}

type EmailConfig struct {
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

type KafkaConfig struct {
	Broker   string
	Topic    string
	Username string
	Password string
}

type BookingConfig struct {
	RejectOverlap bool
}

type CloudinaryConfig struct {
	URL string
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, "production")
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8000"),
			Env:         getEnv("APP_ENV", "development"),
			CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		},
		Storage: StorageConfig{
			Driver:       strings.ToLower(getEnv("STORAGE_DRIVER", "postgres")),
			DatabaseURL:  getEnv("DATABASE_URL", ""),
			AutoMigrate:  getBool("AUTO_MIGRATE", true),
			SeedFixtures: getBool("SEED_FIXTURES", false),
		},
		Session: SessionConfig{
			Store:      strings.ToLower(getEnv("SESSION_STORE", "database")),
			TTL:        getDuration("SESSION_TTL", 7*24*time.Hour),
			CookieName: getEnv("SESSION_COOKIE_NAME", "sid"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
		Email: EmailConfig{
			SMTPHost: getEnv("SMTP_HOST", ""),
			SMTPPort: getInt("SMTP_PORT", 587),
			SMTPUser: getEnv("SMTP_USER", ""),
			SMTPPass: getEnv("SMTP_PASS", ""),
			SMTPFrom: getEnv("SMTP_FROM", ""),
		},
		Kafka: KafkaConfig{
			Broker:   getEnv("KAFKA_BROKER", ""),
			Topic:    getEnv("KAFKA_TOPIC", "marketplace-events"),
			Username: getEnv("KAFKA_USERNAME", ""),
			Password: getEnv("KAFKA_PASSWORD", ""),
		},
		Booking: BookingConfig{
			RejectOverlap: getBool("BOOKING_REJECT_OVERLAP", false),
		},
		Cloudinary: CloudinaryConfig{
			URL: getEnv("CLOUDINARY_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
