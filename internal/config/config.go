package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI        string
	MongoDatabase   string
	RedisURL        string
	JWTSecret       string
	ServerPort      string
	SMTPHost        string
	SMTPPort        string
	SMTPUser        string
	SMTPPassword    string
	FromEmail       string
	FrontendURL     string
	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioBucket     string
	FCMCredentials  string
	AllowedOrigins  string
}

func LoadConfig() (*Config, error) {
	// .env опционален: в контейнере всё приходит из окружения
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "culturalstay"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		ServerPort:     getEnv("SERVER_PORT", ":8000"),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPassword:   os.Getenv("SMTP_PASS"),
		FromEmail:      getEnv("FROM_EMAIL", "noreply@culturalstay.com"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "host-photos"),
		FCMCredentials: os.Getenv("FCM_CREDENTIALS_FILE"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
