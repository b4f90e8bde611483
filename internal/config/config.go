package config

import "os"

type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	HTTPPort      string
	JWTSecret     string
	PublicBaseURL string
	QRAPIBaseURL  string
	EmailAPIURL   string
	EmailAPIKey   string
	SMSAPIURL     string
	SMSAPIKey     string
}

func Load() *Config {
	return &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DB", "feedbackpro"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		QRAPIBaseURL:  getEnv("QR_API_BASE_URL", "https://api.qrserver.com/v1/create-qr-code/"),
		EmailAPIURL:   getEnv("EMAIL_API_URL", ""),
		EmailAPIKey:   getEnv("EMAIL_API_KEY", ""),
		SMSAPIURL:     getEnv("SMS_API_URL", ""),
		SMSAPIKey:     getEnv("SMS_API_KEY", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
