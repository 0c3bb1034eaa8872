package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// DB is the shared database handle used across controllers and utils.
var DB *gorm.DB

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	StripeWebhookSecret string
	EsewaMerchantCode   string
	EsewaVerifyURL      string
	KhaltiSecretKey     string
	KhaltiAPIBase       string
	KhaltiReturnURL     string
	KhaltiWebsiteURL    string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
}

// LoadConfig loads configuration from environment variables. A missing .env
// file is not fatal so the binary can run from exported environment alone.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),

		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		EsewaMerchantCode:   os.Getenv("ESEWA_MERCHANT_CODE"),
		EsewaVerifyURL:      os.Getenv("ESEWA_VERIFY_URL"),
		KhaltiSecretKey:     os.Getenv("KHALTI_SECRET_KEY"),
		KhaltiAPIBase:       os.Getenv("KHALTI_API_BASE"),
		KhaltiReturnURL:     os.Getenv("KHALTI_RETURN_URL"),
		KhaltiWebsiteURL:    os.Getenv("KHALTI_WEBSITE_URL"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
	}

	return config, nil
}
