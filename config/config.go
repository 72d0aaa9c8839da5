package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	JwtSecret  string
	Issuer     string
	ServerPort string

	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	// Transactional email API (welcome mails for admin-created accounts).
	EmailAPIURL  string
	EmailAPIKey  string
	EmailFrom    string
	EmailEnabled bool

	// Shared secret the billing provider sends in the webhook header.
	BillingWebhookSecret string

	// Directory of YAML files seeding the system template catalog.
	// Empty disables seeding.
	CatalogDir string

	// Upper bound for a single submission attachment, in bytes.
	MaxAttachmentSize int64

	DraftRetentionDays int
	AuditRetentionDays int
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("JWT_ISSUER", "ehs-platform")
	ServerPort = getEnv("SERVER_PORT", "8080")

	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "ehs")

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "ehs-attachments")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	EmailAPIURL = getEnv("EMAIL_API_URL", "https://api.resend.com/emails")
	EmailAPIKey = getEnv("EMAIL_API_KEY", "")
	EmailFrom = getEnv("EMAIL_FROM", "noreply@safetrack.example")
	EmailEnabled, _ = strconv.ParseBool(getEnv("EMAIL_ENABLED", "false"))

	BillingWebhookSecret = getEnv("BILLING_WEBHOOK_SECRET", "")

	CatalogDir = getEnv("CATALOG_DIR", "")

	MaxAttachmentSize = getEnvInt64("MAX_ATTACHMENT_SIZE", 10<<20)
	DraftRetentionDays = getEnvInt("DRAFT_RETENTION_DAYS", 90)
	AuditRetentionDays = getEnvInt("AUDIT_RETENTION_DAYS", 30)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
