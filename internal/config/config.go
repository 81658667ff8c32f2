package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTableName string // single table, partitioned by realm (pk) + key (sk)

	CognitoUserPoolID string
	CognitoClientID   string

	S3BucketName string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion string

	WhatsAppAPIURL       string
	WhatsAppAPIKey       string
	WhatsAppTemplateName string
	WhatsAppPhonePrefix  string // prepended when the number has no country code

	PhoneChannel string // "whatsapp" | "sns"

	OTPTTL     time.Duration
	BcryptCost int

	AllowedOrigins []string // CORS allowed origins
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTableName: getEnv("DYNAMO_TABLE_NAME", "onboarding"),

		CognitoUserPoolID: getEnv("COGNITO_USER_POOL_ID", ""),
		CognitoClientID:   getEnv("COGNITO_CLIENT_ID", ""),

		S3BucketName: getEnv("S3_BUCKET_NAME", "onboarding-profile-photos"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 12)) * time.Hour,

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion: getEnv("SNS_REGION", "us-east-1"),

		WhatsAppAPIURL:       getEnv("WHATSAPP_API_URL", "https://api.interakt.ai/v1/messages/send"),
		WhatsAppAPIKey:       getEnv("WHATSAPP_API_KEY", ""),
		WhatsAppTemplateName: getEnv("WHATSAPP_TEMPLATE_NAME", "otp_template"),
		WhatsAppPhonePrefix:  getEnv("WHATSAPP_PHONE_PREFIX", "+91"),

		PhoneChannel: getEnv("PHONE_CHANNEL", "whatsapp"),

		OTPTTL:     time.Duration(getEnvInt("OTP_TTL_SECONDS", 1500)) * time.Second,
		BcryptCost: getEnvInt("BCRYPT_COST", 10),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
