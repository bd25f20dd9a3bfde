package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config regroupe toute la configuration du process. Construit une seule
// fois au démarrage puis passé par référence aux collaborateurs — pas de
// variables globales mutables.
type Config struct {
	Port        string
	BaseURL     string
	FrontendURL string

	JWTSecret     string
	SessionSecret string

	ScyllaHosts      []string
	ScyllaSSL        bool
	ScyllaCAPath     string
	UsersKeyspace    string
	UsersRole        string
	UsersPassword    string
	ProductsKeyspace string
	ProductsRole     string
	ProductsPassword string
	OrdersKeyspace   string
	OrdersRole       string
	OrdersPassword   string

	RedisAddr     string
	RedisPassword string

	ElasticURL      string
	ElasticUser     string
	ElasticPassword string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	AdminEmail   string

	PaymentGateway  string // "simulated" ou "stripe"
	StripeSecretKey string
	MerchantID      string
	CompanyIBAN     string
	CompanyBIC      string
	CompanyName     string

	GoogleClientID       string
	GoogleClientSecret   string
	FacebookClientID     string
	FacebookClientSecret string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		JWTSecret:     getEnv("JWT_SECRET", "super_secret"),
		SessionSecret: os.Getenv("SESSION_SECRET"),

		ScyllaHosts:      strings.Split(getEnv("SCYLLA_HOSTS", "127.0.0.1"), ","),
		ScyllaSSL:        strings.ToLower(os.Getenv("SCYLLA_SSL_ENABLED")) == "true",
		ScyllaCAPath:     os.Getenv("SCYLLA_SSL_CA_PATH"),
		UsersKeyspace:    getEnv("SCYLLA_KS_USERS_KEYSPACE", "velora_users"),
		UsersRole:        os.Getenv("SCYLLA_KS_USERS_ROLE"),
		UsersPassword:    os.Getenv("SCYLLA_KS_USERS_PASSWORD"),
		ProductsKeyspace: getEnv("SCYLLA_KS_PRODUCTS_KEYSPACE", "velora_products"),
		ProductsRole:     os.Getenv("SCYLLA_KS_PRODUCTS_ROLE"),
		ProductsPassword: os.Getenv("SCYLLA_KS_PRODUCTS_PASSWORD"),
		OrdersKeyspace:   getEnv("SCYLLA_KS_ORDERS_KEYSPACE", "velora_orders"),
		OrdersRole:       os.Getenv("SCYLLA_KS_ORDERS_ROLE"),
		OrdersPassword:   os.Getenv("SCYLLA_KS_ORDERS_PASSWORD"),

		RedisAddr:     getEnv("REDIS_HOST", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		ElasticURL:      getEnv("ELASTIC_URL", "http://127.0.0.1:9200"),
		ElasticUser:     os.Getenv("ELASTIC_USER"),
		ElasticPassword: os.Getenv("ELASTIC_PASSWORD"),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "velora-products"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",

		SMTPHost:     getEnv("SMTP_HOST", "ssl0.ovh.net"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getEnv("MAIL_FROM", "noreply@velora.shop"),
		AdminEmail:   os.Getenv("ADMIN_EMAIL"),

		PaymentGateway:  getEnv("PAYMENT_GATEWAY", "simulated"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		MerchantID:      getEnv("MERCHANT_ID", "MID123456789"),
		CompanyIBAN:     getEnv("COMPANY_IBAN", "BE12345678901234"),
		CompanyBIC:      getEnv("COMPANY_BIC", "KREDBEBB"),
		CompanyName:     getEnv("COMPANY_NAME", "Velora SRL"),

		GoogleClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   os.Getenv("GOOGLE_CLIENT_SECRET"),
		FacebookClientID:     os.Getenv("FACEBOOK_CLIENT_ID"),
		FacebookClientSecret: os.Getenv("FACEBOOK_CLIENT_SECRET"),
	}

	return cfg
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
		log.Printf("⚠️ %s invalide (%q), valeur par défaut %d", key, v, fallback)
	}
	return fallback
}
