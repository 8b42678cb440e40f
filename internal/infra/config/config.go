// internal/infra/config/config.go
package config

import "os"

// Config holds the process-wide environment configuration.
type Config struct {
	Port string

	FirestoreProjectID       string
	FirestoreCredentialsFile string

	// Firebase Auth project (defaults to the GCP project)
	FirebaseProjectID string

	// Public origin of the storefront web app, for CORS.
	StorefrontOrigin string

	// Sitemap publishing target.
	GCSBucket string

	// Transactional mail. The key can come straight from the env or, when
	// SENDGRID_SECRET_NAME is set, from Secret Manager at boot.
	SendGridAPIKey     string
	SendGridSecretName string
	SendGridFromEmail  string

	// Optional Postgres archive for order reporting. Left empty, the
	// archive sink is disabled.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

// Load reads the environment and returns a Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "leafline-storefront")

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		StorefrontOrigin: getenvDefault("STOREFRONT_ORIGIN", "*"),
		GCSBucket:        os.Getenv("GCS_BUCKET"),

		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridSecretName: os.Getenv("SENDGRID_SECRET_NAME"),
		SendGridFromEmail:  getenvDefault("SENDGRID_FROM_EMAIL", "orders@leafline.example"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getenvDefault("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}
}

// ArchiveEnabled reports whether the Postgres order archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.DBHost != "" && c.DBUser != "" && c.DBName != ""
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
