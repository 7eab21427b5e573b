package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in the
// application: strings for identifiers and secrets, ints for ports.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	DBUser          string // database username
	DBPass          string // database password (optional)
	DBHost          string // database host address
	DBPort          string // database port number
	DBName          string // database name
	JWTSecret       string // shared secret used to verify identity-provider tokens
	StripeSecretKey string // secret API key for the Stripe payment provider
	FrontendURL     string // fallback origin for checkout redirect URLs
	Currency        string // ISO currency code used for checkout sessions
	SenderEmail     string // From address for booking confirmation mail
	SMTPHost        string // SMTP server host (empty disables outbound mail)
	SMTPPort        int    // SMTP server port
	SMTPUser        string // SMTP username
	SMTPPass        string // SMTP password
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Mail settings are
// optional: when SMTP_HOST is unset, confirmation mail is disabled and the
// booking consumer only logs events.
func Load() Config {
	cfg := Config{
		Env:             must("APP_ENV"),           // environment (dev/test/prod)
		Port:            must("APP_PORT"),          // port to bind the HTTP server
		DBUser:          must("DB_USER"),           // database user
		DBPass:          os.Getenv("DB_PASS"),      // database password (empty allowed)
		DBHost:          must("DB_HOST"),           // database host
		DBPort:          must("DB_PORT"),           // database port
		DBName:          must("DB_NAME"),           // database name
		JWTSecret:       must("JWT_SECRET"),        // secret the identity provider signs tokens with
		StripeSecretKey: must("STRIPE_SECRET_KEY"), // Stripe API key
		FrontendURL:     must("FRONTEND_URL"),      // frontend origin for redirect URLs
		Currency:        getenv("CURRENCY", "usd"), // checkout currency
		SMTPHost:        os.Getenv("SMTP_HOST"),    // SMTP host (optional)
		SMTPUser:        os.Getenv("SMTP_USER"),    // SMTP username (optional)
		SMTPPass:        os.Getenv("SMTP_PASS"),    // SMTP password (optional)
	}
	cfg.SMTPPort = atoi(getenv("SMTP_PORT", "587"))
	cfg.SenderEmail = getenv("SENDER_EMAIL", cfg.SMTPUser)
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
