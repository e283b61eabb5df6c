package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign admin session JWTs
	SessionTTLHour int    // admin session time-to-live in hours
	BcryptCost     int    // bcrypt cost for password hashing
	WebRoot        string // directory holding the static registration/admin pages
	BaseURL        string // public base URL used when building registration links
	AMQPURL        string // RabbitMQ connection URL (empty disables messaging)
	SMTPHost       string // SMTP relay host for notification mail
	SMTPPort       string // SMTP relay port
	SMTPSender     string // sender address / SMTP username
	SMTPPassword   string // SMTP password
	DigestEmail    string // recipient of the daily committee digest
	ClosureEmail   string // recipient of event-closed summaries
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Everything that has
// a sensible default is optional so a dev setup only needs the DB and the
// session secret.
func Load() Config {
	return Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("APP_PORT", "5500"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         getenv("DB_PORT", "3306"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		SessionTTLHour: envInt("SESSION_TTL_HOURS", 6),
		BcryptCost:     envInt("BCRYPT_COST", 10),
		WebRoot:        getenv("WEB_ROOT", "./web"),
		BaseURL:        getenv("BASE_URL", "http://localhost:5500"),
		AMQPURL:        os.Getenv("RABBITMQ_URL"),
		SMTPHost:       getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getenv("SMTP_PORT", "587"),
		SMTPSender:     os.Getenv("SENDER_EMAIL"),
		SMTPPassword:   os.Getenv("SENDER_PASSWORD"),
		DigestEmail:    os.Getenv("EVENT_POSTS_EMAIL_ADDRESS"),
		ClosureEmail:   os.Getenv("EVENT_CLOSURE_EMAIL_ADDRESS"),
	}
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
