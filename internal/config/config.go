package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses token lifetime durations
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Access and refresh tokens are signed with
// independent secrets and carry independent lifetimes.
type Config struct {
	Env           string        // application environment (e.g. "dev", "prod")
	Port          string        // HTTP port to listen on
	DBUser        string        // database username
	DBPass        string        // database password (optional)
	DBHost        string        // database host address
	DBPort        string        // database port number
	DBName        string        // database name
	AccessSecret  string        // secret used to sign access tokens
	AccessTTL     time.Duration // access token time-to-live
	RefreshSecret string        // secret used to sign refresh tokens
	RefreshTTL    time.Duration // refresh token time-to-live
	BcryptCost    int           // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"), // empty allowed
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		AccessSecret:  must("JWT_ACCESS_TOKEN_SECRET"),
		AccessTTL:     mustDur("JWT_ACCESS_TOKEN_EXPIRATION_TIME"),
		RefreshSecret: must("JWT_REFRESH_TOKEN_SECRET"),
		RefreshTTL:    mustDur("JWT_REFRESH_TOKEN_EXPIRATION_TIME"),
		BcryptCost:    mustInt("BCRYPT_COST"),
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

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// mustDur is like must() but parses the value as a Go duration such as
// "15m" or "168h".  Token lifetimes are configured this way.
func mustDur(key string) time.Duration {
	s := must(key)
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, s)
	}
	return d
}
