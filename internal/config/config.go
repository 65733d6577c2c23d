package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The types reflect how the values are used
// in the application: strings for identifiers and secrets, ints for
// costs and sizes.
type Config struct {
    Env           string // application environment (e.g. "dev", "prod")
    Port          string // HTTP port to listen on
    DBUser        string // database username
    DBPass        string // database password (optional)
    DBHost        string // database host address
    DBPort        string // database port number
    DBName        string // database name
    BcryptCost    int    // bcrypt cost for password hashing
    AdminEmail    string // email of the bootstrap admin account
    AdminPassword string // default credential of the bootstrap admin account
    MaxUploadMB   int    // maximum accepted upload size in megabytes
}

// Load reads configuration values from environment variables and returns
// a Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message. The bootstrap
// admin identity defaults to a well-known value so a fresh deployment is
// reachable before any operator action.
func Load() Config {
    return Config{
        Env:           must("APP_ENV"),  // environment (dev/test/prod)
        Port:          must("APP_PORT"), // port to bind the HTTP server
        DBUser:        must("DB_USER"),  // database user
        DBPass:        os.Getenv("DB_PASS"),
        DBHost:        must("DB_HOST"),
        DBPort:        must("DB_PORT"),
        DBName:        must("DB_NAME"),
        BcryptCost:    mustInt("BCRYPT_COST"),
        AdminEmail:    getenv("BOOTSTRAP_ADMIN_EMAIL", "admin@mobilelms.com"),
        AdminPassword: getenv("BOOTSTRAP_ADMIN_PASSWORD", "Admin@123"),
        MaxUploadMB:   atoi(getenv("MAX_UPLOAD_MB", "50")),
    }
}

// must retrieves the value of a required environment variable. If the
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
