package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server Server
	Store  Store
	Media  Media
	Admin  Admin
	App    App
}

type Server struct {
	Port         string
	AllowOrigins []string
}

type Store struct {
	// Driver selects the project store backend: "jsonfile" or "postgres".
	Driver   string
	FilePath string
	Database Database
}

type Database struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type Media struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadFolder string
}

// Configured reports whether Cloudinary credentials are present. When they
// are not, the media relay is disabled and upload routes return 503.
func (m Media) Configured() bool {
	return m.CloudName != "" && m.APIKey != "" && m.APISecret != ""
}

type Admin struct {
	// MutationsEnabled gates every project/media mutation route. It is read
	// once at startup and threaded into the router, never looked up per call.
	MutationsEnabled bool
	MutationsPerMin  int
}

type App struct {
	Environment string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: Server{
			Port:         getEnv("PORT", "8080"),
			AllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		},
		Store: Store{
			Driver:   getEnv("STORE_DRIVER", "jsonfile"),
			FilePath: getEnv("PROJECTS_FILE", "data/projects.json"),
			Database: Database{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     getEnvAsInt("DB_PORT", 5432),
				User:     getEnv("DB_USER", "postgres"),
				Password: getEnv("DB_PASSWORD", ""),
				Name:     getEnv("DB_NAME", "portfolio"),
			},
		},
		Media: Media{
			CloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:       getEnv("CLOUDINARY_API_KEY", ""),
			APISecret:    getEnv("CLOUDINARY_API_SECRET", ""),
			UploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "portfolio/projects"),
		},
		Admin: Admin{
			MutationsEnabled: getEnvAsBool("ADMIN_MUTATIONS_ENABLED", true),
			MutationsPerMin:  getEnvAsInt("ADMIN_MUTATIONS_PER_MIN", 60),
		},
		App: App{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Driver {
	case "jsonfile":
		if c.Store.FilePath == "" {
			return fmt.Errorf("PROJECTS_FILE is required for the jsonfile store")
		}
	case "postgres":
		if c.Store.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	return nil
}

// DSN builds a libpq-style connection string for the postgres store.
func (d *Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
