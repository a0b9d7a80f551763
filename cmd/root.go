package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds CLI configuration.
type Config struct {
	DBPath string
	APIURL string
	Token  string
}

const defaultAPIURL = "https://api.tunisiagotravel.com"

// ParseFlags parses command-line flags and returns configuration.
func ParseFlags(version string) (*Config, error) {
	config := &Config{}

	// Load .env files first so env-based defaults work with flag parsing.
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.StringVar(&config.DBPath, "db", "", "Path to SQLite database file (default: ~/.rihla/rihla.db)")
	flag.StringVar(&config.APIURL, "api", "", "Platform API base URL (or set RIHLA_API_URL)")
	flag.StringVar(&config.Token, "token", "", "API bearer token (or set RIHLA_TOKEN)")
	flag.Parse()

	if *showVersion {
		fmt.Println("rihla " + version)
		os.Exit(0)
	}

	if config.APIURL == "" {
		config.APIURL = os.Getenv("RIHLA_API_URL")
	}
	if config.APIURL == "" {
		config.APIURL = defaultAPIURL
	}
	config.APIURL = strings.TrimRight(config.APIURL, "/")

	if config.Token == "" {
		config.Token = os.Getenv("RIHLA_TOKEN")
	}

	var configDir string
	if config.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		configDir = filepath.Join(home, ".rihla")
		if err := os.MkdirAll(configDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		config.DBPath = filepath.Join(configDir, "rihla.db")
	} else {
		configDir = filepath.Dir(config.DBPath)
	}

	if config.Token == "" {
		token, err := loadTokenFile(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load token file: %w", err)
		}
		config.Token = token
	} else {
		// Remember a token passed via flag or env so the next run
		// works without it.
		if err := SaveTokenFile(configDir, config.Token); err != nil {
			return nil, fmt.Errorf("failed to save token file: %w", err)
		}
	}

	return config, nil
}

func tokenPath(configDir string) string {
	return filepath.Join(configDir, "token")
}

func loadTokenFile(configDir string) (string, error) {
	data, err := os.ReadFile(tokenPath(configDir))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveTokenFile stores the bearer token with owner-only permissions.
func SaveTokenFile(configDir, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	return os.WriteFile(tokenPath(configDir), []byte(strings.TrimSpace(token)+"\n"), 0600)
}
