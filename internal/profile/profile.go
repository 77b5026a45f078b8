package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where the assistant stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string

	// AI Configuration
	AIAPIKey      string  // SAROJA_AI_API_KEY
	AIBaseURL     string  // SAROJA_AI_BASE_URL (default: https://api.openai.com/v1)
	AIModel       string  // SAROJA_AI_MODEL (default: gpt-4o-mini)
	AIMaxTokens   int     // SAROJA_AI_MAX_TOKENS (default: 1024)
	AITemperature float32 // SAROJA_AI_TEMPERATURE (default: 0.7)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if a completion backend key is configured.
// A missing key is not an error: the chat service falls back to the
// deterministic local responder.
func (p *Profile) IsAIEnabled() bool {
	return p.AIAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads AI configuration from SAROJA_* environment variables.
func (p *Profile) FromEnv() {
	p.AIAPIKey = os.Getenv("SAROJA_AI_API_KEY")
	p.AIBaseURL = getEnvOrDefault("SAROJA_AI_BASE_URL", "https://api.openai.com/v1")
	p.AIModel = getEnvOrDefault("SAROJA_AI_MODEL", "gpt-4o-mini")
	p.AIMaxTokens = 1024
	if v := os.Getenv("SAROJA_AI_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.AIMaxTokens = n
		}
	}
	p.AITemperature = 0.7
	if v := os.Getenv("SAROJA_AI_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			p.AITemperature = float32(f)
		}
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Driver != "sqlite" && p.Driver != "postgres" {
		p.Driver = "sqlite"
	}

	if p.Data == "" {
		p.Data = "."
	}
	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir

	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("sarojaillam_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("dsn is required for postgres driver")
	}

	return nil
}
