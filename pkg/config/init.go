package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// InitConfig creates a sample configuration file at the default location.
// Returns the path of the created file. Fails if the file already exists
// unless force is true.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	return path, InitConfigToPath(path, force)
}

// InitConfigToPath creates a sample configuration file at the given path.
// Fails if the file already exists unless force is true.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	secret, err := generateSecret()
	if err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}

	content := fmt.Sprintf(sampleConfig, secret)

	// Restricted permissions: the file contains the generated JWT secret.
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateSecret returns a 64-character hex string (32 bytes of entropy)
// suitable for use as a JWT signing secret.
func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

const sampleConfig = `# resourced Configuration File
#
# All options can be overridden with environment variables:
#   RESOURCED_<SECTION>_<KEY> (use underscores for nested keys)
#   Example: RESOURCED_LOGGING_LEVEL=DEBUG

logging:
  # Minimum log level: DEBUG, INFO, WARN, ERROR
  level: "INFO"
  # Log output format: text, json
  format: "text"
  # Where logs are written: stdout, stderr, or a file path
  output: "stdout"

# OpenTelemetry distributed tracing (opt-in)
telemetry:
  enabled: false
  endpoint: "localhost:4317"
  insecure: true
  sample_rate: 1.0
  # Pyroscope continuous profiling (opt-in)
  profiling:
    enabled: false
    endpoint: "http://localhost:4040"

# Maximum time to wait for graceful shutdown
shutdown_timeout: "30s"

# Naming-service backend bindings are published to
naming:
  # Backend: memory (default, volatile), badger (embedded), database (SQL)
  backend: memory
  # badger:
  #   path: /var/lib/resourced/bindings
  # database:
  #   type: sqlite
  #   sqlite:
  #     path: /var/lib/resourced/bindings.db

# Prometheus metrics server (opt-in)
metrics:
  enabled: false
  port: 9090
  path: /metrics

# REST API server
api:
  port: 8080
  jwt:
    # JWT signing secret (generated during init).
    # For production, prefer the RESOURCED_API_SECRET environment variable.
    secret: "%s"
    access_token_duration: "15m"
    refresh_token_duration: "168h"

# Initial admin user (password hash is set by 'resourced init')
admin:
  username: "admin"
`
