package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marmos91/resourced/internal/logger"
	"github.com/marmos91/resourced/internal/telemetry"
	"github.com/marmos91/resourced/pkg/api"
	"github.com/marmos91/resourced/pkg/api/handlers"
	"github.com/marmos91/resourced/pkg/config"
	"github.com/marmos91/resourced/pkg/deploy"
	"github.com/marmos91/resourced/pkg/introspect"
	"github.com/marmos91/resourced/pkg/metrics"
	"github.com/marmos91/resourced/pkg/naming"
	"github.com/marmos91/resourced/pkg/naming/badgerstore"
	"github.com/marmos91/resourced/pkg/naming/db"
	"github.com/marmos91/resourced/pkg/naming/memory"
	"github.com/marmos91/resourced/pkg/registry"
)

var (
	foreground  bool
	pidFile     string
	logFile     string
	watchConfig bool
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the resourced server",
	Long: `Start the resourced server with the specified configuration.

By default, the server runs in the background (daemon mode). Use --foreground
to run in the foreground for debugging or when managed by a process supervisor.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/resourced/config.yaml.

Examples:
  # Start in background (default)
  resourced start

  # Start in foreground
  resourced start --foreground

  # Start with custom config file
  resourced start --config /etc/resourced/config.yaml

  # Start with environment variable overrides
  RESOURCED_LOGGING_LEVEL=DEBUG resourced start --foreground`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "Run in foreground (default: background/daemon mode)")
	startCmd.Flags().StringVar(&pidFile, "pid-file", "", "Path to PID file (default: $XDG_STATE_HOME/resourced/resourced.pid)")
	startCmd.Flags().StringVar(&logFile, "log-file", "", "Path to log file for daemon mode (default: $XDG_STATE_HOME/resourced/resourced.log)")
	startCmd.Flags().BoolVar(&watchConfig, "watch-config", false, "Reload logging configuration when the config file changes")
}

func runStart(cmd *cobra.Command, args []string) error {
	// Handle daemon mode (background)
	if !foreground {
		return startDaemon()
	}

	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry (if enabled)
	telemetryCfg := telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "resourced",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	}
	telemetryShutdown, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	// Initialize Pyroscope profiling (if enabled)
	profilingCfg := telemetry.ProfilingConfig{
		Enabled:        cfg.Telemetry.Profiling.Enabled,
		ServiceName:    "resourced",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Profiling.Endpoint,
		ProfileTypes:   cfg.Telemetry.Profiling.ProfileTypes,
	}
	profilingShutdown, err := telemetry.InitProfiling(profilingCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize profiling: %w", err)
	}
	defer func() {
		if err := profilingShutdown(); err != nil {
			logger.Error("profiling shutdown error", "error", err)
		}
	}()

	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))
	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	} else {
		logger.Info("Telemetry disabled")
	}
	if telemetry.IsProfilingEnabled() {
		logger.Info("Profiling enabled", "endpoint", cfg.Telemetry.Profiling.Endpoint, "profile_types", cfg.Telemetry.Profiling.ProfileTypes)
	} else {
		logger.Info("Profiling disabled")
	}

	// Initialize metrics FIRST (before creating instruments that depend on
	// the registry being present)
	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		metricsServer = metrics.NewServer(cfg.Metrics)
		logger.Info("Metrics enabled", "port", cfg.Metrics.Port, "path", cfg.Metrics.Path)
	} else {
		logger.Info("Metrics collection disabled")
	}

	// Create the naming-service backend bindings are published to
	namingSvc, err := newNamingService(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize naming service: %w", err)
	}
	defer func() {
		if err := namingSvc.Close(); err != nil {
			logger.Error("naming service close error", "error", err)
		}
	}()
	logger.Info("Naming service initialized", "backend", string(cfg.Naming.Backend))

	// Application registry with bean introspection
	reg := registry.NewRegistry(introspect.NewCatalog())

	// Mail-session deployer publishing into the naming service
	deployer := deploy.NewDeployer(namingSvc, metrics.NewDeployerMetrics())

	// Create API server (if enabled - defaults to true)
	var apiServer *api.Server
	if cfg.API.IsEnabled() {
		creds := handlers.Credentials{
			Username:     cfg.Admin.Username,
			PasswordHash: cfg.Admin.PasswordHash,
		}
		apiServer, err = api.NewServer(cfg.API, reg, deployer, namingSvc, creds)
		if err != nil {
			return fmt.Errorf("failed to create API server: %w", err)
		}
		logger.Info("API server enabled", "port", apiServer.Port())
	} else {
		logger.Info("API server disabled")
	}

	// Write PID file if specified
	if pidFile != "" {
		if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d", os.Getpid())), 0644); err != nil {
			return fmt.Errorf("failed to write PID file: %w", err)
		}
		defer func() { _ = os.Remove(pidFile) }()
	}

	// Reload logging configuration on config file changes (if requested)
	if watchConfig {
		configPath := GetConfigFile()
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		go func() {
			err := config.Watch(ctx, configPath, func(newCfg *config.Config) {
				if err := InitLogger(newCfg); err != nil {
					logger.Warn("failed to apply reloaded logging config", "error", err)
					return
				}
				logger.Info("Logging configuration reloaded",
					"level", newCfg.Logging.Level, "format", newCfg.Logging.Format)
			})
			if err != nil && ctx.Err() == nil {
				logger.Warn("config watcher stopped", "error", err)
			}
		}()
	}

	// Start servers in background
	serverDone := make(chan error, 2)
	running := 0
	if apiServer != nil {
		running++
		go func() {
			serverDone <- apiServer.Start(ctx)
		}()
	}
	if metricsServer != nil {
		running++
		go func() {
			serverDone <- metricsServer.Start(ctx)
		}()
	}
	if running == 0 {
		return fmt.Errorf("nothing to serve: both API and metrics servers are disabled")
	}

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		cancel()

		// Wait for all servers to shut down gracefully
		for i := 0; i < running; i++ {
			if err := <-serverDone; err != nil {
				logger.Error("Server shutdown error", "error", err)
				return err
			}
		}
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		signal.Stop(sigChan)
		cancel()
		running--
		for i := 0; i < running; i++ {
			<-serverDone
		}
		if err != nil {
			logger.Error("Server error", "error", err)
			return err
		}
		logger.Info("Server stopped")
	}

	return nil
}

// newNamingService creates the configured naming-service backend.
func newNamingService(cfg *config.Config) (naming.Service, error) {
	switch cfg.Naming.Backend {
	case config.NamingBackendMemory, "":
		return memory.New(), nil
	case config.NamingBackendBadger:
		return badgerstore.New(cfg.Naming.Badger.Path)
	case config.NamingBackendDatabase:
		return db.New(&cfg.Naming.Database)
	default:
		return nil, fmt.Errorf("unknown naming backend: %s", cfg.Naming.Backend)
	}
}

// startDaemon starts the server as a background daemon process.
func startDaemon() error {
	stateDir := GetDefaultStateDir()

	// Create state directory if it doesn't exist
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	// Set default PID file if not specified
	pidPath := pidFile
	if pidPath == "" {
		pidPath = filepath.Join(stateDir, "resourced.pid")
	}

	// Check if already running
	if _, err := os.Stat(pidPath); err == nil {
		pidData, err := os.ReadFile(pidPath)
		if err == nil {
			var pid int
			if _, err := fmt.Sscanf(string(pidData), "%d", &pid); err == nil {
				// Check if process is still running
				if process, err := os.FindProcess(pid); err == nil {
					if err := process.Signal(syscall.Signal(0)); err == nil {
						return fmt.Errorf("resourced is already running (PID %d)\nUse 'resourced status' to inspect the running instance", pid)
					}
				}
			}
		}
		// Stale PID file, remove it
		_ = os.Remove(pidPath)
	}

	// Set default log file if not specified
	logPath := logFile
	if logPath == "" {
		logPath = filepath.Join(stateDir, "resourced.log")
	}

	// Get the executable path
	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	// Build arguments for the daemon process
	daemonArgs := []string{"start", "--foreground", "--pid-file", pidPath}
	if GetConfigFile() != "" {
		daemonArgs = append(daemonArgs, "--config", GetConfigFile())
	}
	if watchConfig {
		daemonArgs = append(daemonArgs, "--watch-config")
	}

	// Create the daemon process
	cmd := exec.Command(executable, daemonArgs...)

	// Open log file for stdout/stderr
	logFileHandle, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	cmd.Stdout = logFileHandle
	cmd.Stderr = logFileHandle

	// Detach from parent process
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	// Start the daemon
	if err := cmd.Start(); err != nil {
		_ = logFileHandle.Close()
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	_ = logFileHandle.Close()

	fmt.Printf("resourced started in background (PID %d)\n", cmd.Process.Pid)
	fmt.Printf("  PID file: %s\n", pidPath)
	fmt.Printf("  Log file: %s\n", logPath)
	fmt.Println("\nUse 'resourced status' to check server status")

	return nil
}
