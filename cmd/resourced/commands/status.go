package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/resourced/internal/cli/health"
	"github.com/marmos91/resourced/internal/cli/output"
	"github.com/marmos91/resourced/internal/cli/timeutil"
)

var (
	statusOutput  string
	statusPidFile string
	statusAPIPort int
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	Long: `Display the current status of the resourced server.

This command checks the server health by calling the readiness endpoint
and displays status, binding count, and registered applications.

Examples:
  # Check status (uses default settings)
  resourced status

  # Check status with custom API port
  resourced status --api-port 9080

  # Output as JSON
  resourced status --output json`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusPidFile, "pid-file", "", "Path to PID file (default: $XDG_STATE_HOME/resourced/resourced.pid)")
	statusCmd.Flags().IntVar(&statusAPIPort, "api-port", 8080, "API server port")
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

// ServerStatus represents the server status information.
type ServerStatus struct {
	Running      bool   `json:"running" yaml:"running"`
	PID          int    `json:"pid,omitempty" yaml:"pid,omitempty"`
	Message      string `json:"message" yaml:"message"`
	Uptime       string `json:"uptime,omitempty" yaml:"uptime,omitempty"`
	CheckedAt    string `json:"checked_at,omitempty" yaml:"checked_at,omitempty"`
	Bindings     int    `json:"bindings" yaml:"bindings"`
	Applications int    `json:"applications" yaml:"applications"`
	Healthy      bool   `json:"healthy" yaml:"healthy"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(statusOutput)
	if err != nil {
		return err
	}

	status := ServerStatus{
		Running: false,
		Healthy: false,
		Message: "Server is not running",
	}

	// Use default PID file if not specified
	pidPath := statusPidFile
	if pidPath == "" {
		pidPath = GetDefaultPidFile()
	}

	// Check PID file first
	pidData, err := os.ReadFile(pidPath)
	if err == nil {
		pid, err := strconv.Atoi(strings.TrimSpace(string(pidData)))
		if err == nil {
			// Check if process is running
			process, err := os.FindProcess(pid)
			if err == nil {
				// On Unix, FindProcess always succeeds, we need to send signal 0 to check
				err = process.Signal(syscall.Signal(0))
				if err == nil {
					status.Running = true
					status.PID = pid
				}
			}
		}
	}

	// Check readiness endpoint (works for both daemon and foreground mode)
	healthURL := fmt.Sprintf("http://localhost:%d/health/ready", statusAPIPort)
	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get(healthURL)
	if err == nil {
		defer func() { _ = resp.Body.Close() }()

		var healthResp health.Response
		if err := json.NewDecoder(resp.Body).Decode(&healthResp); err == nil {
			status.Running = true
			status.Healthy = healthResp.IsHealthy()
			status.Uptime = healthResp.Data.Uptime
			status.CheckedAt = healthResp.Timestamp
			status.Bindings = healthResp.Data.Bindings
			status.Applications = healthResp.Data.Applications
			if status.Healthy {
				status.Message = "Server is running and healthy"
			} else {
				status.Message = fmt.Sprintf("Server is running but unhealthy: %s", healthResp.Error)
			}
		} else {
			status.Running = true
			status.Message = "Server is running but health response invalid"
		}
	} else if status.Running {
		// PID file says running but health check failed
		status.Message = "Server process exists but health check failed"
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, status)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, status)
	default:
		printStatusTable(status)
	}

	return nil
}

func printStatusTable(status ServerStatus) {
	fmt.Println()
	fmt.Println("resourced Server Status")
	fmt.Println("=======================")
	fmt.Println()

	if status.Running {
		if status.Healthy {
			fmt.Printf("  Status:        \033[32m● Running\033[0m\n")
		} else {
			fmt.Printf("  Status:        \033[33m● Running (unhealthy)\033[0m\n")
		}
		if status.PID != 0 {
			fmt.Printf("  PID:           %d\n", status.PID)
		}
		if status.Uptime != "" {
			fmt.Printf("  Uptime:        %s\n", timeutil.FormatUptime(status.Uptime))
		}
		if status.CheckedAt != "" {
			fmt.Printf("  Checked:       %s\n", timeutil.FormatTime(status.CheckedAt))
		}
		if status.Healthy {
			fmt.Printf("  Applications:  %d\n", status.Applications)
			fmt.Printf("  Bindings:      %d\n", status.Bindings)
		}
	} else {
		fmt.Printf("  Status:        \033[31m○ Stopped\033[0m\n")
	}

	fmt.Println()
	fmt.Printf("  %s\n", status.Message)
	fmt.Println()
}
