package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/cicd-template/internal/config"
	"github.com/wesleyorama2/cicd-template/internal/server"
)

// processStart is taken during package initialisation, before flag parsing
// and env file loading, so /status uptime counts from process start.
var processStart = time.Now()

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the status service",
	Long: `Run the HTTP status service.

The port is taken from --port, then PORT, then 3000. Variables from the
env file are loaded first and never override ones already set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		port, _ := cmd.Flags().GetString("port")
		shutdownTimeout, _ := cmd.Flags().GetDuration("shutdown-timeout")
		accessLog, _ := cmd.Flags().GetBool("access-log")

		cfg := config.DefaultServeConfig(nil)
		cfg.EnvFile = envFile
		cfg.AccessLog = accessLog
		cfg.ShutdownTimeout = shutdownTimeout
		// Left empty so runServe resolves PORT after the env file is loaded
		cfg.Port = ""
		if cmd.Flags().Changed("port") {
			cfg.Port = port
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
		return runServe(ctx, cfg, processStart, logger)
	},
}

// runServe loads cfg.EnvFile, fills in the port from the environment when
// cfg.Port is empty, then serves until ctx is cancelled. started is reported
// as the process start time by /status.
func runServe(ctx context.Context, cfg config.ServeConfig, started time.Time, logger *log.Logger) error {
	loaded, err := config.LoadEnvFile(cfg.EnvFile)
	if err != nil {
		return fmt.Errorf("loading env file %s: %w", cfg.EnvFile, err)
	}
	if loaded {
		logger.Printf("Loaded environment from %s", cfg.EnvFile)
	}

	if cfg.Port == "" {
		cfg.Port = config.Lookup(config.EnvSource{}, config.KeyPort, config.DefaultPort)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return fmt.Errorf("invalid serve configuration: %w", errors.Join(joined...))
	}

	opts := server.Options{
		Env:     config.EnvSource{},
		Clock:   server.SystemClock(),
		Started: started,
		Version: version,
	}
	if cfg.AccessLog {
		opts.Logger = logger
	}

	return server.New(cfg, server.NewRouter(opts), logger).Run(ctx)
}

func init() {
	serveCmd.Flags().StringP("port", "p", config.DefaultPort, "Port to listen on (default: $PORT or 3000)")
	serveCmd.Flags().String("env-file", ".env", "Dotenv file loaded before reading the environment")
	serveCmd.Flags().Duration("shutdown-timeout", 10*time.Second, "Maximum time to wait for in-flight requests on shutdown")
	serveCmd.Flags().Bool("access-log", true, "Log every request to stderr")
}
