package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/cicd-template/internal/config"
	"github.com/wesleyorama2/cicd-template/internal/http"
	"github.com/wesleyorama2/cicd-template/internal/output"
	"github.com/wesleyorama2/cicd-template/internal/smoke"
)

// errChecksFailed is returned when the suite ran but at least one check failed
var errChecksFailed = errors.New("smoke checks failed")

type smokeOptions struct {
	URL     string
	Config  string
	Repeat  int
	Timeout time.Duration
	Headers []string
	Format  output.OutputFormat
	NoColor bool
}

var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Check a running instance of the service",
	Long: `Run a smoke suite against a running instance and report every check.

Without --config the built-in suite is used; it covers every endpoint
exactly as the deploy pipeline expects it to behave.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		configFile, _ := cmd.Flags().GetString("config")
		repeat, _ := cmd.Flags().GetInt("repeat")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		headers, _ := cmd.Flags().GetStringArray("header")
		formatName, _ := cmd.Flags().GetString("format")
		noColor, _ := cmd.Flags().GetBool("no-color")

		format, err := output.ParseFormat(formatName)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		return runSmoke(cmd.Context(), smokeOptions{
			URL:     url,
			Config:  configFile,
			Repeat:  repeat,
			Timeout: timeout,
			Headers: headers,
			Format:  format,
			NoColor: output.DisableColor(out, noColor),
		}, out)
	},
}

func runSmoke(ctx context.Context, opts smokeOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	suite := config.DefaultSuite()
	if opts.Config != "" {
		loaded, err := config.LoadSuite(opts.Config)
		if err != nil {
			return err
		}
		suite = loaded
	}

	baseURL := opts.URL
	if baseURL == "" {
		baseURL = "http://localhost:" + config.Lookup(config.EnvSource{}, config.KeyPort, config.DefaultPort)
	}
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}

	clientOptions := []http.ClientOption{
		http.WithBaseURL(baseURL),
		http.WithTimeout(opts.Timeout),
	}
	for _, header := range opts.Headers {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return fmt.Errorf("invalid header %q, expected \"Name: value\"", header)
		}
		clientOptions = append(clientOptions, http.WithHeader(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])))
	}
	client := http.NewClient(clientOptions...)

	report, err := smoke.NewRunner(client, smoke.WithRepeat(opts.Repeat)).Run(ctx, suite)
	if err != nil {
		return err
	}

	if err := output.RenderReport(out, report, opts.Format, opts.NoColor); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if !report.OK() {
		return fmt.Errorf("%w: %d of %d", errChecksFailed, report.Failed, len(report.Checks))
	}
	return nil
}

func init() {
	smokeCmd.Flags().StringP("url", "u", "", "Base URL of the service (default: http://localhost:$PORT)")
	smokeCmd.Flags().StringP("config", "c", "", "Suite file (YAML or JSON); the built-in suite when empty")
	smokeCmd.Flags().IntP("repeat", "r", 1, "Run every check this many times")
	smokeCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	smokeCmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers sent with every check (can be used multiple times)")
	smokeCmd.Flags().StringP("format", "f", string(output.FormatText), "Output format: text, json or yaml")
	smokeCmd.Flags().Bool("no-color", false, "Disable colored output")
}
