package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time with
// -ldflags "-X github.com/wesleyorama2/cicd-template/internal/cli.version=..."
var version = "1.0.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "cicd-template",
	Short:   "Status service deployed by the CI/CD template, plus its smoke checker",
	Version: version,
	Long: `cicd-template is the small JSON status service shipped by the CI/CD
template pipeline. "serve" runs the service; "smoke" checks a running
instance the way the pipeline does after each deploy.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	RootCmd.SilenceErrors = true

	// Add subcommands to root command
	RootCmd.AddCommand(serveCmd)
	RootCmd.AddCommand(smokeCmd)
}
