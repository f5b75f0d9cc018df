// Package cli implements the kong-demo command surface.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Cinex10/kong-demo/internal/ai"
	"github.com/Cinex10/kong-demo/internal/config"
)

var (
	// Version information
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"

	verbose bool
	noColor bool

	// Colors
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kong-demo",
	Short: "Kong Demo Generator",
	Long: `kong-demo generates customized Kong API Gateway demo projects.

Given a business domain and a set of gateway features it produces a
gateway configuration, mock backend services, and the compose files and
scripts needed to run the demo, and can push the configuration to a
running Kong Admin API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version information
func SetVersion(v, c, b string) {
	version = v
	commit = c
	buildDate = b
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))

	rootCmd.AddCommand(
		newGenerateCmd(),
		newDeployCmd(),
		newFeaturesCmd(),
	)
}

// initConfig reads ENV variables if set
func initConfig() {
	viper.SetEnvPrefix("KONG_DEMO")
	viper.AutomaticEnv()
}

// newAIClient builds the AI client from the environment. A missing API
// key disables AI generation rather than failing.
func newAIClient() ai.Client {
	apiKey := viper.GetString("GROQ_API_KEY")
	if apiKey == "" {
		Warn("KONG_DEMO_GROQ_API_KEY is not set; falling back to deterministic templates")
		return nil
	}
	var clientOpts []ai.Option
	if userCfg, err := config.Load(); err == nil && userCfg.Model != "" {
		clientOpts = append(clientOpts, ai.WithModel(userCfg.Model))
	}
	client, err := ai.NewHTTPClient(apiKey, clientOpts...)
	if err != nil {
		Warn("AI client unavailable: %v", err)
		return nil
	}
	return client
}

// Helper functions for consistent output

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successColor.Sprintf("✓ "+format, args...))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, errorColor.Sprintf("✗ "+format, args...))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(infoColor.Sprintf("ℹ "+format, args...))
}

// Warn prints a warning message
func Warn(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, warnColor.Sprintf("⚠ "+format, args...))
}

// Debug prints a debug message if verbose mode is enabled
func Debug(format string, args ...interface{}) {
	if IsVerbose() {
		fmt.Fprintln(os.Stderr, color.New(color.FgMagenta).Sprintf("» "+format, args...))
	}
}

// IsVerbose returns true if verbose mode is enabled
func IsVerbose() bool {
	return viper.GetBool("verbose")
}
