package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/Cinex10/kong-demo/internal/admin"
	"github.com/Cinex10/kong-demo/internal/config"
	"github.com/Cinex10/kong-demo/internal/kong"
)

// DeployOptions holds options for the deploy command
type DeployOptions struct {
	Project   string
	OutputDir string
	AdminURL  string
}

// newDeployCmd creates the deploy command
func newDeployCmd() *cobra.Command {
	opts := &DeployOptions{}

	cmd := &cobra.Command{
		Use:   "deploy [admin-url]",
		Short: "Deploy a generated configuration to a running Kong",
		Long: `Deploy pushes a previously generated project's configuration to the
Kong Admin API: all services, then routes, then plugins, then consumers
with their credentials. The first failing call aborts the deployment;
objects created before the failure are left in place.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.AdminURL = args[0]
			}
			return runDeploy(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Project, "project", "p", "", "project to deploy (default: last generated project)")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "output", "directory the project was generated into")

	return cmd
}

func runDeploy(ctx context.Context, opts *DeployOptions) error {
	userCfg, err := config.Load()
	if err != nil {
		Warn("%v", err)
	}
	if opts.Project == "" && userCfg != nil {
		opts.Project = userCfg.LastProject
	}
	if opts.Project == "" {
		return fmt.Errorf("no project to deploy: pass --project or generate one first")
	}
	if opts.AdminURL == "" && userCfg != nil {
		opts.AdminURL = userCfg.DefaultAdminURL
	}
	if opts.AdminURL == "" {
		opts.AdminURL = "http://localhost:8001"
	}

	configFile := filepath.Join(opts.OutputDir, opts.Project, "kong-config.json")
	cfg := kong.New()
	if err := cfg.Load(configFile); err != nil {
		return err
	}
	Info("Loaded configuration from %s", configFile)

	return deployConfiguration(ctx, opts.AdminURL, cfg)
}

// deployConfiguration pushes a configuration to the Admin API and
// reports what was created.
func deployConfiguration(ctx context.Context, adminURL string, cfg *kong.Configuration) error {
	Info("Deploying configuration to Kong at %s", adminURL)

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Suffix = " Deploying to Kong..."
	sp.Start()
	results, err := admin.Deploy(ctx, admin.NewHTTPClient(adminURL), cfg)
	sp.Stop()
	if err != nil {
		return fmt.Errorf("deployment failed: %w", err)
	}

	Success("Deployment complete")
	fmt.Printf("  Services created:  %d\n", len(results.Services))
	fmt.Printf("  Routes created:    %d\n", len(results.Routes))
	fmt.Printf("  Plugins created:   %d\n", len(results.Plugins))
	fmt.Printf("  Consumers created: %d\n", len(results.Consumers))
	return nil
}
