package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/Cinex10/kong-demo/internal/config"
	"github.com/Cinex10/kong-demo/internal/kong"
	"github.com/Cinex10/kong-demo/internal/plugin"
	"github.com/Cinex10/kong-demo/internal/scaffold"
	"github.com/Cinex10/kong-demo/internal/spec"
)

// GenerateOptions holds options for the generate command
type GenerateOptions struct {
	ConfigFile    string
	Project       string
	OutputDir     string
	DeployURL     string
	AssumeRunning bool
	NoInteractive bool
}

// newGenerateCmd creates the generate command
func newGenerateCmd() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Kong demo project",
		Long: `Generate a complete Kong demo project: gateway configuration, mock
backend services, compose files and setup scripts.

Without --config the command collects the project interactively: a
business domain, the gateway features to showcase, and per-domain
parameters. With --config it regenerates the project from an existing
kong-config.json or kong-config.yaml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "path to an existing configuration file")
	cmd.Flags().StringVarP(&opts.Project, "project", "p", "", "project name (default: derived from input)")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "output", "output directory for generated files")
	cmd.Flags().StringVar(&opts.DeployURL, "deploy", "", "deploy to this Kong Admin URL after generating")
	cmd.Flags().BoolVar(&opts.AssumeRunning, "assume-running", false, "assume Kong is already running (compose stack omits the gateway)")
	cmd.Flags().BoolVar(&opts.NoInteractive, "no-interactive", false, "disable interactive prompts")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions) error {
	ctx := cmd.Context()

	userCfg, err := config.Load()
	if err != nil {
		Warn("%v", err)
	} else if userCfg.DefaultOutputDir != "" && !cmd.Flags().Changed("output-dir") {
		opts.OutputDir = userCfg.DefaultOutputDir
	}

	client := newAIClient()
	cfg := kong.New()

	var projectName string

	if opts.ConfigFile != "" {
		if err := cfg.Load(opts.ConfigFile); err != nil {
			return err
		}
		projectName = opts.Project
		if projectName == "" {
			base := filepath.Base(opts.ConfigFile)
			projectName = strings.TrimSuffix(base, filepath.Ext(base))
		}
		Info("Loaded configuration from %s", opts.ConfigFile)
	} else {
		if opts.NoInteractive {
			return fmt.Errorf("--config is required with --no-interactive")
		}

		input, err := collectInput(opts)
		if err != nil {
			return err
		}
		projectName = input.ProjectName

		sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		sp.Suffix = " Generating API specification..."
		sp.Start()
		generator := spec.NewGenerator(client, spec.DefaultCatalog())
		apiSpec, err := generator.Generate(ctx, input.BusinessType, input.Features)
		sp.Stop()
		if err != nil {
			Warn("%v", err)
		}

		added := plugin.ApplySpec(cfg, apiSpec, input.Features, input.PluginOpts, plugin.SpecOptions{
			BusinessType:   input.BusinessType,
			BusinessParams: input.Params,
		})
		for _, name := range added {
			Info("Added service: %s", name)
		}
		for _, route := range cfg.Routes {
			Debug("Added route: %s -> %s", route.Name, route.ServiceName)
		}
	}

	writer := scaffold.NewWriter(opts.OutputDir, client)
	result, err := writer.WriteProject(ctx, projectName, cfg, opts.AssumeRunning)
	if err != nil {
		return fmt.Errorf("failed to generate project: %w", err)
	}
	for _, warning := range result.Warnings {
		Warn("%s", warning)
	}

	if userCfg != nil {
		if err := userCfg.SetLastProject(projectName); err != nil {
			Debug("could not record last project: %v", err)
		}
	}

	Success("Demo project '%s' has been generated", projectName)
	Info("You can find the files in: %s", result.Dir)
	if cfg.TerminationNote != "" {
		Info("%s", cfg.TerminationNote)
	}

	if opts.DeployURL != "" {
		return deployConfiguration(ctx, opts.DeployURL, cfg)
	}
	return nil
}
