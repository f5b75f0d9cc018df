package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Cinex10/kong-demo/internal/plugin"
)

// newFeaturesCmd creates the features command
func newFeaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List the gateway features the generator understands",
		Run: func(cmd *cobra.Command, args []string) {
			Info("Available Kong Gateway features:")
			for _, feature := range plugin.Catalog() {
				fmt.Printf("  %s\n", feature)
			}
		},
	}
}
