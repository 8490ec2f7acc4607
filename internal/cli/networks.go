package cli

import (
	"github.com/everdragons2/deployer/internal/cli/render"
	"github.com/everdragons2/deployer/internal/usecase"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var skipChainID bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List available networks from foundry.toml",
		Long: `List all networks configured in the [rpc_endpoints] section of foundry.toml.

This command shows all available networks and attempts to fetch their chain IDs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			// Run use case
			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{
				SkipChainID: skipChainID,
			})
			if err != nil {
				return err
			}

			// Render output
			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), app.Config.JSON, isTerminal(cmd.OutOrStdout()))
			return renderer.Render(result)
		},
	}

	cmd.Flags().BoolVar(&skipChainID, "offline", false, "Do not query chain IDs")

	return cmd
}
