package cli

import (
	"github.com/everdragons2/deployer/internal/cli/render"
	"github.com/everdragons2/deployer/internal/usecase"
	"github.com/spf13/cobra"
)

// runDeploy deploys ContractName and prints its address
func runDeploy(cmd *cobra.Command, args []string) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.DeployContract.Run(cmd.Context(), usecase.DeployContractParams{
		ContractName: ContractName,
	})
	if err != nil {
		return err
	}

	renderer := render.NewDeployRenderer(cmd.OutOrStdout(), app.Config.JSON, isTerminal(cmd.OutOrStdout()) && !app.Config.NonInteractive)
	return renderer.Render(result)
}
