package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mythsdao/myths-deploy/internal/cli/render"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

// NewUpdateConfigsCmd creates the downstream config update command
func NewUpdateConfigsCmd() *cobra.Command {
	var contracts string

	cmd := &cobra.Command{
		Use:   "update-configs",
		Short: "Write deployed addresses to the SDK and the subgraph",
		Long: `Read a registry file (JSON or YAML), write its addresses to the SDK address
table for the connected chain, rebuild the SDK and generate the subgraph config.`,
		Example: `  myths update-configs --network rinkeby --contracts deployments/4.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.UpdateConfigs.Run(cmd.Context(), usecase.UpdateConfigsParams{ContractsPath: contracts})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.FormatSuccess(fmt.Sprintf("SDK addresses: %s", result.SDKPath)))
			fmt.Fprintln(out, render.FormatSuccess(fmt.Sprintf("Subgraph config: %s", result.SubgraphPath)))
			return nil
		},
	}

	cmd.Flags().StringVar(&contracts, "contracts", "", "Registry file with the deployed contracts")
	_ = cmd.MarkFlagRequired("contracts")

	return cmd
}
