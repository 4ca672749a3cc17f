package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/mythsdao/myths-deploy/internal/cli/render"
	"github.com/mythsdao/myths-deploy/internal/config"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

const nodeShutdownTimeout = 10 * time.Second

// NewRunLocalCmd creates the local development environment command
func NewRunLocalCmd() *cobra.Command {
	var mythsDAO string

	cmd := &cobra.Command{
		Use:   "run-local",
		Short: "Run a development node with a ready to use deployment",
		Long: `Compile the contracts, start anvil on port 8545 with chain ID 31337 and
deploy the suite to it. The descriptor is populated, the first auction is opened
and a test proposal is created. The node then mines a block every 12 seconds
until interrupted.`,
		Args: cobra.NoArgs,
		Annotations: map[string]string{
			annotationNetwork: config.LocalNetwork,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.RunLocalParams{Suite: usecase.DefaultLocalSuiteParams()}
			if params.MythsDAO, err = parseAddress("mythsdao", mythsDAO); err != nil {
				return err
			}

			result, err := app.RunLocal.Run(cmd.Context(), params)
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), nodeShutdownTimeout)
				defer cancel()
				if stopErr := app.RunLocal.Stop(ctx, result); stopErr != nil {
					app.Logger.Warn("failed to stop node", "error", stopErr)
				}
			}()
			if err != nil {
				return err
			}

			if err := render.NewLocalNodeRenderer(cmd.OutOrStdout()).Render(result); err != nil {
				return err
			}

			<-cmd.Context().Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&mythsDAO, "mythsdao", "", "The myths DAO contract address (defaults to the deployer)")

	return cmd
}
