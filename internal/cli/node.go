package cli

import (
	"github.com/spf13/cobra"

	"github.com/mythsdao/myths-deploy/internal/cli/render"
	"github.com/mythsdao/myths-deploy/internal/config"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

// NewNodeCmd creates the development node management command
func NewNodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage the development node started by run-local",
	}

	cmd.AddCommand(newNodeOperationCmd(usecase.NodeStatus, "Show the node status"))
	cmd.AddCommand(newNodeOperationCmd(usecase.NodeStop, "Stop a node left running"))

	return cmd
}

func newNodeOperationCmd(op usecase.NodeOperation, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(op),
		Short: short,
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			annotationNetwork: config.LocalNetwork,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ManageNode.Run(cmd.Context(), op)
			if err != nil {
				return err
			}
			return render.NewNodeRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}
