package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mythsdao/myths-deploy/internal/adapters/progress"
	"github.com/mythsdao/myths-deploy/internal/app"
	"github.com/mythsdao/myths-deploy/internal/config"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// sinkKey is the context key for the progress sink
	sinkKey contextKey = "sink"
)

// Command annotations read by the root command before the app is built
const (
	// annotationNetwork pins the network of a command
	annotationNetwork = "network"
	// annotationPlainOutput selects uncolored line output
	annotationPlainOutput = "plain-output"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "myths",
		Short: "Deploy and operate the Myths DAO contract suite",
		Long: `myths deploys the Myths token, descriptor, auction house and DAO contracts
with Foundry artifacts, predicting every contract address before sending it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)
			bindCommandDefaults(v, cmd)

			sink := newSink(cmd)
			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			ctx = context.WithValue(ctx, sinkKey, sink)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if stopper, ok := cmd.Context().Value(sinkKey).(interface{ Stop() }); ok {
				stopper.Stop()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (name from foundry.toml [rpc_endpoints], defaults to localhost)")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC endpoint, overrides the network's endpoint")
	rootCmd.PersistentFlags().String("private-key", "", "Deployer private key (defaults to PRIVATE_KEY)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort after this duration (0 disables)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "deploy",
		Title: "Deployment Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "interact",
		Title: "Contract Interaction Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "local",
		Title: "Local Development Commands",
	})

	for _, cmd := range []*cobra.Command{NewDeployCmd(), NewDeployLocalCmd(), NewDeployCICmd(), NewUpdateConfigsCmd()} {
		cmd.GroupID = "deploy"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{NewMintMythCmd(), NewPopulateDescriptorCmd(), NewCreateProposalCmd()} {
		cmd.GroupID = "interact"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{NewRunLocalCmd(), NewNodeCmd()} {
		cmd.GroupID = "local"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// bindCommandDefaults applies settings a command fixes regardless of flags
func bindCommandDefaults(v *viper.Viper, cmd *cobra.Command) {
	if network, ok := cmd.Annotations[annotationNetwork]; ok {
		if f := cmd.Flag("network"); f == nil || !f.Changed {
			v.Set("network", network)
		}
	}
	if _, ok := cmd.Annotations[annotationPlainOutput]; ok {
		v.Set("non_interactive", true)
	}
}

// newSink picks the progress output for a command
func newSink(cmd *cobra.Command) usecase.ProgressSink {
	if _, ok := cmd.Annotations[annotationPlainOutput]; ok {
		return progress.NewPlainSink(os.Stdout)
	}
	return progress.NewSpinnerProgressReporter()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance, ok := cmd.Context().Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return appInstance, nil
}
