package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mythsdao/myths-deploy/internal/cli/render"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

// NewDeployCmd creates the public network deployment command
func NewDeployCmd() *cobra.Command {
	var (
		autoDeploy bool
		weth       string
		mythsDAO   string
		suite      usecase.SuiteParams
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the contract suite to a public network",
		Long: `Deploy the token, descriptors, seeder, auction house and DAO contracts.

Every contract address is predicted from the deployer nonce before anything is
sent. Unless --auto-deploy is set, each step shows its gas cost and asks whether
to deploy, skip or exit.`,
		Example: `  # Deploy to goerli with an explicit WETH
  myths deploy --network goerli --weth 0xB4FBF271143F4FBf7B91A5ded31805e42b2208d6

  # Deploy to mainnet without prompts, with the deployer as the DAO
  myths deploy --network mainnet --auto-deploy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.DeploySuiteParams{AutoDeploy: autoDeploy, Suite: suite}
			if params.WETH, err = parseAddress("weth", weth); err != nil {
				return err
			}
			if params.MythsDAO, err = parseAddress("mythsdao", mythsDAO); err != nil {
				return err
			}

			result, err := app.DeploySuite.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			if result.Exited {
				fmt.Fprintln(cmd.OutOrStdout(), render.FormatWarning("Deployment stopped, nothing was saved"))
				return nil
			}

			return render.NewRegistryRenderer(cmd.OutOrStdout()).Render(render.RegistryView{
				ChainID:  result.ChainID,
				Registry: result.Registry,
				Path:     result.RegistryPath,
				Skipped:  result.Skipped,
			})
		},
	}

	cmd.Flags().BoolVar(&autoDeploy, "auto-deploy", false, "Deploy all contracts without user interaction")
	cmd.Flags().StringVar(&weth, "weth", "", "The WETH contract address (auto-detected on known chains)")
	cmd.Flags().StringVar(&mythsDAO, "mythsdao", "", "The myths DAO contract address (defaults to the deployer)")
	addSuiteFlags(cmd.Flags(), &suite, usecase.DefaultSuiteParams())

	return cmd
}

// NewDeployLocalCmd creates the development node deployment command
func NewDeployLocalCmd() *cobra.Command {
	var (
		mythsDAO string
		suite    usecase.SuiteParams
	)

	cmd := &cobra.Command{
		Use:   "deploy-local",
		Short: "Deploy the contract suite to a local development node",
		Long: `Deploy WETH and the contract suite to a node running chain 31337.
Nothing is deployed on any other chain.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.DeployLocalParams{Suite: suite}
			if params.MythsDAO, err = parseAddress("mythsdao", mythsDAO); err != nil {
				return err
			}

			result, err := app.DeployLocal.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			if result.InvalidChain {
				return nil
			}

			return render.NewRegistryRenderer(cmd.OutOrStdout()).Render(render.RegistryView{
				ChainID:  result.ChainID,
				Registry: result.Registry,
				Path:     result.RegistryPath,
			})
		},
	}

	cmd.Flags().StringVar(&mythsDAO, "mythsdao", "", "The myths DAO contract address (defaults to the deployer)")
	addSuiteFlags(cmd.Flags(), &suite, usecase.DefaultLocalSuiteParams())

	return cmd
}

// NewDeployCICmd creates the automated deployment command used by CI
func NewDeployCICmd() *cobra.Command {
	var (
		weth     string
		mythsDAO string
		suite    usecase.SuiteParams
	)

	cmd := &cobra.Command{
		Use:   "deploy-ci",
		Short: "Deploy without prompts and write logs/deploy.json",
		Long: `Run deploy automatically and record the descriptor, seeder and token
addresses together with $GITHUB_SHA in logs/deploy.json.`,
		Args: cobra.NoArgs,
		Annotations: map[string]string{
			annotationPlainOutput: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.DeployCIParams{Suite: suite, GitHubSHA: os.Getenv("GITHUB_SHA")}
			if params.WETH, err = parseAddress("weth", weth); err != nil {
				return err
			}
			if params.MythsDAO, err = parseAddress("mythsdao", mythsDAO); err != nil {
				return err
			}

			result, err := app.DeployCI.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if err := render.NewRegistryRenderer(cmd.OutOrStdout()).Render(render.RegistryView{
				ChainID:  result.Deployment.ChainID,
				Registry: result.Deployment.Registry,
				Path:     result.Deployment.RegistryPath,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deploy log written to %s\n", result.LogPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&weth, "weth", "", "The WETH contract address (defaults to the CI network WETH)")
	cmd.Flags().StringVar(&mythsDAO, "mythsdao", "", "The myths DAO contract address (defaults to the deployer)")
	addSuiteFlags(cmd.Flags(), &suite, usecase.DefaultSuiteParams())

	return cmd
}
