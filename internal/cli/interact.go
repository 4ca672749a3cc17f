package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mythsdao/myths-deploy/internal/cli/render"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

// NewMintMythCmd creates the mint command
func NewMintMythCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "mint-myth",
		Short: "Mint a Myth",
		Long: `Call mint() on the token and print the ID of the minted Myth.
The token defaults to its address on a fresh local node.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			address, err := parseAddress("myths-token", token)
			if err != nil {
				return err
			}

			_, err = app.MintToken.Run(cmd.Context(), usecase.MintTokenParams{Token: address})
			return err
		},
	}

	cmd.Flags().StringVar(&token, "myths-token", "", fmt.Sprintf("The `MythsToken` contract address (default %s)", usecase.DefaultLocalToken.Hex()))

	return cmd
}

// NewPopulateDescriptorCmd creates the descriptor population command
func NewPopulateDescriptorCmd() *cobra.Command {
	var nftDescriptor, mythsDescriptor string

	cmd := &cobra.Command{
		Use:   "populate-descriptor",
		Short: "Upload the art to the descriptor",
		Long: `Send backgrounds, the color palette and every image part from the image
data file to the descriptor.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var params usecase.PopulateDescriptorParams
			if params.NFTDescriptor, err = parseAddress("nft-descriptor", nftDescriptor); err != nil {
				return err
			}
			if params.MythsDescriptor, err = requireAddress("myths-descriptor", mythsDescriptor); err != nil {
				return err
			}

			result, err := app.PopulateDescriptor.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("Sent %d transactions", result.Transactions)))
			return nil
		},
	}

	cmd.Flags().StringVar(&nftDescriptor, "nft-descriptor", "", "The `NFTDescriptor` library address")
	cmd.Flags().StringVar(&mythsDescriptor, "myths-descriptor", "", "The `MythsDescriptor` contract address")

	return cmd
}

// NewCreateProposalCmd creates the test proposal command
func NewCreateProposalCmd() *cobra.Command {
	var daoProxy string

	cmd := &cobra.Command{
		Use:   "create-proposal",
		Short: "Create a test proposal on the DAO",
		Long: `Propose a transfer of 1 ether from the treasury to the deployer, so a
fresh DAO has something to vote on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			address, err := requireAddress("dao-proxy", daoProxy)
			if err != nil {
				return err
			}

			result, err := app.CreateProposal.Run(cmd.Context(), usecase.CreateProposalParams{DAOProxy: address})
			if err != nil {
				return err
			}
			if result.ProposalID != nil {
				fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("Proposal %s created in %s", result.ProposalID, result.TxHash.Hex())))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&daoProxy, "dao-proxy", "", "The `MythsDAOProxy` contract address")

	return cmd
}
