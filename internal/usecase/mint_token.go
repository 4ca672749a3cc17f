package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// DefaultLocalToken is where MythsToken lands on a fresh development node
var DefaultLocalToken = common.HexToAddress("0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9")

// MintToken mints a new token through the token contract
type MintToken struct {
	client    ChainClient
	artifacts ArtifactRepository
	progress  ProgressSink
}

// NewMintToken creates a new mint use case
func NewMintToken(client ChainClient, artifacts ArtifactRepository, progress ProgressSink) *MintToken {
	return &MintToken{
		client:    client,
		artifacts: artifacts,
		progress:  progress,
	}
}

// MintTokenParams contains parameters for minting
type MintTokenParams struct {
	Token common.Address
}

// MintTokenResult contains the minted token
type MintTokenResult struct {
	TokenID *big.Int
	TxHash  common.Hash
}

// Run calls mint() and reads the token id from the creation event, the
// second log of the receipt.
func (uc *MintToken) Run(ctx context.Context, params MintTokenParams) (*MintTokenResult, error) {
	token := params.Token
	if token == (common.Address{}) {
		token = DefaultLocalToken
	}

	artifact, err := uc.artifacts.GetArtifact(ctx, MythsToken)
	if err != nil {
		return nil, err
	}

	receipt, err := uc.client.Transact(ctx, CallRequest{
		Address: token,
		ABI:     &artifact.ABI,
		Method:  "mint",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mint: %w", err)
	}

	if len(receipt.Logs) < 2 {
		return nil, fmt.Errorf("mint transaction %s emitted %d logs, expected a creation event", receipt.TxHash.Hex(), len(receipt.Logs))
	}
	tokenID, err := eventArgument(&artifact.ABI, receipt.Logs[1], "tokenId")
	if err != nil {
		return nil, err
	}

	uc.progress.Info(fmt.Sprintf("Myth minted with ID: %s.", tokenID.String()))
	return &MintTokenResult{TokenID: tokenID, TxHash: receipt.TxHash}, nil
}
