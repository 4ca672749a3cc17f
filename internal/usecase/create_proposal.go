package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
)

const testProposalDescription = "# Test Proposal\n## This is a **test**."

// CreateProposal submits a test proposal to the DAO
type CreateProposal struct {
	client    ChainClient
	artifacts ArtifactRepository
	progress  ProgressSink
}

// NewCreateProposal creates a new proposal use case
func NewCreateProposal(client ChainClient, artifacts ArtifactRepository, progress ProgressSink) *CreateProposal {
	return &CreateProposal{
		client:    client,
		artifacts: artifacts,
		progress:  progress,
	}
}

// CreateProposalParams contains the DAO proxy receiving the proposal
type CreateProposalParams struct {
	DAOProxy common.Address
}

// CreateProposalResult contains the created proposal
type CreateProposalResult struct {
	ProposalID *big.Int
	TxHash     common.Hash
}

// Run proposes sending 1 ether from the treasury to the deployer.
func (uc *CreateProposal) Run(ctx context.Context, p CreateProposalParams) (*CreateProposalResult, error) {
	artifact, err := uc.artifacts.GetArtifact(ctx, MythsDAOLogicV1)
	if err != nil {
		return nil, err
	}

	proposer := uc.client.Deployer()
	receipt, err := uc.client.Transact(ctx, CallRequest{
		Address: p.DAOProxy,
		ABI:     &artifact.ABI,
		Method:  "propose",
		Args: []any{
			[]common.Address{proposer},
			[]*big.Int{big.NewInt(params.Ether)},
			[]string{""},
			[][]byte{{}},
			testProposalDescription,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}
	if len(receipt.Logs) == 0 {
		return nil, fmt.Errorf("proposal transaction %s emitted no events", receipt.TxHash.Hex())
	}

	result := &CreateProposalResult{TxHash: receipt.TxHash}
	if id, err := eventArgument(&artifact.ABI, receipt.Logs[0], "id"); err == nil {
		result.ProposalID = id
		uc.progress.Info(fmt.Sprintf("Proposal created with ID: %s.", id.String()))
	} else {
		uc.progress.Info("Proposal created")
	}
	return result, nil
}
