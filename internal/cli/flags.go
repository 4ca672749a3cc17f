package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"

	"github.com/mythsdao/myths-deploy/internal/usecase"
)

// parseAddress converts an address flag. An empty value is the zero address.
func parseAddress(flag, value string) (common.Address, error) {
	if value == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("invalid address for --%s: %s", flag, value)
	}
	return common.HexToAddress(value), nil
}

// requireAddress is parseAddress for flags without a default.
func requireAddress(flag, value string) (common.Address, error) {
	if value == "" {
		return common.Address{}, fmt.Errorf("--%s is required", flag)
	}
	return parseAddress(flag, value)
}

// addSuiteFlags registers the auction and governance parameters with the given defaults.
func addSuiteFlags(flags *pflag.FlagSet, p *usecase.SuiteParams, defaults usecase.SuiteParams) {
	flags.Uint64Var(&p.AuctionTimeBuffer, "auction-time-buffer", defaults.AuctionTimeBuffer, "The auction time buffer (seconds)")
	flags.Uint64Var(&p.AuctionReservePrice, "auction-reserve-price", defaults.AuctionReservePrice, "The auction reserve price (wei)")
	flags.Uint64Var(&p.AuctionMinIncrementBidPercentage, "auction-min-increment-bid-percentage", defaults.AuctionMinIncrementBidPercentage, "The auction min increment bid percentage (out of 100)")
	flags.Uint64Var(&p.AuctionDuration, "auction-duration", defaults.AuctionDuration, "The auction duration (seconds)")
	flags.Uint64Var(&p.TimelockDelay, "timelock-delay", defaults.TimelockDelay, "The timelock delay (seconds)")
	flags.Uint64Var(&p.VotingPeriod, "voting-period", defaults.VotingPeriod, "The voting period (blocks)")
	flags.Uint64Var(&p.VotingDelay, "voting-delay", defaults.VotingDelay, "The voting delay (blocks)")
	flags.Uint64Var(&p.ProposalThresholdBps, "proposal-threshold-bps", defaults.ProposalThresholdBps, "The proposal threshold (basis points)")
	flags.Uint64Var(&p.QuorumVotesBps, "quorum-votes-bps", defaults.QuorumVotesBps, "Votes required for quorum (basis points)")
}
