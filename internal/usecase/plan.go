package usecase

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mythsdao/myths-deploy/internal/domain/models"
)

// Contract names of the suite
const (
	WETH                        = "WETH"
	NFTDescriptor               = "NFTDescriptor"
	MythsDescriptor             = "MythsDescriptor"
	MythsSeeder                 = "MythsSeeder"
	MythsToken                  = "MythsToken"
	MythsAuctionHouse           = "MythsAuctionHouse"
	MythsAuctionHouseProxyAdmin = "MythsAuctionHouseProxyAdmin"
	MythsAuctionHouseProxy      = "MythsAuctionHouseProxy"
	MythsDAOExecutor            = "MythsDAOExecutor"
	MythsDAOLogicV1             = "MythsDAOLogicV1"
	MythsDAOProxy               = "MythsDAOProxy"
)

// SuiteParams are the governance and auction parameters of a deployment
type SuiteParams struct {
	MythsDAO      common.Address
	ProxyRegistry common.Address
	// WETH is ignored by the local plan, which deploys its own.
	WETH common.Address

	AuctionTimeBuffer                uint64
	AuctionReservePrice              uint64
	AuctionMinIncrementBidPercentage uint64
	AuctionDuration                  uint64
	TimelockDelay                    uint64
	VotingPeriod                     uint64
	VotingDelay                      uint64
	ProposalThresholdBps             uint64
	QuorumVotesBps                   uint64
}

// DefaultSuiteParams are the defaults of a public network deployment
func DefaultSuiteParams() SuiteParams {
	return SuiteParams{
		AuctionTimeBuffer:                5 * 60,
		AuctionReservePrice:              1,
		AuctionMinIncrementBidPercentage: 2,
		AuctionDuration:                  60 * 60 * 24,
		TimelockDelay:                    60 * 60 * 24 * 2,
		VotingPeriod:                     26585, // ~4 days of 13s blocks
		VotingDelay:                      19938, // ~3 days of 13s blocks
		ProposalThresholdBps:             100,
		QuorumVotesBps:                   1_000,
	}
}

// DefaultLocalSuiteParams are tuned for a development node
func DefaultLocalSuiteParams() SuiteParams {
	return SuiteParams{
		AuctionTimeBuffer:                30,
		AuctionReservePrice:              1,
		AuctionMinIncrementBidPercentage: 5,
		AuctionDuration:                  60 * 2,
		TimelockDelay:                    60 * 60 * 24 * 2,
		VotingPeriod:                     4 * 60 * 24 * 3,
		VotingDelay:                      1,
		ProposalThresholdBps:             500,
		QuorumVotesBps:                   1_000,
	}
}

// BuildPublicPlan returns the deployment plan for a public network.
func BuildPublicPlan(p SuiteParams) *models.Plan {
	return models.NewPlan(suiteSpecs(p, models.Lit(p.WETH), true)...)
}

// BuildLocalPlan returns the plan for a development node, which deploys WETH first.
func BuildLocalPlan(p SuiteParams) *models.Plan {
	specs := append([]models.ContractSpec{{Name: WETH}}, suiteSpecs(p, models.AddressOf(WETH), false)...)
	return models.NewPlan(specs...)
}

func suiteSpecs(p SuiteParams, weth models.Arg, public bool) []models.ContractSpec {
	return []models.ContractSpec{
		{Name: NFTDescriptor},
		{
			Name:      MythsDescriptor,
			Libraries: models.LibraryLinks{NFTDescriptor: models.AddressOf(NFTDescriptor)},
		},
		{Name: MythsSeeder},
		{
			Name: MythsToken,
			Args: []models.Arg{
				models.Lit(p.MythsDAO),
				models.PredictedAddressOf(MythsAuctionHouseProxy),
				models.AddressOf(MythsDescriptor),
				models.AddressOf(MythsSeeder),
				models.Lit(p.ProxyRegistry),
			},
		},
		{Name: MythsAuctionHouse, WaitForConfirmation: true},
		{Name: MythsAuctionHouseProxyAdmin},
		{
			Name: MythsAuctionHouseProxy,
			Args: []models.Arg{
				models.AddressOf(MythsAuctionHouse),
				models.AddressOf(MythsAuctionHouseProxyAdmin),
				auctionHouseInitializer(p, weth),
			},
			WaitForConfirmation: public,
			Predicted:           true,
			Validate:            models.MatchesPrediction(MythsAuctionHouseProxy),
		},
		{
			Name: MythsDAOExecutor,
			Args: []models.Arg{
				models.PredictedAddressOf(MythsDAOProxy),
				models.Lit(p.TimelockDelay),
			},
		},
		{Name: MythsDAOLogicV1, WaitForConfirmation: true},
		{
			Name: MythsDAOProxy,
			Args: []models.Arg{
				models.AddressOf(MythsDAOExecutor),
				models.AddressOf(MythsToken),
				models.Lit(p.MythsDAO),
				models.AddressOf(MythsDAOExecutor),
				models.AddressOf(MythsDAOLogicV1),
				models.Lit(p.VotingPeriod),
				models.Lit(p.VotingDelay),
				models.Lit(p.ProposalThresholdBps),
				models.Lit(p.QuorumVotesBps),
			},
			WaitForConfirmation: public,
			Predicted:           true,
			Validate:            models.MatchesPrediction(MythsDAOProxy),
		},
	}
}

// auctionHouseInitializer encodes the proxy's initialize call with the ABI of
// the deployed auction house implementation.
func auctionHouseInitializer(p SuiteParams, weth models.Arg) models.Arg {
	deps := append([]string{MythsAuctionHouse, MythsToken}, weth.Dependencies()...)
	return models.Defer(deps, func(rc *models.ResolveContext) (any, error) {
		token := rc.Address(MythsToken)
		wethAddr, err := weth.Resolve(rc)
		if err != nil {
			return nil, err
		}
		impl, ok := rc.Registry().Get(MythsAuctionHouse)
		if !ok {
			rc.Address(MythsAuctionHouse)
			return []byte{}, nil
		}
		if impl.Instance == nil || impl.Instance.ABI == nil {
			return nil, fmt.Errorf("no ABI recorded for %s", MythsAuctionHouse)
		}
		return models.EncodeCall(impl.Instance.ABI, "initialize",
			token,
			wethAddr,
			p.AuctionTimeBuffer,
			p.AuctionReservePrice,
			p.AuctionMinIncrementBidPercentage,
			p.AuctionDuration,
		)
	})
}
