package models

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// DeployLog is the CI deployment summary written to logs/deploy.json
type DeployLog struct {
	ContractAddresses map[string]common.Address `json:"contractAddresses"`
	GitHub            DeployLogGitHub           `json:"gitHub"`
}

type DeployLogGitHub struct {
	SHA string `json:"sha"`
}

// SDKAddresses is the per-chain address table of the SDK
type SDKAddresses struct {
	MythsToken                  common.Address `json:"mythsToken"`
	MythsSeeder                 common.Address `json:"mythsSeeder"`
	MythsDescriptor             common.Address `json:"mythsDescriptor"`
	NFTDescriptor               common.Address `json:"nftDescriptor"`
	MythsAuctionHouse           common.Address `json:"mythsAuctionHouse"`
	MythsAuctionHouseProxy      common.Address `json:"mythsAuctionHouseProxy"`
	MythsAuctionHouseProxyAdmin common.Address `json:"mythsAuctionHouseProxyAdmin"`
	MythsDAOExecutor            common.Address `json:"mythsDaoExecutor"`
	MythsDAOProxy               common.Address `json:"mythsDAOProxy"`
	MythsDAOLogicV1             common.Address `json:"mythsDAOLogicV1"`
}

// SubgraphSource is one data source of the subgraph config
type SubgraphSource struct {
	Address    common.Address `json:"address"`
	StartBlock uint64         `json:"startBlock"`
}

// SubgraphConfig is written to <network>-fork.json in the subgraph project
type SubgraphConfig struct {
	Network           string         `json:"network"`
	MythsToken        SubgraphSource `json:"mythsToken"`
	MythsAuctionHouse SubgraphSource `json:"mythsAuctionHouse"`
	MythsDAO          SubgraphSource `json:"mythsDAO"`
}

// ImageData holds the encoded art loaded into the descriptor
type ImageData struct {
	BgColors []string         `json:"bgcolors"`
	Palette  []string         `json:"palette"`
	Images   ImageDataSection `json:"images"`
}

type ImageDataSection struct {
	Bodies      []EncodedImage `json:"bodies"`
	Accessories []EncodedImage `json:"accessories"`
	Heads       []EncodedImage `json:"heads"`
	Glasses     []EncodedImage `json:"glasses"`
}

// EncodedImage is one RLE encoded part; only Data is sent on chain
type EncodedImage struct {
	Filename string `json:"filename"`
	Data     string `json:"data"`
}

// UnmarshalJSON also accepts a bare data string.
func (e *EncodedImage) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		e.Data = s
		return nil
	}
	type raw EncodedImage
	return json.Unmarshal(b, (*raw)(e))
}

// Account is a funded development account
type Account struct {
	Address    common.Address
	PrivateKey string
}
