package models

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Predictions maps contract names to their expected CREATE addresses.
type Predictions map[string]common.Address

// PredictAddress returns the address of the contract created by deployer
// offset transactions after nonce.
func PredictAddress(deployer common.Address, nonce, offset uint64) common.Address {
	return crypto.CreateAddress(deployer, nonce+offset)
}

// PredictAddresses computes the prediction of every offset.
func PredictAddresses(deployer common.Address, nonce uint64, offsets map[string]uint64) Predictions {
	predictions := make(Predictions, len(offsets))
	for name, offset := range offsets {
		predictions[name] = PredictAddress(deployer, nonce, offset)
	}
	return predictions
}
