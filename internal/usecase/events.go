package usecase

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/mythsdao/myths-deploy/internal/domain/models"
)

// eventArgument decodes log and returns its integer argument name.
func eventArgument(contractABI *abi.ABI, log *types.Log, name string) (*big.Int, error) {
	event, args, err := models.DecodeLog(contractABI, log)
	if err != nil {
		return nil, fmt.Errorf("failed to decode log: %w", err)
	}
	value, ok := args[name].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("event %s has no integer argument %s", event, name)
	}
	return value, nil
}
