package models

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"
)

// DecodeLog decodes an event log into its name and arguments, indexed and
// non-indexed alike.
func DecodeLog(contractABI *abi.ABI, log *types.Log) (string, map[string]any, error) {
	if len(log.Topics) == 0 {
		return "", nil, fmt.Errorf("anonymous log at index %d", log.Index)
	}
	event, err := contractABI.EventByID(log.Topics[0])
	if err != nil {
		return "", nil, err
	}

	out := make(map[string]any)
	if len(log.Data) > 0 {
		if err := contractABI.UnpackIntoMap(out, event.Name, log.Data); err != nil {
			return "", nil, fmt.Errorf("failed to unpack %s data: %w", event.Name, err)
		}
	}

	var indexed abi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopicsIntoMap(out, indexed, log.Topics[1:]); err != nil {
		return "", nil, fmt.Errorf("failed to parse %s topics: %w", event.Name, err)
	}
	return event.Name, out, nil
}
