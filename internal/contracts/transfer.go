package contracts

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"strikebench/internal/model"
)

// DecodeTransfers extracts ERC20 Transfer events from receipt logs, skipping
// logs that are not Transfers or come from untracked tokens.
func DecodeTransfers(logs []*types.Log, tokens map[common.Address]bool) ([]model.TokenTransfer, error) {
	parsed, err := MockERC20ABI()
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}
	event := parsed.Events["Transfer"]

	transfers := make([]model.TokenTransfer, 0, len(logs))
	for _, log := range logs {
		if log == nil || len(log.Topics) == 0 || log.Topics[0] != event.ID {
			continue
		}
		if len(tokens) > 0 && !tokens[log.Address] {
			continue
		}
		transfer, err := decodeTransfer(event, log)
		if err != nil {
			return nil, fmt.Errorf("log %d: %w", log.Index, err)
		}
		transfers = append(transfers, transfer)
	}
	return transfers, nil
}

func decodeTransfer(event abi.Event, log *types.Log) (model.TokenTransfer, error) {
	if len(log.Topics) != 3 {
		return model.TokenTransfer{}, fmt.Errorf("unexpected transfer topics: %d", len(log.Topics))
	}

	var indexed struct {
		From common.Address
		To   common.Address
	}
	if err := abi.ParseTopics(&indexed, indexedArguments(event.Inputs), log.Topics[1:]); err != nil {
		return model.TokenTransfer{}, fmt.Errorf("parse topics: %w", err)
	}

	values, err := event.Inputs.NonIndexed().Unpack(log.Data)
	if err != nil {
		return model.TokenTransfer{}, fmt.Errorf("unpack data: %w", err)
	}
	if len(values) != 1 {
		return model.TokenTransfer{}, fmt.Errorf("unexpected transfer values: %d", len(values))
	}
	amount, err := asBigInt(values[0])
	if err != nil {
		return model.TokenTransfer{}, err
	}

	return model.TokenTransfer{
		Token:  log.Address.Hex(),
		From:   indexed.From.Hex(),
		To:     indexed.To.Hex(),
		Amount: amount.String(),
	}, nil
}

func indexedArguments(args abi.Arguments) abi.Arguments {
	out := make(abi.Arguments, 0, len(args))
	for _, arg := range args {
		if arg.Indexed {
			out = append(out, arg)
		}
	}
	return out
}
