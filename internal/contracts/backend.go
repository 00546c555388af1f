package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"strikebench/internal/chain"
)

// Backend is the subset of chain.Client the bindings need.
type Backend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	Simulate(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
	Transact(ctx context.Context, args chain.TxArgs) (*types.Receipt, error)
	Deploy(ctx context.Context, from common.Address, code []byte) (common.Address, *types.Receipt, error)
}

var _ Backend = (*chain.Client)(nil)

// simulateAndSend dry-runs the call from the acting account, then submits the
// same payload and waits for inclusion. A simulated revert stops before sending.
func simulateAndSend(ctx context.Context, backend Backend, from, to common.Address, data []byte) (*types.Receipt, error) {
	msg := ethereum.CallMsg{From: from, To: &to, Data: data}
	if _, err := backend.Simulate(ctx, msg); err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	receipt, err := backend.Transact(ctx, chain.TxArgs{From: from, To: &to, Data: data})
	if err != nil {
		return receipt, fmt.Errorf("submit: %w", err)
	}
	return receipt, nil
}

func callMethod(ctx context.Context, backend Backend, to common.Address, parsed abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &to, Data: data}
	resp, err := backend.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}
