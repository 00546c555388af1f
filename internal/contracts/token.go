package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"strikebench/internal/chain"
)

// Token is a deployed mintable ERC20 test token.
type Token struct {
	backend Backend
	abi     abi.ABI
	Address common.Address
}

// NewToken binds an existing token address.
func NewToken(backend Backend, address common.Address) (*Token, error) {
	parsed, err := MockERC20ABI()
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}
	return &Token{backend: backend, abi: parsed, Address: address}, nil
}

// DeployToken deploys a fresh token from its artifact.
func DeployToken(ctx context.Context, backend Backend, from common.Address, artifact Artifact) (*Token, error) {
	address, err := deploy(ctx, backend, from, artifact)
	if err != nil {
		return nil, err
	}
	return NewToken(backend, address)
}

// Mint mints amount to the recipient; the caller pays gas.
func (t *Token) Mint(ctx context.Context, from, to common.Address, amount *big.Int) (*types.Receipt, error) {
	return t.transact(ctx, from, "mint", to, amount)
}

// Approve sets owner's allowance for spender.
func (t *Token) Approve(ctx context.Context, owner, spender common.Address, amount *big.Int) (*types.Receipt, error) {
	return t.transact(ctx, owner, "approve", spender, amount)
}

// BalanceOf returns the token balance of account at the latest block.
func (t *Token) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	values, err := callMethod(ctx, t.backend, t.Address, t.abi, "balanceOf", account)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("balanceOf: empty result")
	}
	return asBigInt(values[0])
}

func (t *Token) transact(ctx context.Context, from common.Address, method string, args ...interface{}) (*types.Receipt, error) {
	data, err := t.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	to := t.Address
	receipt, err := t.backend.Transact(ctx, chain.TxArgs{From: from, To: &to, Data: data})
	if err != nil {
		return receipt, fmt.Errorf("%s %s: %w", method, t.Address.Hex(), err)
	}
	return receipt, nil
}

// DeployEngine deploys the strike engine.
func DeployEngine(ctx context.Context, backend Backend, from common.Address, artifact Artifact) (common.Address, error) {
	return deploy(ctx, backend, from, artifact)
}

// DeployRouter deploys RouterApprove bound to the engine address.
func DeployRouter(ctx context.Context, backend Backend, from common.Address, artifact Artifact, engine common.Address) (common.Address, error) {
	return deploy(ctx, backend, from, artifact, engine)
}

func deploy(ctx context.Context, backend Backend, from common.Address, artifact Artifact, args ...interface{}) (common.Address, error) {
	code, err := artifact.CreationCode(args...)
	if err != nil {
		return common.Address{}, err
	}
	address, _, err := backend.Deploy(ctx, from, code)
	if err != nil {
		return common.Address{}, fmt.Errorf("deploy %s: %w", artifact.Name, err)
	}
	return address, nil
}
