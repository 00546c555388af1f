package bench

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"strikebench/internal/contracts"
	"strikebench/internal/route"
)

// Provisioner deploys and funds everything a scenario needs before its steps run.
type Provisioner interface {
	DeployToken(ctx context.Context) (common.Address, error)
	Mint(ctx context.Context, token, to common.Address, amount *big.Int) error
	ApproveToken(ctx context.Context, token, owner, spender common.Address, amount *big.Int) error
	BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error)
	DeployEngine(ctx context.Context) (common.Address, error)
	DeployRouter(ctx context.Context, engine common.Address) (common.Address, error)
	// Bind returns the engine capability for the deployed contracts.
	Bind(engine, router common.Address) (route.Engine, error)
}

// ChainProvisioner provisions against a live node using compiled artifacts.
type ChainProvisioner struct {
	backend   contracts.Backend
	artifacts contracts.Artifacts
	deployer  common.Address
}

var _ Provisioner = (*ChainProvisioner)(nil)

func NewChainProvisioner(backend contracts.Backend, artifacts contracts.Artifacts, deployer common.Address) *ChainProvisioner {
	return &ChainProvisioner{
		backend:   backend,
		artifacts: artifacts,
		deployer:  deployer,
	}
}

func (p *ChainProvisioner) DeployToken(ctx context.Context) (common.Address, error) {
	token, err := contracts.DeployToken(ctx, p.backend, p.deployer, p.artifacts.Token)
	if err != nil {
		return common.Address{}, err
	}
	return token.Address, nil
}

func (p *ChainProvisioner) Mint(ctx context.Context, token, to common.Address, amount *big.Int) error {
	bound, err := contracts.NewToken(p.backend, token)
	if err != nil {
		return err
	}
	_, err = bound.Mint(ctx, p.deployer, to, amount)
	return err
}

func (p *ChainProvisioner) ApproveToken(ctx context.Context, token, owner, spender common.Address, amount *big.Int) error {
	bound, err := contracts.NewToken(p.backend, token)
	if err != nil {
		return err
	}
	_, err = bound.Approve(ctx, owner, spender, amount)
	return err
}

func (p *ChainProvisioner) BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error) {
	bound, err := contracts.NewToken(p.backend, token)
	if err != nil {
		return nil, err
	}
	return bound.BalanceOf(ctx, account)
}

func (p *ChainProvisioner) DeployEngine(ctx context.Context) (common.Address, error) {
	return contracts.DeployEngine(ctx, p.backend, p.deployer, p.artifacts.Engine)
}

func (p *ChainProvisioner) DeployRouter(ctx context.Context, engine common.Address) (common.Address, error) {
	return contracts.DeployRouter(ctx, p.backend, p.deployer, p.artifacts.Router, engine)
}

func (p *ChainProvisioner) Bind(engine, router common.Address) (route.Engine, error) {
	engineABI := p.artifacts.Engine.ABI
	routerABI := p.artifacts.Router.ABI
	if _, ok := engineABI.Methods[contracts.EngineApproveMethod]; !ok {
		return nil, fmt.Errorf("engine artifact has no %s method", contracts.EngineApproveMethod)
	}
	if _, ok := routerABI.Methods["route"]; !ok {
		return nil, fmt.Errorf("router artifact has no route method")
	}
	return contracts.NewRouterWithABI(p.backend, engine, router, engineABI, routerABI), nil
}
