package contracts

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"strikebench/internal/route"
)

// approval mirrors the engine's approve_BKoIou settings tuple.
type approval struct {
	Approved bool `abi:"approved"`
}

// Router submits route commands through RouterApprove and operator approvals to the engine.
type Router struct {
	backend   Backend
	engine    common.Address
	router    common.Address
	engineABI abi.ABI
	routerABI abi.ABI
}

var _ route.Engine = (*Router)(nil)

// NewRouter binds deployed engine and router addresses using the built-in ABIs.
func NewRouter(backend Backend, engine, router common.Address) (*Router, error) {
	engineABI, err := EngineABI()
	if err != nil {
		return nil, fmt.Errorf("parse engine abi: %w", err)
	}
	routerABI, err := RouterABI()
	if err != nil {
		return nil, fmt.Errorf("parse router abi: %w", err)
	}
	return NewRouterWithABI(backend, engine, router, engineABI, routerABI), nil
}

// NewRouterWithABI binds with ABIs taken from compiled artifacts.
func NewRouterWithABI(backend Backend, engine, router common.Address, engineABI, routerABI abi.ABI) *Router {
	return &Router{
		backend:   backend,
		engine:    engine,
		router:    router,
		engineABI: engineABI,
		routerABI: routerABI,
	}
}

// Route simulates cmd from the acting account and submits it through the router.
func (r *Router) Route(ctx context.Context, from common.Address, cmd route.Command) (*types.Receipt, error) {
	data, err := PackRoute(r.routerABI, cmd)
	if err != nil {
		return nil, err
	}
	return simulateAndSend(ctx, r.backend, from, r.router, data)
}

// Approve sets spender's operator approval for owner at the engine.
func (r *Router) Approve(ctx context.Context, owner, spender common.Address, approved bool) (*types.Receipt, error) {
	data, err := r.engineABI.Pack(EngineApproveMethod, spender, approval{Approved: approved})
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", EngineApproveMethod, err)
	}
	return simulateAndSend(ctx, r.backend, owner, r.engine, data)
}

// PackRoute ABI-encodes route(strikes, account, credits, debits).
func PackRoute(parsed abi.ABI, cmd route.Command) ([]byte, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("pack route: %w", err)
	}
	data, err := parsed.Pack("route", cmd.Args()...)
	if err != nil {
		return nil, fmt.Errorf("pack route: %w", err)
	}
	return data, nil
}
