package route

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Engine is the capability surface of the strike engine as seen through its router.
type Engine interface {
	// Route simulates and submits cmd from the given account.
	Route(ctx context.Context, from common.Address, cmd Command) (*types.Receipt, error)
	// Approve grants or revokes spender's right to route on owner's behalf.
	Approve(ctx context.Context, owner, spender common.Address, approved bool) (*types.Receipt, error)
}
