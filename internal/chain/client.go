package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

const defaultPollInterval = 100 * time.Millisecond

var (
	// ErrNoContractAddress is returned when a deployment receipt carries no contract address.
	ErrNoContractAddress = errors.New("no contract address in receipt")
	// ErrTransactionFailed is returned when a mined receipt has a failed status.
	ErrTransactionFailed = errors.New("transaction failed")
)

// Client wraps go-ethereum RPC and provides helper methods.
type Client struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client

	pollInterval time.Duration
}

// NewClient creates a new chain client from the RPC URL.
func NewClient(ctx context.Context, rpcURL string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	return NewClientFromRPC(rpcClient), nil
}

// NewClientFromRPC wraps an already dialed RPC client.
func NewClientFromRPC(rpcClient *rpc.Client) *Client {
	return &Client{
		rpcClient:    rpcClient,
		ethClient:    ethclient.NewClient(rpcClient),
		pollInterval: defaultPollInterval,
	}
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// GetChainID returns the chain ID.
func (c *Client) GetChainID(ctx context.Context) (*big.Int, error) {
	return c.ethClient.ChainID(ctx)
}

// LatestBlockNumber returns the latest block number.
func (c *Client) LatestBlockNumber(ctx context.Context) (uint64, error) {
	return c.ethClient.BlockNumber(ctx)
}

// CallContract performs an eth_call for a contract method.
func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return c.ethClient.CallContract(ctx, msg, blockNumber)
}

// Simulate runs msg against the latest state. Reverts come back as *RevertError.
func (c *Client) Simulate(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	out, err := c.ethClient.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, asRevertError(err)
	}
	return out, nil
}

// TxArgs is the eth_sendTransaction payload for a node-managed account.
type TxArgs struct {
	From common.Address  `json:"from"`
	To   *common.Address `json:"to,omitempty"`
	Data hexutil.Bytes   `json:"data"`
	Gas  *hexutil.Uint64 `json:"gas,omitempty"`
}

// SendTransaction submits a transaction signed by the node on behalf of args.From.
func (c *Client) SendTransaction(ctx context.Context, args TxArgs) (common.Hash, error) {
	var hash common.Hash
	if err := c.rpcClient.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return common.Hash{}, asRevertError(err)
	}
	return hash, nil
}

// WaitReceipt polls until the transaction is included. It only stops when ctx is done.
func (c *Client) WaitReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.ethClient.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("receipt %s: %w", hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Transact sends a transaction, waits for its receipt, and checks the status.
func (c *Client) Transact(ctx context.Context, args TxArgs) (*types.Receipt, error) {
	hash, err := c.SendTransaction(ctx, args)
	if err != nil {
		return nil, err
	}
	receipt, err := c.WaitReceipt(ctx, hash)
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: %s", ErrTransactionFailed, hash.Hex())
	}
	return receipt, nil
}

// Deploy sends contract creation code and returns the new contract address.
func (c *Client) Deploy(ctx context.Context, from common.Address, code []byte) (common.Address, *types.Receipt, error) {
	receipt, err := c.Transact(ctx, TxArgs{From: from, Data: code})
	if err != nil {
		return common.Address{}, receipt, err
	}
	if receipt.ContractAddress == (common.Address{}) {
		return common.Address{}, receipt, ErrNoContractAddress
	}
	return receipt.ContractAddress, receipt, nil
}
