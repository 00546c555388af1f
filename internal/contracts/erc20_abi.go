package contracts

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const mockERC20ABIJSON = `[
  {"inputs": [{"name": "spender", "type": "address"}, {"name": "amount", "type": "uint256"}], "name": "approve", "outputs": [{"type": "bool"}], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"name": "owner", "type": "address"}, {"name": "spender", "type": "address"}], "name": "allowance", "outputs": [{"type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"name": "account", "type": "address"}], "name": "balanceOf", "outputs": [{"type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"name": "to", "type": "address"}, {"name": "amount", "type": "uint256"}], "name": "mint", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"name": "from", "type": "address"}, {"name": "amount", "type": "uint256"}], "name": "burn", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"anonymous": false, "inputs": [
    {"indexed": true, "name": "from", "type": "address"},
    {"indexed": true, "name": "to", "type": "address"},
    {"indexed": false, "name": "amount", "type": "uint256"}
  ], "name": "Transfer", "type": "event"},
  {"anonymous": false, "inputs": [
    {"indexed": true, "name": "owner", "type": "address"},
    {"indexed": true, "name": "spender", "type": "address"},
    {"indexed": false, "name": "amount", "type": "uint256"}
  ], "name": "Approval", "type": "event"}
]`

var (
	mockERC20ABI     abi.ABI
	mockERC20ABIOnce sync.Once
	mockERC20ABIErr  error
)

// MockERC20ABI returns the ABI of the mintable test token.
func MockERC20ABI() (abi.ABI, error) {
	mockERC20ABIOnce.Do(func() {
		mockERC20ABI, mockERC20ABIErr = abi.JSON(strings.NewReader(mockERC20ABIJSON))
	})
	return mockERC20ABI, mockERC20ABIErr
}
