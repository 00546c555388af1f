package contracts

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// EngineApproveMethod is the engine's selector-mined operator approval function.
const EngineApproveMethod = "approve_BKoIou"

const strikeOpsComponents = `[
  {"internalType": "address", "name": "token0", "type": "address"},
  {"internalType": "address", "name": "token1", "type": "address"},
  {"internalType": "uint256", "name": "ratio", "type": "uint256"},
  {"internalType": "struct Strike", "name": "strikeBefore", "type": "tuple", "components": [
    {"internalType": "uint8", "name": "token", "type": "uint8"},
    {"internalType": "uint128", "name": "amount", "type": "uint128"},
    {"internalType": "uint128", "name": "liquidity", "type": "uint128"}
  ]},
  {"internalType": "struct Strike", "name": "strikeAfter", "type": "tuple", "components": [
    {"internalType": "uint8", "name": "token", "type": "uint8"},
    {"internalType": "uint128", "name": "amount", "type": "uint128"},
    {"internalType": "uint128", "name": "liquidity", "type": "uint128"}
  ]}
]`

const routeInputs = `[
  {"internalType": "struct StrikeOp[]", "name": "strikes", "type": "tuple[]", "components": ` + strikeOpsComponents + `},
  {"internalType": "address", "name": "account", "type": "address"},
  {"internalType": "struct Credit[]", "name": "credits", "type": "tuple[]", "components": [
    {"internalType": "address", "name": "token", "type": "address"},
    {"internalType": "uint256", "name": "amount", "type": "uint256"}
  ]},
  {"internalType": "struct Debit[]", "name": "debits", "type": "tuple[]", "components": [
    {"internalType": "bytes32", "name": "id", "type": "bytes32"},
    {"internalType": "uint256", "name": "amount", "type": "uint256"}
  ]}
]`

const engineABIJSON = `[
  {
    "inputs": ` + routeInputs + `,
    "name": "route",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "address", "name": "spender", "type": "address"},
      {"internalType": "struct Approval", "name": "approval", "type": "tuple", "components": [
        {"internalType": "bool", "name": "approved", "type": "bool"}
      ]}
    ],
    "name": "` + EngineApproveMethod + `",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]`

const routerABIJSON = `[
  {
    "inputs": [{"internalType": "address", "name": "engine", "type": "address"}],
    "stateMutability": "nonpayable",
    "type": "constructor"
  },
  {
    "inputs": ` + routeInputs + `,
    "name": "route",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]`

var (
	engineABI     abi.ABI
	engineABIOnce sync.Once
	engineABIErr  error

	routerABI     abi.ABI
	routerABIOnce sync.Once
	routerABIErr  error
)

// EngineABI returns the built-in engine ABI (route + operator approval).
func EngineABI() (abi.ABI, error) {
	engineABIOnce.Do(func() {
		engineABI, engineABIErr = abi.JSON(strings.NewReader(engineABIJSON))
	})
	return engineABI, engineABIErr
}

// RouterABI returns the built-in RouterApprove ABI.
func RouterABI() (abi.ABI, error) {
	routerABIOnce.Do(func() {
		routerABI, routerABIErr = abi.JSON(strings.NewReader(routerABIJSON))
	})
	return routerABI, routerABIErr
}
