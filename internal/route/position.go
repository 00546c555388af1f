package route

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var positionArgs = abi.Arguments{
	{Type: mustNewType("address")},
	{Type: mustNewType("address")},
	{Type: mustNewType("uint256")},
}

// PositionID returns keccak256(abi.encode(token0, token1, ratio)).
func PositionID(pair TokenPair, ratio *big.Int) (common.Hash, error) {
	if err := validateRatio(ratio); err != nil {
		return common.Hash{}, err
	}
	encoded, err := positionArgs.Pack(pair.Token0, pair.Token1, ratio)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(encoded), nil
}

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}
