package route

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// TokenPair is an ordered token pair with Token0 < Token1.
type TokenPair struct {
	Token0 common.Address `json:"token0"`
	Token1 common.Address `json:"token1"`
}

// NewTokenPair orders two token addresses canonically.
func NewTokenPair(a, b common.Address) (TokenPair, error) {
	if a == b {
		return TokenPair{}, fmt.Errorf("token pair requires distinct tokens: %s", a.Hex())
	}
	if bytes.Compare(a.Bytes(), b.Bytes()) > 0 {
		a, b = b, a
	}
	return TokenPair{Token0: a, Token1: b}, nil
}

// Ordered reports whether the pair is already in canonical order.
func (p TokenPair) Ordered() bool {
	return bytes.Compare(p.Token0.Bytes(), p.Token1.Bytes()) < 0
}

func (p TokenPair) String() string {
	return p.Token0.Hex() + "/" + p.Token1.Hex()
}
