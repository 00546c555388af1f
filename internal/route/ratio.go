package route

import (
	"fmt"
	"math/big"
	"strings"
)

// Q128 is the fixed-point scale of a strike ratio (price × 2^128).
var Q128 = new(big.Int).Lsh(big.NewInt(1), 128)

// RatioFromPrice converts a decimal price into a Q128 ratio, truncating toward zero.
func RatioFromPrice(price string) (*big.Int, error) {
	rat, ok := new(big.Rat).SetString(strings.TrimSpace(price))
	if !ok {
		return nil, fmt.Errorf("invalid price: %q", price)
	}
	if rat.Sign() <= 0 {
		return nil, fmt.Errorf("price must be positive: %q", price)
	}
	scaled := new(big.Rat).Mul(rat, new(big.Rat).SetInt(Q128))
	ratio := new(big.Int).Quo(scaled.Num(), scaled.Denom())
	if ratio.Sign() <= 0 {
		return nil, fmt.Errorf("price too small for q128: %q", price)
	}
	return ratio, nil
}

// ParseRatio accepts a raw integer (decimal or 0x hex) or a "q128:<price>" value.
func ParseRatio(input string) (*big.Int, error) {
	input = strings.TrimSpace(input)
	if price, ok := strings.CutPrefix(input, "q128:"); ok {
		return RatioFromPrice(price)
	}

	ratio, ok := new(big.Int).SetString(input, 0)
	if !ok {
		return nil, fmt.Errorf("invalid ratio: %q", input)
	}
	if err := validateRatio(ratio); err != nil {
		return nil, err
	}
	return ratio, nil
}

// ParseAmount parses a non-negative integer amount in base units.
func ParseAmount(input string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(strings.TrimSpace(input), 0)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %q", input)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("amount must not be negative: %q", input)
	}
	return amount, nil
}

func validateRatio(ratio *big.Int) error {
	if ratio == nil || ratio.Sign() <= 0 {
		return fmt.Errorf("ratio must be > 0")
	}
	return nil
}
