package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ParseAddresses converts string addresses into common.Address.
func ParseAddresses(inputs []string) ([]common.Address, error) {
	addresses := make([]common.Address, 0, len(inputs))
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !common.IsHexAddress(input) {
			return nil, fmt.Errorf("invalid address: %s", input)
		}
		addresses = append(addresses, common.HexToAddress(input))
	}
	return addresses, nil
}

// ParseAccountPair returns the two benchmark accounts A and B.
func ParseAccountPair(inputs []string) (common.Address, common.Address, error) {
	addresses, err := ParseAddresses(inputs)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	if len(addresses) != 2 {
		return common.Address{}, common.Address{}, fmt.Errorf("expected 2 accounts, got %d", len(addresses))
	}
	if addresses[0] == addresses[1] {
		return common.Address{}, common.Address{}, fmt.Errorf("accounts must differ: %s", addresses[0].Hex())
	}
	return addresses[0], addresses[1], nil
}
