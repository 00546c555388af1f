package route

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Strike token sides.
const (
	Side0 uint8 = 0
	Side1 uint8 = 1
)

// Kind is the operation a liquidity intent performs at a strike.
type Kind uint8

const (
	KindAdd Kind = iota + 1
	KindRemove
	KindSwap
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindRemove:
		return "remove"
	case KindSwap:
		return "swap"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind converts a CLI/config name into a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "add", "add-liquidity":
		return KindAdd, nil
	case "remove", "remove-liquidity":
		return KindRemove, nil
	case "swap":
		return KindSwap, nil
	default:
		return 0, fmt.Errorf("unsupported kind: %s", name)
	}
}

// StrikeState is a position's size at a strike, denominated on one token side.
type StrikeState struct {
	Token     uint8    `abi:"token" json:"token"`
	Amount    *big.Int `abi:"amount" json:"amount"`
	Liquidity *big.Int `abi:"liquidity" json:"liquidity"`
}

// Credit is an amount of a token the caller supplies.
type Credit struct {
	Token  common.Address `abi:"token" json:"token"`
	Amount *big.Int       `abi:"amount" json:"amount"`
}

// Debit is an amount the caller withdraws from a position.
type Debit struct {
	ID     common.Hash `abi:"id" json:"id"`
	Amount *big.Int    `abi:"amount" json:"amount"`
}

// Intent describes one liquidity or swap operation at a single strike.
// Add and Remove use AmountBefore/AmountAfter; Swap uses Amount.
type Intent struct {
	Kind         Kind
	Pair         TokenPair
	Ratio        *big.Int
	AmountBefore *big.Int
	AmountAfter  *big.Int
	Amount       *big.Int
}

// Delta is the encoded strike transition and its settlement lists.
type Delta struct {
	StrikeBefore StrikeState
	StrikeAfter  StrikeState
	Credits      []Credit
	Debits       []Debit
}

// Encode computes the strike states and credits/debits for an intent.
// Amounts are not clamped: a non-positive delta is the engine's to reject.
func Encode(intent Intent) (Delta, error) {
	if err := validateRatio(intent.Ratio); err != nil {
		return Delta{}, err
	}

	switch intent.Kind {
	case KindAdd:
		before, after, err := liquidityStates(intent)
		if err != nil {
			return Delta{}, err
		}
		return Delta{
			StrikeBefore: before,
			StrikeAfter:  after,
			Credits: []Credit{{
				Token:  intent.Pair.Token0,
				Amount: new(big.Int).Sub(intent.AmountAfter, intent.AmountBefore),
			}},
			Debits: []Debit{},
		}, nil
	case KindRemove:
		before, after, err := liquidityStates(intent)
		if err != nil {
			return Delta{}, err
		}
		id, err := PositionID(intent.Pair, intent.Ratio)
		if err != nil {
			return Delta{}, err
		}
		return Delta{
			StrikeBefore: before,
			StrikeAfter:  after,
			Credits:      []Credit{},
			Debits: []Debit{{
				ID:     id,
				Amount: new(big.Int).Sub(intent.AmountBefore, intent.AmountAfter),
			}},
		}, nil
	case KindSwap:
		if intent.Amount == nil {
			return Delta{}, fmt.Errorf("swap amount is required")
		}
		return Delta{
			StrikeBefore: strikeState(Side0, intent.Amount),
			StrikeAfter:  strikeState(Side1, intent.Amount),
			Credits: []Credit{{
				Token:  intent.Pair.Token1,
				Amount: new(big.Int).Set(intent.Amount),
			}},
			Debits: []Debit{},
		}, nil
	default:
		return Delta{}, fmt.Errorf("unsupported kind: %s", intent.Kind)
	}
}

func liquidityStates(intent Intent) (StrikeState, StrikeState, error) {
	if intent.AmountBefore == nil || intent.AmountAfter == nil {
		return StrikeState{}, StrikeState{}, fmt.Errorf("%s requires amount before and after", intent.Kind)
	}
	return strikeState(Side0, intent.AmountBefore), strikeState(Side0, intent.AmountAfter), nil
}

func strikeState(side uint8, amount *big.Int) StrikeState {
	return StrikeState{
		Token:     side,
		Amount:    new(big.Int).Set(amount),
		Liquidity: new(big.Int).Set(amount),
	}
}
