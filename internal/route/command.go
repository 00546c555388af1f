package route

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// StrikeOp is one strike transition within a route command.
type StrikeOp struct {
	Token0       common.Address `abi:"token0" json:"token0"`
	Token1       common.Address `abi:"token1" json:"token1"`
	Ratio        *big.Int       `abi:"ratio" json:"ratio"`
	StrikeBefore StrikeState    `abi:"strikeBefore" json:"strike_before"`
	StrikeAfter  StrikeState    `abi:"strikeAfter" json:"strike_after"`
}

// Command is the payload of a single atomic route call.
type Command struct {
	Ops     []StrikeOp     `json:"ops"`
	Account common.Address `json:"account"`
	Credits []Credit       `json:"credits"`
	Debits  []Debit        `json:"debits"`
}

// Args returns the route(...) call arguments in ABI order.
func (c Command) Args() []interface{} {
	credits := c.Credits
	if credits == nil {
		credits = []Credit{}
	}
	debits := c.Debits
	if debits == nil {
		debits = []Debit{}
	}
	return []interface{}{c.Ops, c.Account, credits, debits}
}

var (
	maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// Validate checks that every amount fits its unsigned ABI field. ABI packing
// wraps negative and oversized values instead of failing.
func (c Command) Validate() error {
	for i, op := range c.Ops {
		if err := checkUint("ratio", op.Ratio, maxUint256); err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
		for _, state := range []struct {
			name string
			StrikeState
		}{{"strike before", op.StrikeBefore}, {"strike after", op.StrikeAfter}} {
			if err := checkUint(state.name+" amount", state.Amount, maxUint128); err != nil {
				return fmt.Errorf("op %d: %w", i, err)
			}
			if err := checkUint(state.name+" liquidity", state.Liquidity, maxUint128); err != nil {
				return fmt.Errorf("op %d: %w", i, err)
			}
		}
	}
	for i, credit := range c.Credits {
		if err := checkUint("amount", credit.Amount, maxUint256); err != nil {
			return fmt.Errorf("credit %d: %w", i, err)
		}
	}
	for i, debit := range c.Debits {
		if err := checkUint("amount", debit.Amount, maxUint256); err != nil {
			return fmt.Errorf("debit %d: %w", i, err)
		}
	}
	return nil
}

func checkUint(name string, value, limit *big.Int) error {
	if value == nil {
		return fmt.Errorf("%s is required", name)
	}
	if value.Sign() < 0 {
		return fmt.Errorf("%s is negative: %s", name, value)
	}
	if value.Cmp(limit) > 0 {
		return fmt.Errorf("%s overflows uint%d: %s", name, limit.BitLen(), value)
	}
	return nil
}

// Builder batches strike operations into one Command.
type Builder struct {
	account common.Address
	ops     []StrikeOp
	credits []Credit
	debits  []Debit
}

func NewBuilder(account common.Address) *Builder {
	return &Builder{account: account}
}

// Add encodes an intent and appends its strike op and settlements.
func (b *Builder) Add(intent Intent) error {
	delta, err := Encode(intent)
	if err != nil {
		return fmt.Errorf("encode %s: %w", intent.Kind, err)
	}

	b.ops = append(b.ops, StrikeOp{
		Token0:       intent.Pair.Token0,
		Token1:       intent.Pair.Token1,
		Ratio:        new(big.Int).Set(intent.Ratio),
		StrikeBefore: delta.StrikeBefore,
		StrikeAfter:  delta.StrikeAfter,
	})
	b.credits = append(b.credits, delta.Credits...)
	b.debits = append(b.debits, delta.Debits...)
	return nil
}

// Build returns the assembled command. Only the shape and field ranges are
// checked; the engine owns balance, position, and solvency validation.
func (b *Builder) Build() (Command, error) {
	if len(b.ops) == 0 {
		return Command{}, fmt.Errorf("route command has no strike operations")
	}
	if b.account == (common.Address{}) {
		return Command{}, fmt.Errorf("route command account is required")
	}

	cmd := Command{
		Ops:     append([]StrikeOp(nil), b.ops...),
		Account: b.account,
		Credits: append([]Credit{}, b.credits...),
		Debits:  append([]Debit{}, b.debits...),
	}
	if err := cmd.Validate(); err != nil {
		return Command{}, err
	}
	return cmd, nil
}

// Single builds a one-operation command, the shape every benchmark step submits.
func Single(account common.Address, intent Intent) (Command, error) {
	b := NewBuilder(account)
	if err := b.Add(intent); err != nil {
		return Command{}, err
	}
	return b.Build()
}
