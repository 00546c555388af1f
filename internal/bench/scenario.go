package bench

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"strikebench/internal/route"
)

// StepKind identifies what a benchmark step submits.
type StepKind int

const (
	StepAddLiquidity StepKind = iota + 1
	StepRemoveLiquidity
	StepSwap
	StepApproveRouter
)

func (k StepKind) String() string {
	switch k {
	case StepAddLiquidity:
		return "add_liquidity"
	case StepRemoveLiquidity:
		return "remove_liquidity"
	case StepSwap:
		return "swap"
	case StepApproveRouter:
		return "approve_router"
	default:
		return fmt.Sprintf("step(%d)", int(k))
	}
}

// Env is the deployed state every step builds on.
type Env struct {
	Pair   route.TokenPair
	Engine common.Address
	Router common.Address
}

// Step is one entry of the linear scenario.
type Step struct {
	Name    string
	Label   string
	Kind    StepKind
	Account common.Address
	Ratio   *big.Int

	AmountBefore *big.Int
	AmountAfter  *big.Int
	Amount       *big.Int

	// Measure marks steps whose gas is reported.
	Measure bool
	// GasAtMost names an earlier step whose gas this step should not exceed.
	GasAtMost string
}

// Intent converts a liquidity or swap step into a route intent.
func (s Step) Intent(env Env) (route.Intent, error) {
	intent := route.Intent{
		Pair:         env.Pair,
		Ratio:        s.Ratio,
		AmountBefore: s.AmountBefore,
		AmountAfter:  s.AmountAfter,
		Amount:       s.Amount,
	}
	switch s.Kind {
	case StepAddLiquidity:
		intent.Kind = route.KindAdd
	case StepRemoveLiquidity:
		intent.Kind = route.KindRemove
	case StepSwap:
		intent.Kind = route.KindSwap
	default:
		return route.Intent{}, fmt.Errorf("step %s has no route intent", s.Name)
	}
	return intent, nil
}

// Command builds the single-op route command for the step.
func (s Step) Command(env Env) (route.Command, error) {
	intent, err := s.Intent(env)
	if err != nil {
		return route.Command{}, err
	}
	return route.Single(s.Account, intent)
}

// Scenario is an ordered list of steps plus the provisioning amounts.
type Scenario struct {
	Name          string
	MintAmount    *big.Int
	ApproveAmount *big.Int
	EnginePrefund *big.Int
	Steps         []Step
}

// Validate checks step names are unique and GasAtMost refers to an earlier step.
func (s Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %s has no steps", s.Name)
	}
	seen := make(map[string]bool, len(s.Steps))
	for i, step := range s.Steps {
		if step.Name == "" {
			return fmt.Errorf("step %d has no name", i)
		}
		if seen[step.Name] {
			return fmt.Errorf("duplicate step name: %s", step.Name)
		}
		if step.GasAtMost != "" && !seen[step.GasAtMost] {
			return fmt.Errorf("step %s: gas ceiling %s is not an earlier step", step.Name, step.GasAtMost)
		}
		if step.Account == (common.Address{}) {
			return fmt.Errorf("step %s has no account", step.Name)
		}
		seen[step.Name] = true
	}
	return nil
}

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

// DefaultScenario is the strike engine gas benchmark: B seeds the strike,
// then A adds cold and hot, approves the router, removes, and swaps.
func DefaultScenario(a, b common.Address) Scenario {
	ratio := route.Q128
	return Scenario{
		Name:          "strike-engine",
		MintAmount:    ether(10),
		ApproveAmount: ether(10),
		EnginePrefund: big.NewInt(1),
		Steps: []Step{
			{
				Name:         "add_liquidity_seed",
				Label:        "Add liquidity (seed)",
				Kind:         StepAddLiquidity,
				Account:      b,
				Ratio:        ratio,
				AmountBefore: ether(0),
				AmountAfter:  ether(1),
			},
			{
				Name:         "add_liquidity_cold",
				Label:        "Add liquidity (cold)",
				Kind:         StepAddLiquidity,
				Account:      a,
				Ratio:        ratio,
				AmountBefore: ether(1),
				AmountAfter:  ether(2),
				Measure:      true,
			},
			{
				Name:         "add_liquidity_hot",
				Label:        "Add liquidity (hot)",
				Kind:         StepAddLiquidity,
				Account:      a,
				Ratio:        ratio,
				AmountBefore: ether(2),
				AmountAfter:  ether(3),
				Measure:      true,
				GasAtMost:    "add_liquidity_cold",
			},
			{
				Name:    "approve_router",
				Label:   "Approve router",
				Kind:    StepApproveRouter,
				Account: a,
			},
			{
				Name:         "remove_liquidity",
				Label:        "Remove liquidity",
				Kind:         StepRemoveLiquidity,
				Account:      a,
				Ratio:        ratio,
				AmountBefore: ether(3),
				AmountAfter:  ether(2),
				Measure:      true,
			},
			{
				Name:    "swap",
				Label:   "Swap",
				Kind:    StepSwap,
				Account: a,
				Ratio:   ratio,
				Amount:  ether(2),
				Measure: true,
			},
		},
	}
}
