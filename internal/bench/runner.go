package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"strikebench/internal/contracts"
	"strikebench/internal/model"
	"strikebench/internal/route"
)

// Accounts are the two named benchmark actors.
type Accounts struct {
	A common.Address
	B common.Address
}

// Result is everything observed during a run, including a partial run that aborted.
type Result struct {
	Run      model.Run
	Env      Env
	Steps    []model.StepResult
	Balances []model.Balance
}

// Gas returns the gas used by a named step.
func (r Result) Gas(step string) (uint64, bool) {
	for _, s := range r.Steps {
		if s.Step == step {
			return s.GasUsed, true
		}
	}
	return 0, false
}

// Runner executes a scenario strictly in order; the first failure aborts the run.
type Runner struct {
	scenario Scenario
	prov     Provisioner
	accounts Accounts
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

func NewRunner(scenario Scenario, prov Provisioner, accounts Accounts, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		scenario: scenario,
		prov:     prov,
		accounts: accounts,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// Run provisions tokens and contracts, then submits every step and records its gas.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	result := Result{
		Run: model.Run{
			RunID:     r.newID(),
			Scenario:  r.scenario.Name,
			Status:    model.RunStatusRunning,
			StartedAt: r.now(),
		},
	}

	err := r.run(ctx, &result)

	finished := r.now()
	result.Run.FinishedAt = &finished
	if err != nil {
		result.Run.Status = model.RunStatusFailed
		result.Run.Error = err.Error()
		r.logger.Error("scenario aborted", zap.String("run_id", result.Run.RunID), zap.Error(err))
		return result, err
	}
	result.Run.Status = model.RunStatusCompleted
	balances, err := r.balances(ctx, result.Env)
	if err != nil {
		r.logger.Warn("read final balances", zap.String("run_id", result.Run.RunID), zap.Error(err))
	}
	result.Balances = balances
	r.logger.Info("scenario complete", zap.String("run_id", result.Run.RunID), zap.Int("steps", len(result.Steps)))
	return result, nil
}

func (r *Runner) run(ctx context.Context, result *Result) error {
	if r.prov == nil {
		return fmt.Errorf("provisioner is nil")
	}
	if err := r.scenario.Validate(); err != nil {
		return err
	}

	env, err := r.provision(ctx)
	if err != nil {
		return err
	}
	result.Env = env
	result.Run.Token0 = env.Pair.Token0.Hex()
	result.Run.Token1 = env.Pair.Token1.Hex()
	result.Run.Engine = env.Engine.Hex()
	result.Run.Router = env.Router.Hex()

	engine, err := r.prov.Bind(env.Engine, env.Router)
	if err != nil {
		return fmt.Errorf("bind engine: %w", err)
	}

	tracked := map[common.Address]bool{env.Pair.Token0: true, env.Pair.Token1: true}
	gasByStep := make(map[string]uint64, len(r.scenario.Steps))

	for i, step := range r.scenario.Steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		receipt, err := r.submit(ctx, engine, env, step)
		if err != nil {
			return fmt.Errorf("step %s: %w", step.Name, err)
		}

		transfers, err := contracts.DecodeTransfers(receipt.Logs, tracked)
		if err != nil {
			return fmt.Errorf("step %s: decode transfers: %w", step.Name, err)
		}

		stepResult := model.StepResult{
			RunID:      result.Run.RunID,
			Index:      i,
			Step:       step.Name,
			Label:      step.Label,
			Kind:       step.Kind.String(),
			Account:    step.Account.Hex(),
			GasUsed:    receipt.GasUsed,
			TxHash:     receipt.TxHash.Hex(),
			Transfers:  transfers,
			Measured:   step.Measure,
			GasCeiling: step.GasAtMost,
		}
		if receipt.BlockNumber != nil {
			stepResult.BlockNumber = receipt.BlockNumber.Uint64()
		}

		if step.GasAtMost != "" {
			met := receipt.GasUsed <= gasByStep[step.GasAtMost]
			stepResult.CeilingMet = &met
			if !met {
				r.logger.Warn("gas above ceiling",
					zap.String("step", step.Name),
					zap.String("ceiling_step", step.GasAtMost),
					zap.Uint64("gas_used", receipt.GasUsed),
					zap.Uint64("ceiling", gasByStep[step.GasAtMost]),
				)
			}
		}

		gasByStep[step.Name] = receipt.GasUsed
		result.Steps = append(result.Steps, stepResult)

		r.logger.Info("step complete",
			zap.Int("index", i),
			zap.String("step", step.Name),
			zap.String("account", step.Account.Hex()),
			zap.Uint64("gas_used", receipt.GasUsed),
			zap.String("tx_hash", stepResult.TxHash),
			zap.Int("transfers", len(transfers)),
		)
	}

	return nil
}

func (r *Runner) submit(ctx context.Context, engine route.Engine, env Env, step Step) (*types.Receipt, error) {
	var (
		receipt *types.Receipt
		err     error
	)
	if step.Kind == StepApproveRouter {
		receipt, err = engine.Approve(ctx, step.Account, env.Router, true)
	} else {
		cmd, cmdErr := step.Command(env)
		if cmdErr != nil {
			return nil, cmdErr
		}
		receipt, err = engine.Route(ctx, step.Account, cmd)
	}
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, fmt.Errorf("no receipt")
	}
	return receipt, nil
}

func (r *Runner) provision(ctx context.Context) (Env, error) {
	sc := r.scenario

	tokenA, err := r.prov.DeployToken(ctx)
	if err != nil {
		return Env{}, fmt.Errorf("deploy token: %w", err)
	}
	tokenB, err := r.prov.DeployToken(ctx)
	if err != nil {
		return Env{}, fmt.Errorf("deploy token: %w", err)
	}
	pair, err := route.NewTokenPair(tokenA, tokenB)
	if err != nil {
		return Env{}, err
	}
	r.logger.Info("tokens deployed", zap.String("token0", pair.Token0.Hex()), zap.String("token1", pair.Token1.Hex()))

	for _, account := range []common.Address{r.accounts.A, r.accounts.B} {
		for _, token := range []common.Address{pair.Token0, pair.Token1} {
			if err := r.prov.Mint(ctx, token, account, sc.MintAmount); err != nil {
				return Env{}, fmt.Errorf("mint: %w", err)
			}
		}
	}

	engine, err := r.prov.DeployEngine(ctx)
	if err != nil {
		return Env{}, fmt.Errorf("deploy engine: %w", err)
	}
	router, err := r.prov.DeployRouter(ctx, engine)
	if err != nil {
		return Env{}, fmt.Errorf("deploy router: %w", err)
	}
	r.logger.Info("contracts deployed", zap.String("engine", engine.Hex()), zap.String("router", router.Hex()))

	// The engine expects a token1 balance before its first strike is opened.
	if sc.EnginePrefund != nil && sc.EnginePrefund.Sign() > 0 {
		if err := r.prov.Mint(ctx, pair.Token1, engine, sc.EnginePrefund); err != nil {
			return Env{}, fmt.Errorf("prefund engine: %w", err)
		}
	}

	for _, account := range []common.Address{r.accounts.A, r.accounts.B} {
		for _, token := range []common.Address{pair.Token0, pair.Token1} {
			if err := r.prov.ApproveToken(ctx, token, account, router, sc.ApproveAmount); err != nil {
				return Env{}, fmt.Errorf("approve router: %w", err)
			}
		}
	}

	return Env{Pair: pair, Engine: engine, Router: router}, nil
}

// balances reads the final token0/token1 holdings of both accounts and the engine.
func (r *Runner) balances(ctx context.Context, env Env) ([]model.Balance, error) {
	holders := []struct {
		name    string
		account common.Address
	}{
		{"A", r.accounts.A},
		{"B", r.accounts.B},
		{"engine", env.Engine},
	}

	out := make([]model.Balance, 0, len(holders)*2)
	for _, holder := range holders {
		for _, token := range []common.Address{env.Pair.Token0, env.Pair.Token1} {
			amount, err := r.prov.BalanceOf(ctx, token, holder.account)
			if err != nil {
				return out, fmt.Errorf("balance of %s: %w", holder.name, err)
			}
			out = append(out, model.Balance{
				Holder:  holder.name,
				Account: holder.account.Hex(),
				Token:   token.Hex(),
				Amount:  amount.String(),
			})
		}
	}
	return out, nil
}
