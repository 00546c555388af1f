package bench

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"strikebench/internal/chain"
	"strikebench/internal/contracts"
	"strikebench/internal/route"
)

// fakeChain is an in-memory provisioner and engine with just enough
// accounting to observe settlements and reject invalid commands.
type fakeChain struct {
	deployQueue []common.Address
	engineAddr  common.Address
	routerAddr  common.Address
	deployErr   map[string]error

	balances   map[common.Address]map[common.Address]*big.Int
	allowances map[common.Address]map[common.Address]*big.Int
	operators  map[common.Address]bool
	positions  map[common.Address]map[common.Hash]*big.Int
	touched    map[string]bool

	mints    []string
	approves int
	routed   []route.Command
	txCount  int64
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		deployQueue: []common.Address{
			common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"),
			common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		},
		engineAddr: common.HexToAddress("0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"),
		routerAddr: common.HexToAddress("0xdddddddddddddddddddddddddddddddddddddddd"),
		deployErr:  map[string]error{},
		balances:   map[common.Address]map[common.Address]*big.Int{},
		allowances: map[common.Address]map[common.Address]*big.Int{},
		operators:  map[common.Address]bool{},
		positions:  map[common.Address]map[common.Hash]*big.Int{},
		touched:    map[string]bool{},
	}
}

func (f *fakeChain) balance(token, account common.Address) *big.Int {
	if f.balances[token] == nil {
		f.balances[token] = map[common.Address]*big.Int{}
	}
	if f.balances[token][account] == nil {
		f.balances[token][account] = new(big.Int)
	}
	return f.balances[token][account]
}

func (f *fakeChain) position(account common.Address, id common.Hash) *big.Int {
	if f.positions[account] == nil {
		f.positions[account] = map[common.Hash]*big.Int{}
	}
	if f.positions[account][id] == nil {
		f.positions[account][id] = new(big.Int)
	}
	return f.positions[account][id]
}

func (f *fakeChain) DeployToken(ctx context.Context) (common.Address, error) {
	if err := f.deployErr["token"]; err != nil {
		return common.Address{}, err
	}
	if len(f.deployQueue) == 0 {
		return common.Address{}, chain.ErrNoContractAddress
	}
	addr := f.deployQueue[0]
	f.deployQueue = f.deployQueue[1:]
	return addr, nil
}

func (f *fakeChain) Mint(ctx context.Context, token, to common.Address, amount *big.Int) error {
	f.balance(token, to).Add(f.balance(token, to), amount)
	f.mints = append(f.mints, fmt.Sprintf("%s:%s:%s", token.Hex(), to.Hex(), amount))
	return nil
}

func (f *fakeChain) ApproveToken(ctx context.Context, token, owner, spender common.Address, amount *big.Int) error {
	if spender != f.routerAddr {
		return fmt.Errorf("unexpected spender %s", spender.Hex())
	}
	if f.allowances[token] == nil {
		f.allowances[token] = map[common.Address]*big.Int{}
	}
	f.allowances[token][owner] = new(big.Int).Set(amount)
	f.approves++
	return nil
}

func (f *fakeChain) BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error) {
	if err := f.deployErr["balance"]; err != nil {
		return nil, err
	}
	return new(big.Int).Set(f.balance(token, account)), nil
}

func (f *fakeChain) DeployEngine(ctx context.Context) (common.Address, error) {
	if err := f.deployErr["engine"]; err != nil {
		return common.Address{}, err
	}
	return f.engineAddr, nil
}

func (f *fakeChain) DeployRouter(ctx context.Context, engine common.Address) (common.Address, error) {
	if engine != f.engineAddr {
		return common.Address{}, fmt.Errorf("router bound to wrong engine")
	}
	return f.routerAddr, nil
}

func (f *fakeChain) Bind(engine, router common.Address) (route.Engine, error) {
	return f, nil
}

func (f *fakeChain) Approve(ctx context.Context, owner, spender common.Address, approved bool) (*types.Receipt, error) {
	f.operators[owner] = approved
	return f.receipt(30000, nil), nil
}

// Route validates the whole command before applying any of it.
func (f *fakeChain) Route(ctx context.Context, from common.Address, cmd route.Command) (*types.Receipt, error) {
	for _, credit := range cmd.Credits {
		if credit.Amount.Sign() <= 0 {
			return nil, &chain.RevertError{Message: "execution reverted", Reason: "invalid credit"}
		}
		if f.balance(credit.Token, from).Cmp(credit.Amount) < 0 {
			return nil, &chain.RevertError{Message: "execution reverted", Reason: "insufficient balance"}
		}
		allowance := f.allowances[credit.Token][from]
		if allowance == nil || allowance.Cmp(credit.Amount) < 0 {
			return nil, &chain.RevertError{Message: "execution reverted", Reason: "insufficient allowance"}
		}
	}
	for _, debit := range cmd.Debits {
		if !f.operators[from] {
			return nil, &chain.RevertError{Message: "execution reverted", Reason: "router not approved"}
		}
		if f.position(from, debit.ID).Cmp(debit.Amount) < 0 {
			return nil, &chain.RevertError{Message: "execution reverted", Reason: "insufficient position"}
		}
	}

	gas := uint64(21000)
	for _, op := range cmd.Ops {
		slot := from.Hex() + op.Ratio.String()
		if f.touched[slot] {
			gas += 20000
		} else {
			gas += 60000
			f.touched[slot] = true
		}
	}

	var logs []*types.Log
	pair := route.TokenPair{Token0: cmd.Ops[0].Token0, Token1: cmd.Ops[0].Token1}
	for _, credit := range cmd.Credits {
		f.balance(credit.Token, from).Sub(f.balance(credit.Token, from), credit.Amount)
		f.balance(credit.Token, f.engineAddr).Add(f.balance(credit.Token, f.engineAddr), credit.Amount)
		if credit.Token == pair.Token0 {
			id, _ := route.PositionID(pair, cmd.Ops[0].Ratio)
			f.position(from, id).Add(f.position(from, id), credit.Amount)
		}
		logs = append(logs, transferLog(credit.Token, from, f.engineAddr, credit.Amount))
	}
	for _, debit := range cmd.Debits {
		f.position(from, debit.ID).Sub(f.position(from, debit.ID), debit.Amount)
		f.balance(pair.Token0, f.engineAddr).Sub(f.balance(pair.Token0, f.engineAddr), debit.Amount)
		f.balance(pair.Token0, from).Add(f.balance(pair.Token0, from), debit.Amount)
		logs = append(logs, transferLog(pair.Token0, f.engineAddr, from, debit.Amount))
	}

	f.routed = append(f.routed, cmd)
	return f.receipt(gas, logs), nil
}

func (f *fakeChain) receipt(gas uint64, logs []*types.Log) *types.Receipt {
	f.txCount++
	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		GasUsed:     gas,
		TxHash:      common.BigToHash(big.NewInt(f.txCount)),
		BlockNumber: big.NewInt(f.txCount),
		Logs:        logs,
	}
}

func transferLog(token, from, to common.Address, amount *big.Int) *types.Log {
	parsed, err := contracts.MockERC20ABI()
	if err != nil {
		panic(err)
	}
	event := parsed.Events["Transfer"]
	data, err := event.Inputs.NonIndexed().Pack(amount)
	if err != nil {
		panic(err)
	}
	return &types.Log{
		Address: token,
		Topics:  []common.Hash{event.ID, common.BytesToHash(from.Bytes()), common.BytesToHash(to.Bytes())},
		Data:    data,
	}
}
