package report

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"strikebench/internal/model"
)

func TestFormatTokenAmount(t *testing.T) {
	oneEther := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

	require.Equal(t, "0", FormatTokenAmount(nil, 18))
	require.Equal(t, "1", FormatTokenAmount(oneEther, 18))
	require.Equal(t, "-2", FormatTokenAmount(new(big.Int).Mul(oneEther, big.NewInt(-2)), 18))
	require.Equal(t, "0.000000000000000001", FormatTokenAmount(big.NewInt(1), 18))
	require.Equal(t, "1.5", FormatTokenAmount(big.NewInt(15), 1))
	require.Equal(t, "42", FormatTokenAmount(big.NewInt(42), 0))
	require.Equal(t, "0", FormatTokenAmount(big.NewInt(0), 18))
	require.Equal(t, "not-a-number", formatAmountString("not-a-number"))
}

func TestPrintGasMeasuredStepsOnly(t *testing.T) {
	met := true
	missed := false
	steps := []model.StepResult{
		{Step: "add_liquidity_seed", Label: "Add liquidity (seed)", GasUsed: 140000},
		{Step: "add_liquidity_cold", Label: "Add liquidity (cold)", GasUsed: 120000, Measured: true},
		{Step: "add_liquidity_hot", Label: "Add liquidity (hot)", GasUsed: 60000, Measured: true, GasCeiling: "add_liquidity_cold", CeilingMet: &met},
		{Step: "swap", GasUsed: 70000, Measured: true, GasCeiling: "add_liquidity_hot", CeilingMet: &missed},
	}

	var buf bytes.Buffer
	require.NoError(t, PrintGas(&buf, steps))
	require.Equal(t,
		"Add liquidity (cold): 120000\n"+
			"Add liquidity (hot): 60000\n"+
			"swap: 70000 (above add_liquidity_hot)\n",
		buf.String())
}

func TestPrintDetailNamesTokens(t *testing.T) {
	run := model.Run{
		RunID:  "run-1",
		Status: model.RunStatusCompleted,
		Token0: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		Token1: "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512",
	}
	steps := []model.StepResult{{
		Index:   4,
		Step:    "remove_liquidity",
		GasUsed: 51000,
		Transfers: []model.TokenTransfer{{
			Token:  run.Token0,
			From:   "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0",
			To:     "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
			Amount: "1000000000000000000",
		}},
	}}

	var buf bytes.Buffer
	require.NoError(t, PrintDetail(&buf, run, steps))
	out := buf.String()
	require.Contains(t, out, "remove_liquidity")
	require.Contains(t, out, "token0")
	require.Contains(t, out, "0x9fE4..a6e0 -> 0xf39F..2266")
}

func TestPrintBalances(t *testing.T) {
	run := model.Run{Token0: "0x5FbDB2315678afecb367f032d93F642f64180aa3"}
	balances := []model.Balance{{
		Holder:  "A",
		Account: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		Token:   run.Token0,
		Amount:  "9000000000000000000",
	}}

	var buf bytes.Buffer
	require.NoError(t, PrintBalances(&buf, run, balances))
	require.Contains(t, buf.String(), "token0")
	require.Contains(t, buf.String(), "0xf39F..2266")
	require.Contains(t, buf.String(), " 9\n")

	buf.Reset()
	require.NoError(t, PrintBalances(&buf, run, nil))
	require.Empty(t, buf.String())
}
