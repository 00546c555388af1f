package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"strikebench/internal/model"
)

// PrintGas writes one "<label>: <gas>" line per measured step, in run order.
func PrintGas(w io.Writer, steps []model.StepResult) error {
	for _, step := range steps {
		if !step.Measured {
			continue
		}
		label := step.Label
		if label == "" {
			label = step.Step
		}
		line := fmt.Sprintf("%s: %d", label, step.GasUsed)
		if step.CeilingMet != nil && !*step.CeilingMet {
			line += fmt.Sprintf(" (above %s)", step.GasCeiling)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// PrintDetail writes the run header and every step with its settlement transfers.
func PrintDetail(w io.Writer, run model.Run, steps []model.StepResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "run\t%s\t%s\n", run.RunID, run.Status)
	fmt.Fprintf(tw, "chain\t%d\t%s\n", run.ChainID, run.RPCURL)
	fmt.Fprintf(tw, "token0\t%s\t\n", run.Token0)
	fmt.Fprintf(tw, "token1\t%s\t\n", run.Token1)
	fmt.Fprintf(tw, "engine\t%s\t\n", run.Engine)
	fmt.Fprintf(tw, "router\t%s\t\n", run.Router)
	if run.Error != "" {
		fmt.Fprintf(tw, "error\t%s\t\n", run.Error)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "#\tstep\taccount\tgas\ttx")
	for _, step := range steps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", step.Index, step.Step, shortHex(step.Account), step.GasUsed, shortHex(step.TxHash))
		for _, transfer := range step.Transfers {
			fmt.Fprintf(tw, "\t  %s\t%s -> %s\t%s\t\n",
				tokenName(run, transfer.Token),
				shortHex(transfer.From),
				shortHex(transfer.To),
				formatAmountString(transfer.Amount),
			)
		}
	}
	return tw.Flush()
}

func tokenName(run model.Run, token string) string {
	switch token {
	case run.Token0:
		return "token0"
	case run.Token1:
		return "token1"
	default:
		return shortHex(token)
	}
}

func shortHex(value string) string {
	if len(value) <= 12 {
		return value
	}
	return value[:6] + ".." + value[len(value)-4:]
}

// PrintBalances writes the final holdings read after a completed run.
func PrintBalances(w io.Writer, run model.Run, balances []model.Balance) error {
	if len(balances) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "holder\taccount\ttoken\tbalance")
	for _, balance := range balances {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			balance.Holder,
			shortHex(balance.Account),
			tokenName(run, balance.Token),
			formatAmountString(balance.Amount),
		)
	}
	return tw.Flush()
}
