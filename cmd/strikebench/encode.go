package main

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"strikebench/internal/config"
	"strikebench/internal/contracts"
	"strikebench/internal/route"
)

type encodeInput struct {
	Kind    string
	TokenA  string
	TokenB  string
	Ratio   string
	Before  string
	After   string
	Amount  string
	Account string
}

type encodeOutput struct {
	Pair       route.TokenPair `json:"pair"`
	PositionID common.Hash     `json:"position_id"`
	Command    route.Command   `json:"command"`
	Calldata   hexutil.Bytes   `json:"calldata"`
}

func newEncodeCmd() *cobra.Command {
	var in encodeInput
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the route command and calldata for one intent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := encodeIntent(in)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&in.Kind, "kind", "add", "intent kind (add, remove, swap)")
	cmd.Flags().StringVar(&in.TokenA, "token-a", "", "first token address")
	cmd.Flags().StringVar(&in.TokenB, "token-b", "", "second token address")
	cmd.Flags().StringVar(&in.Ratio, "ratio", "q128:1", "strike ratio (integer, hex, or q128:<price>)")
	cmd.Flags().StringVar(&in.Before, "before", "0", "strike amount before (add, remove)")
	cmd.Flags().StringVar(&in.After, "after", "0", "strike amount after (add, remove)")
	cmd.Flags().StringVar(&in.Amount, "amount", "0", "swap amount")
	cmd.Flags().StringVar(&in.Account, "account", config.DefaultAccountA, "account the command acts for")
	return cmd
}

func newPositionIDCmd() *cobra.Command {
	var tokenA, tokenB, ratio string
	cmd := &cobra.Command{
		Use:   "position-id",
		Short: "Print the position id of a pair and ratio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pair, parsedRatio, err := parsePairAndRatio(tokenA, tokenB, ratio)
			if err != nil {
				return err
			}
			id, err := route.PositionID(pair, parsedRatio)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id.Hex())
			return err
		},
	}

	cmd.Flags().StringVar(&tokenA, "token-a", "", "first token address")
	cmd.Flags().StringVar(&tokenB, "token-b", "", "second token address")
	cmd.Flags().StringVar(&ratio, "ratio", "q128:1", "strike ratio (integer, hex, or q128:<price>)")
	return cmd
}

func encodeIntent(in encodeInput) (encodeOutput, error) {
	pair, ratio, err := parsePairAndRatio(in.TokenA, in.TokenB, in.Ratio)
	if err != nil {
		return encodeOutput{}, err
	}
	kind, err := route.ParseKind(in.Kind)
	if err != nil {
		return encodeOutput{}, err
	}
	accounts, err := config.ParseAddresses([]string{in.Account})
	if err != nil {
		return encodeOutput{}, err
	}
	if len(accounts) != 1 {
		return encodeOutput{}, fmt.Errorf("account is required")
	}

	intent := route.Intent{Kind: kind, Pair: pair, Ratio: ratio}
	if intent.AmountBefore, err = route.ParseAmount(in.Before); err != nil {
		return encodeOutput{}, fmt.Errorf("before: %w", err)
	}
	if intent.AmountAfter, err = route.ParseAmount(in.After); err != nil {
		return encodeOutput{}, fmt.Errorf("after: %w", err)
	}
	if intent.Amount, err = route.ParseAmount(in.Amount); err != nil {
		return encodeOutput{}, fmt.Errorf("amount: %w", err)
	}

	command, err := route.Single(accounts[0], intent)
	if err != nil {
		return encodeOutput{}, err
	}
	routerABI, err := contracts.RouterABI()
	if err != nil {
		return encodeOutput{}, err
	}
	calldata, err := contracts.PackRoute(routerABI, command)
	if err != nil {
		return encodeOutput{}, err
	}
	id, err := route.PositionID(pair, ratio)
	if err != nil {
		return encodeOutput{}, err
	}

	return encodeOutput{Pair: pair, PositionID: id, Command: command, Calldata: calldata}, nil
}

func parsePairAndRatio(tokenA, tokenB, ratio string) (route.TokenPair, *big.Int, error) {
	tokens, err := config.ParseAddresses([]string{tokenA, tokenB})
	if err != nil {
		return route.TokenPair{}, nil, err
	}
	if len(tokens) != 2 {
		return route.TokenPair{}, nil, fmt.Errorf("token-a and token-b are required")
	}
	pair, err := route.NewTokenPair(tokens[0], tokens[1])
	if err != nil {
		return route.TokenPair{}, nil, err
	}
	parsed, err := route.ParseRatio(ratio)
	if err != nil {
		return route.TokenPair{}, nil, err
	}
	return pair, parsed, nil
}
