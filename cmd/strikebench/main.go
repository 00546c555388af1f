package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"strikebench/internal/bench"
	"strikebench/internal/chain"
	"strikebench/internal/config"
	"strikebench/internal/contracts"
	"strikebench/internal/node"
	"strikebench/internal/report"
	"strikebench/internal/storage"
	"strikebench/internal/storage/postgres"
)

func main() {
	root := &cobra.Command{
		Use:          "strikebench",
		Short:        "Strike engine gas benchmark",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Deploy the engine and measure gas for the liquidity scenario",
		RunE:  runBench,
	}

	runCmd.Flags().String("rpc", "http://127.0.0.1:8545", "node RPC base URL")
	runCmd.Flags().Int("worker-id", 1, "worker id appended to the RPC path")
	runCmd.Flags().Bool("spawn-node", false, "launch a local anvil node for this worker")
	runCmd.Flags().String("anvil-binary", "anvil", "anvil binary when spawning a node")
	runCmd.Flags().StringSlice("anvil-args", nil, "extra anvil arguments (comma-separated)")
	runCmd.Flags().String("node-host", "127.0.0.1", "host for a spawned node")
	runCmd.Flags().Int("node-port", 8545, "base port for a spawned node, offset by worker id")
	runCmd.Flags().Uint64("chain-id", 31337, "chain id for a spawned node")
	runCmd.Flags().Int("start-retries", 20, "readiness checks before giving up on a spawned node")
	runCmd.Flags().Duration("start-backoff", 100*time.Millisecond, "initial delay between readiness checks")
	runCmd.Flags().String("artifacts", "./out", "forge build output directory")
	runCmd.Flags().StringSlice("accounts", []string{config.DefaultAccountA, config.DefaultAccountB}, "node-managed accounts A and B (comma-separated)")
	runCmd.Flags().String("out", "", "optional JSONL results path")
	runCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for results")
	runCmd.Flags().Bool("detail", false, "print every step with its settlement transfers")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)
	root.AddCommand(newEncodeCmd())
	root.AddCommand(newPositionIDCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	accountA, accountB, err := config.ParseAccountPair(cfg.Accounts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rpcURL, err := node.Endpoint(cfg.RPCURL, cfg.WorkerID)
	if err != nil {
		return err
	}
	if cfg.SpawnNode {
		n, err := node.Start(ctx, node.Config{
			Binary:       cfg.AnvilBinary,
			Host:         cfg.NodeHost,
			BasePort:     cfg.NodePort,
			WorkerID:     cfg.WorkerID,
			ChainID:      cfg.ChainID,
			StartRetries: cfg.StartRetries,
			StartBackoff: cfg.StartBackoff,
			ExtraArgs:    cfg.AnvilArgs,
		}, logger)
		if err != nil {
			return err
		}
		defer n.Stop()
		rpcURL = n.URL()
	}

	artifacts, err := contracts.LoadArtifacts(cfg.Artifacts)
	if err != nil {
		return err
	}

	chainClient, err := chain.NewClient(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	chainID, err := chainClient.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("chain id: %w", err)
	}

	startBlock, err := chainClient.LatestBlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("latest block: %w", err)
	}

	sinks, closeSinks, err := openSinks(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSinks()

	scenario := bench.DefaultScenario(accountA, accountB)
	provisioner := bench.NewChainProvisioner(chainClient, artifacts, accountA)
	runner := bench.NewRunner(scenario, provisioner, bench.Accounts{A: accountA, B: accountB}, logger)

	logger.Info("benchmark start",
		zap.String("rpc", rpcURL),
		zap.Uint64("chain_id", chainID.Uint64()),
		zap.Uint64("start_block", startBlock),
		zap.String("scenario", scenario.Name),
		zap.String("account_a", accountA.Hex()),
		zap.String("account_b", accountB.Hex()),
		zap.String("artifacts", cfg.Artifacts),
		zap.String("out", cfg.Out),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
	)

	result, runErr := runner.Run(ctx)
	result.Run.ChainID = chainID.Uint64()
	result.Run.RPCURL = rpcURL

	if err := report.PrintGas(cmd.OutOrStdout(), result.Steps); err != nil {
		return err
	}
	if cfg.Detail {
		if err := report.PrintDetail(cmd.OutOrStdout(), result.Run, result.Steps); err != nil {
			return err
		}
		if err := report.PrintBalances(cmd.OutOrStdout(), result.Run, result.Balances); err != nil {
			return err
		}
	}

	// Persist partial runs too; an interrupted run still records what it measured.
	if err := sinks.PutRun(context.WithoutCancel(ctx), result.Run, result.Steps); err != nil {
		logger.Error("persist results", zap.String("run_id", result.Run.RunID), zap.Error(err))
		if runErr == nil {
			return err
		}
	}

	return runErr
}

func openSinks(ctx context.Context, cfg config.Config) (storage.Multi, func(), error) {
	var sinks storage.Multi
	closeFn := func() {}

	if cfg.Out != "" {
		sinks = append(sinks, storage.NewJsonlStorage(cfg.Out))
	}
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return nil, closeFn, fmt.Errorf("connect postgres: %w", err)
		}
		sinks = append(sinks, store)
		closeFn = store.Close
	}
	return sinks, closeFn, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
