package node

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

// Config controls a locally spawned anvil node.
type Config struct {
	Binary       string
	Host         string
	BasePort     int
	WorkerID     int
	ChainID      uint64
	StartRetries int
	StartBackoff time.Duration
	ExtraArgs    []string
}

// Node is a running ephemeral chain node owned by this process.
type Node struct {
	cmd    *exec.Cmd
	url    string
	logger *zap.Logger

	once    sync.Once
	done    chan struct{}
	waitErr error
}

// Port returns the listening port for a worker so parallel suites never share state.
func (c Config) Port() int {
	return c.BasePort + c.WorkerID
}

// Args builds the anvil command line.
func (c Config) Args() []string {
	args := []string{
		"--host", c.Host,
		"--port", strconv.Itoa(c.Port()),
		"--silent",
	}
	if c.ChainID != 0 {
		args = append(args, "--chain-id", strconv.FormatUint(c.ChainID, 10))
	}
	return append(args, c.ExtraArgs...)
}

// Start launches anvil and blocks until it answers eth_chainId.
func Start(ctx context.Context, cfg Config, logger *zap.Logger) (*Node, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Binary == "" {
		cfg.Binary = "anvil"
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}

	cmd := exec.Command(cfg.Binary, cfg.Args()...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", cfg.Binary, err)
	}

	n := &Node{
		cmd:    cmd,
		url:    LocalURL(cfg.Host, cfg.Port()),
		logger: logger,
		done:   make(chan struct{}),
	}
	go func() {
		n.waitErr = cmd.Wait()
		close(n.done)
	}()

	logger.Info("node starting", zap.String("binary", cfg.Binary), zap.String("url", n.url), zap.Int("pid", cmd.Process.Pid))

	err := withRetry(ctx, cfg.StartRetries, cfg.StartBackoff, func(ctx context.Context) error {
		select {
		case <-n.done:
			return fmt.Errorf("node exited: %v", n.waitErr)
		default:
		}
		return ping(ctx, n.url)
	})
	if err != nil {
		n.Stop()
		return nil, fmt.Errorf("wait for node: %w", err)
	}

	logger.Info("node ready", zap.String("url", n.url))
	return n, nil
}

// URL returns the node's HTTP RPC endpoint.
func (n *Node) URL() string {
	return n.url
}

// Stop kills the node process and waits for it to exit.
func (n *Node) Stop() {
	if n == nil || n.cmd == nil || n.cmd.Process == nil {
		return
	}
	n.once.Do(func() {
		if err := n.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			n.logger.Warn("kill node", zap.Error(err))
		}
		<-n.done
		n.logger.Info("node stopped", zap.String("url", n.url))
	})
}

func ping(ctx context.Context, url string) error {
	callCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	client, err := rpc.DialContext(callCtx, url)
	if err != nil {
		return err
	}
	defer client.Close()

	var chainID string
	return client.CallContext(callCtx, &chainID, "eth_chainId")
}
