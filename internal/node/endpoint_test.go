package node

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEndpoint(t *testing.T) {
	cases := []struct {
		base     string
		workerID int
		want     string
	}{
		{"http://127.0.0.1:8545", 0, "http://127.0.0.1:8545"},
		{"http://127.0.0.1:8545", 1, "http://127.0.0.1:8545/1"},
		{"http://127.0.0.1:8545/", 7, "http://127.0.0.1:8545/7"},
		{"ws://127.0.0.1:8545/rpc", 2, "ws://127.0.0.1:8545/rpc/2"},
	}
	for _, tc := range cases {
		got, err := Endpoint(tc.base, tc.workerID)
		require.NoError(t, err, tc.base)
		require.Equal(t, tc.want, got)
	}
}

func TestEndpointInvalid(t *testing.T) {
	_, err := Endpoint("", 1)
	require.Error(t, err, "empty url")

	_, err = Endpoint("127.0.0.1:8545", 1)
	require.Error(t, err, "url without scheme")

	_, err = Endpoint("http://127.0.0.1:8545", -1)
	require.Error(t, err, "negative worker id")
}

func TestConfigArgs(t *testing.T) {
	cfg := Config{Host: "127.0.0.1", BasePort: 8545, WorkerID: 3, ChainID: 31337, ExtraArgs: []string{"--block-time", "1"}}
	require.Equal(t,
		[]string{"--host", "127.0.0.1", "--port", "8548", "--silent", "--chain-id", "31337", "--block-time", "1"},
		cfg.Args())
}

func TestWithRetry(t *testing.T) {
	attempts := 0
	err := withRetry(context.Background(), 3, time.Millisecond, func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("not ready")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, attempts)

	attempts = 0
	err = withRetry(context.Background(), 1, time.Millisecond, func(context.Context) error {
		attempts++
		return errors.New("down")
	})
	require.EqualError(t, err, "down")
	require.Equal(t, 2, attempts)
}
