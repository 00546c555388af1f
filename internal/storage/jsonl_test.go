package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"strikebench/internal/model"
)

func TestJsonlStorageAppendsRunAndSteps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gas.jsonl")
	sink := NewJsonlStorage(path)

	run := model.Run{RunID: "run-1", Scenario: "strike-engine", Status: model.RunStatusCompleted, StartedAt: time.Unix(0, 0).UTC()}
	steps := []model.StepResult{
		{RunID: "run-1", Index: 0, Step: "add_liquidity_seed", GasUsed: 150000},
		{RunID: "run-1", Index: 1, Step: "add_liquidity_cold", GasUsed: 120000, Measured: true},
	}

	require.NoError(t, sink.PutRun(context.Background(), run, steps))
	require.NoError(t, sink.PutRun(context.Background(), run, nil))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var types []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var line map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		var typ string
		require.NoError(t, json.Unmarshal(line["type"], &typ))
		types = append(types, typ)
	}
	require.NoError(t, scanner.Err())
	require.Equal(t, []string{"run", "step", "step", "run"}, types)
}

func TestJsonlStorageCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "gas.jsonl")
	err := NewJsonlStorage(path).PutRun(ctx, model.Run{}, nil)
	require.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

type failingSink struct{ calls int }

func (f *failingSink) PutRun(ctx context.Context, run model.Run, steps []model.StepResult) error {
	f.calls++
	return errors.New("sink down")
}

func TestMultiStopsAtFirstError(t *testing.T) {
	first := &failingSink{}
	second := &failingSink{}
	err := Multi{nil, first, second}.PutRun(context.Background(), model.Run{}, nil)
	require.EqualError(t, err, "sink down")
	require.Equal(t, 1, first.calls)
	require.Equal(t, 0, second.calls)
}
