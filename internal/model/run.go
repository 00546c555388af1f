package model

import "time"

// Run status values.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run describes one benchmark scenario execution.
type Run struct {
	RunID      string     `json:"run_id"`
	Scenario   string     `json:"scenario"`
	ChainID    uint64     `json:"chain_id"`
	RPCURL     string     `json:"rpc_url"`
	Token0     string     `json:"token0"`
	Token1     string     `json:"token1"`
	Engine     string     `json:"engine"`
	Router     string     `json:"router"`
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
