package model

import "encoding/json"

// StepResult is the observed outcome of one benchmark step.
type StepResult struct {
	RunID       string          `json:"run_id"`
	Index       int             `json:"index"`
	Step        string          `json:"step"`
	Label       string          `json:"label,omitempty"`
	Kind        string          `json:"kind"`
	Account     string          `json:"account"`
	GasUsed     uint64          `json:"gas_used"`
	TxHash      string          `json:"tx_hash"`
	BlockNumber uint64          `json:"block_number"`
	Transfers   []TokenTransfer `json:"transfers"`
	GasCeiling  string          `json:"gas_ceiling,omitempty"`
	CeilingMet  *bool           `json:"ceiling_met,omitempty"`
	Measured    bool            `json:"measured"`
}

// MarshalJSON keeps Transfers as an array even when empty.
func (r StepResult) MarshalJSON() ([]byte, error) {
	type Alias StepResult
	if r.Transfers == nil {
		r.Transfers = []TokenTransfer{}
	}
	return json.Marshal(Alias(r))
}
