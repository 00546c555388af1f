package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStepResultJSONEmptyTransfers(t *testing.T) {
	result := StepResult{
		RunID:   "run-1",
		Step:    "add_liquidity_hot",
		Kind:    "add",
		GasUsed: 52000,
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	transfers, ok := decoded["transfers"].([]interface{})
	require.True(t, ok, "transfers should be an array, got %T", decoded["transfers"])
	require.Empty(t, transfers)
	require.NotContains(t, decoded, "ceiling_met")
	require.NotContains(t, decoded, "label")
}

func TestTokenTransferAmountIsString(t *testing.T) {
	data, err := json.Marshal(TokenTransfer{
		Token:  "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		From:   "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		To:     "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512",
		Amount: "1000000000000000000",
	})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.IsType(t, "", decoded["amount"])
}
