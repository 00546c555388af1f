package contracts

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"strikebench/internal/chain"
)

const testArtifactJSON = `{
  "abi": [
    {"inputs": [{"name": "engine", "type": "address"}], "stateMutability": "nonpayable", "type": "constructor"}
  ],
  "bytecode": {"object": "0x6080604052"}
}`

func TestParseArtifact(t *testing.T) {
	artifact, err := ParseArtifact("RouterApprove", []byte(testArtifactJSON))
	require.NoError(t, err)
	require.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, artifact.Bytecode)

	code, err := artifact.CreationCode(engineAddr)
	require.NoError(t, err)
	require.Len(t, code, 5+32)
	require.Equal(t, engineAddr.Bytes(), code[5+12:])
}

func TestParseArtifactErrors(t *testing.T) {
	_, err := ParseArtifact("x", []byte(`{"bytecode": {"object": "0x60"}}`))
	require.Error(t, err)

	_, err = ParseArtifact("x", []byte(`{"abi": [], "bytecode": {"object": "0x"}}`))
	require.Error(t, err)

	_, err = ParseArtifact("x", []byte(`not json`))
	require.Error(t, err)
}

func TestDeployRouterAppendsEngine(t *testing.T) {
	artifact, err := ParseArtifact("RouterApprove", []byte(testArtifactJSON))
	require.NoError(t, err)

	backend := &fakeBackend{deployed: routerAddr}
	got, err := DeployRouter(context.Background(), backend, alice, artifact, engineAddr)
	require.NoError(t, err)
	require.Equal(t, routerAddr, got)
	require.Len(t, backend.calls, 1)
	require.Equal(t, engineAddr.Bytes(), backend.calls[0].data[len(backend.calls[0].data)-20:])
}

func TestDeployWithoutAddressFails(t *testing.T) {
	artifact, err := ParseArtifact("Engine", []byte(testArtifactJSON))
	require.NoError(t, err)

	_, err = DeployEngine(context.Background(), &fakeBackend{}, alice, artifact)
	require.ErrorIs(t, err, chain.ErrNoContractAddress)
}

func TestTokenMintAndBalance(t *testing.T) {
	backend := &fakeBackend{callValue: common.LeftPadBytes(big.NewInt(42).Bytes(), 32)}
	token, err := NewToken(backend, token0)
	require.NoError(t, err)

	_, err = token.Mint(context.Background(), alice, routerAddr, big.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, "transact", backend.calls[0].kind)
	require.Equal(t, token0, backend.calls[0].to)

	balance, err := token.BalanceOf(context.Background(), alice)
	require.NoError(t, err)
	require.Equal(t, int64(42), balance.Int64())
}

func TestDecodeTransfers(t *testing.T) {
	parsed, err := MockERC20ABI()
	require.NoError(t, err)
	event := parsed.Events["Transfer"]

	amount := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	data, err := event.Inputs.NonIndexed().Pack(amount)
	require.NoError(t, err)

	transferLog := &types.Log{
		Address: token0,
		Topics: []common.Hash{
			event.ID,
			common.BytesToHash(alice.Bytes()),
			common.BytesToHash(engineAddr.Bytes()),
		},
		Data: data,
	}
	approvalLog := &types.Log{
		Address: token0,
		Topics:  []common.Hash{parsed.Events["Approval"].ID, {}, {}},
	}
	foreignLog := &types.Log{
		Address: common.HexToAddress("0x1234"),
		Topics:  transferLog.Topics,
		Data:    data,
	}

	transfers, err := DecodeTransfers([]*types.Log{transferLog, approvalLog, foreignLog}, map[common.Address]bool{token0: true})
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	require.Equal(t, token0.Hex(), transfers[0].Token)
	require.Equal(t, alice.Hex(), transfers[0].From)
	require.Equal(t, engineAddr.Hex(), transfers[0].To)
	require.Equal(t, amount.String(), transfers[0].Amount)
}
