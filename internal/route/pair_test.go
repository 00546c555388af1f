package route

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestNewTokenPairOrdering(t *testing.T) {
	pair, err := NewTokenPair(tokenB, tokenA)
	require.NoError(t, err)
	require.Equal(t, tokenA, pair.Token0)
	require.Equal(t, tokenB, pair.Token1)
	require.True(t, pair.Ordered())

	again, err := NewTokenPair(pair.Token0, pair.Token1)
	require.NoError(t, err)
	require.Equal(t, pair, again)

	flipped, err := NewTokenPair(pair.Token1, pair.Token0)
	require.NoError(t, err)
	require.Equal(t, pair, flipped)
}

func TestNewTokenPairMatchesLowercaseHexOrder(t *testing.T) {
	// Checksummed hex mixes case; ordering must follow the bytes.
	lower := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	upper := common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")

	pair, err := NewTokenPair(upper, lower)
	require.NoError(t, err)
	require.Equal(t, lower, pair.Token0)
}

func TestNewTokenPairRejectsDuplicate(t *testing.T) {
	_, err := NewTokenPair(tokenA, tokenA)
	require.Error(t, err)
}

func TestParseRatio(t *testing.T) {
	ratio, err := ParseRatio("q128:1")
	require.NoError(t, err)
	require.Equal(t, 0, ratio.Cmp(Q128))

	ratio, err = ParseRatio("q128:0.5")
	require.NoError(t, err)
	require.Equal(t, 0, ratio.Cmp(new(big.Int).Rsh(Q128, 1)))

	ratio, err = ParseRatio("0x100000000000000000000000000000000")
	require.NoError(t, err)
	require.Equal(t, 0, ratio.Cmp(Q128))

	ratio, err = ParseRatio(Q128.String())
	require.NoError(t, err)
	require.Equal(t, 0, ratio.Cmp(Q128))

	for _, bad := range []string{"", "0", "-5", "q128:-1", "q128:abc", "nope"} {
		_, err := ParseRatio(bad)
		require.Error(t, err, bad)
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount("1000000000000000000")
	require.NoError(t, err)
	require.Equal(t, 0, amount.Cmp(ether(1)))

	_, err = ParseAmount("-1")
	require.Error(t, err)
}
