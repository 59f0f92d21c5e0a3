package usecase

import (
	"math/big"
	"testing"
	"time"

	"staking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVotingPowerCombinesStakeAndVesting(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))
	fix.fund(t, domain.CurrencyPrincipal, treasuryAddr, tokens(1000))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(600))

	_, err := fix.stake.Open(alice, tokens(600), 1)
	require.NoError(t, err)
	err = fix.vesting.Grant(adminAddr, alice, tokens(300), fix.now, 0, 360*24*time.Hour)
	require.NoError(t, err)
	err = fix.vesting.Grant(adminAddr, bob, tokens(700), fix.now, 0, 360*24*time.Hour)
	require.NoError(t, err)

	power, err := fix.governance.VotingPowerOf(alice)
	require.NoError(t, err)
	assertAmount(t, tokens(600), power.Staked)
	assertAmount(t, tokens(300), power.Vested)
	assertAmount(t, tokens(900), power.Total)

	power, err = fix.governance.VotingPowerOf(bob)
	require.NoError(t, err)
	assertAmount(t, new(big.Int), power.Staked)
	assertAmount(t, tokens(700), power.Total)

	power, err = fix.governance.VotingPowerOf(carol)
	require.NoError(t, err)
	assertAmount(t, new(big.Int), power.Total)
}

func TestVotingPowerShrinksWithReleases(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencyPrincipal, treasuryAddr, tokens(1000))

	err := fix.vesting.Grant(adminAddr, bob, tokens(1000), fix.now, 0, 100*24*time.Hour)
	require.NoError(t, err)

	fix.advance(50 * 24 * time.Hour)
	_, err = fix.vesting.Release(bob)
	require.NoError(t, err)

	// Released tokens are bob's own liquid balance, not voting weight.
	power, err := fix.governance.VotingPowerOf(bob)
	require.NoError(t, err)
	assertAmount(t, tokens(500), power.Total)
}

func TestCanProposeAgainstThreshold(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(500))
	fix.fund(t, domain.CurrencyPrincipal, bob, tokens(499))

	_, err := fix.stake.Open(alice, tokens(500), 1)
	require.NoError(t, err)
	_, err = fix.stake.Open(bob, tokens(499), 1)
	require.NoError(t, err)

	// The fixture threshold is 500 tokens, met exactly by alice.
	ok, err := fix.governance.CanPropose(alice)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fix.governance.CanPropose(bob)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotListsEveryWeightHolder(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))
	fix.fund(t, domain.CurrencyPrincipal, treasuryAddr, tokens(1000))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(600))

	_, err := fix.stake.Open(alice, tokens(600), 1)
	require.NoError(t, err)
	err = fix.vesting.Grant(adminAddr, bob, tokens(400), fix.now, 0, 360*24*time.Hour)
	require.NoError(t, err)

	entries, err := fix.governance.Snapshot()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byAddress := make(map[string]*big.Int)
	for _, entry := range entries {
		byAddress[entry.Address.Hex()] = entry.Power
	}
	assertAmount(t, tokens(600), byAddress[alice.Hex()])
	assertAmount(t, tokens(400), byAddress[bob.Hex()])
}
