package usecase

import (
	"math/big"
	"testing"
	"time"

	"staking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1000 tokens at 897 bps over 90 days, rate 1.0, both currencies 18
// decimals.
var planThreeInterest, _ = new(big.Int).SetString("22117808219178082191", 10)

func TestOpenSnapshotsInterest(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(1000))

	index, err := fix.stake.Open(alice, tokens(1000), 3)
	require.NoError(t, err)
	assert.Equal(t, 0, index)

	positions, err := fix.stake.PositionsOf(alice)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assertAmount(t, tokens(1000), positions[0].Principal)
	assert.Equal(t, uint32(897), positions[0].APY)
	assert.Equal(t, 90*24*time.Hour, positions[0].Duration)
	assertAmount(t, planThreeInterest, positions[0].Interest)
	assert.False(t, positions[0].Withdrawn)

	assertAmount(t, new(big.Int), fix.balance(t, domain.CurrencyPrincipal, alice))
	assertAmount(t, tokens(1000), fix.balance(t, domain.CurrencyPrincipal, treasuryAddr))

	staked, interestReserve, distributionReserve := fix.counters(t)
	assertAmount(t, tokens(1000), staked)
	assertAmount(t, planThreeInterest, interestReserve)
	assertAmount(t, new(big.Int), distributionReserve)

	assert.True(t, fix.isRegistered(t, alice))
}

func TestOpenValidation(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(10))

	_, err := fix.stake.Open(domain.ZeroAddress, tokens(1), 1)
	assert.ErrorIs(t, err, domain.ErrorZeroAddress)

	_, err = fix.stake.Open(alice, new(big.Int), 1)
	assert.ErrorIs(t, err, domain.ErrorZeroAmount)

	_, err = fix.stake.Open(alice, nil, 1)
	assert.ErrorIs(t, err, domain.ErrorZeroAmount)

	half := new(big.Int).Div(tokens(1), big.NewInt(2))
	_, err = fix.stake.Open(alice, half, 1)
	assert.ErrorIs(t, err, domain.ErrorBelowMinimum)

	_, err = fix.stake.Open(alice, tokens(1), 0)
	assert.ErrorIs(t, err, domain.ErrorInvalidPlan)

	_, err = fix.stake.Open(alice, tokens(1), 5)
	assert.ErrorIs(t, err, domain.ErrorInvalidPlan)
}

func TestOpenFailsWhenReserveUncovered(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(1000))

	// No settlement funding at all, so the new interest obligation cannot
	// be covered.
	_, err := fix.stake.Open(alice, tokens(1000), 3)
	assert.ErrorIs(t, err, domain.ErrorInsufficientReserve)

	assertAmount(t, tokens(1000), fix.balance(t, domain.CurrencyPrincipal, alice))
	staked, interestReserve, _ := fix.counters(t)
	assertAmount(t, new(big.Int), staked)
	assertAmount(t, new(big.Int), interestReserve)
	assert.False(t, fix.isRegistered(t, alice))
}

func TestOpenFailsWithoutPrincipal(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))

	_, err := fix.stake.Open(alice, tokens(1000), 3)
	assert.ErrorIs(t, err, domain.ErrorInsufficientFunds)
}

func TestCloseAtMaturityBoundary(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(1000))

	index, err := fix.stake.Open(alice, tokens(1000), 3)
	require.NoError(t, err)

	fix.advance(90*24*time.Hour - time.Second)
	_, err = fix.stake.Close(alice, index)
	assert.ErrorIs(t, err, domain.ErrorStillLocked)

	fix.advance(time.Second)
	closed, err := fix.stake.Close(alice, index)
	require.NoError(t, err)
	require.NotNil(t, closed)
	assertAmount(t, planThreeInterest, closed.Interest)

	assertAmount(t, tokens(1000), fix.balance(t, domain.CurrencyPrincipal, alice))
	assertAmount(t, planThreeInterest, fix.balance(t, domain.CurrencySettlement, alice))

	expected := new(big.Int).Sub(tokens(100), planThreeInterest)
	assertAmount(t, expected, fix.balance(t, domain.CurrencySettlement, treasuryAddr))

	staked, interestReserve, _ := fix.counters(t)
	assertAmount(t, new(big.Int), staked)
	assertAmount(t, new(big.Int), interestReserve)
	assert.False(t, fix.isRegistered(t, alice))
}

func TestCloseRejectsRepeatAndBadIndex(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(1000))

	index, err := fix.stake.Open(alice, tokens(1000), 3)
	require.NoError(t, err)

	_, err = fix.stake.Close(alice, index+1)
	assert.ErrorIs(t, err, domain.ErrorInvalidIndex)

	fix.advance(90 * 24 * time.Hour)
	_, err = fix.stake.Close(alice, index)
	require.NoError(t, err)

	_, err = fix.stake.Close(alice, index)
	assert.ErrorIs(t, err, domain.ErrorAlreadyWithdrawn)
}

func TestCloseFailsWhenSettlementDrained(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(1000))

	index, err := fix.stake.Open(alice, tokens(1000), 3)
	require.NoError(t, err)

	// Leave one base unit less than the snapshotted interest behind.
	drain := new(big.Int).Sub(tokens(100), planThreeInterest)
	drain.Add(drain, big.NewInt(1))
	err = fix.store.Execute(func(tx domain.Tx) error {
		return tx.Accounts().Debit(domain.CurrencySettlement, treasuryAddr, drain)
	})
	require.NoError(t, err)

	fix.advance(90 * 24 * time.Hour)
	_, err = fix.stake.Close(alice, index)
	assert.ErrorIs(t, err, domain.ErrorInsufficientReserve)

	// The position survives the failed close untouched.
	positions, err := fix.stake.PositionsOf(alice)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.False(t, positions[0].Withdrawn)
	staked, _, _ := fix.counters(t)
	assertAmount(t, tokens(1000), staked)
}

func TestRegistryFollowsActivePrincipal(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(1000))

	first, err := fix.stake.Open(alice, tokens(400), 1)
	require.NoError(t, err)
	second, err := fix.stake.Open(alice, tokens(600), 3)
	require.NoError(t, err)

	staked, err := fix.stake.StakedOf(alice)
	require.NoError(t, err)
	assertAmount(t, tokens(1000), staked)

	fix.advance(30 * 24 * time.Hour)
	_, err = fix.stake.Close(alice, first)
	require.NoError(t, err)

	// One live position left, so the membership stays.
	assert.True(t, fix.isRegistered(t, alice))

	fix.advance(60 * 24 * time.Hour)
	_, err = fix.stake.Close(alice, second)
	require.NoError(t, err)
	assert.False(t, fix.isRegistered(t, alice))

	staked, err = fix.stake.StakedOf(alice)
	require.NoError(t, err)
	assertAmount(t, new(big.Int), staked)
}

func TestPendingInterestTracksLiveRate(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(1000))

	_, err := fix.stake.Open(alice, tokens(1000), 3)
	require.NoError(t, err)

	fix.advance(45 * 24 * time.Hour)
	pending, err := fix.stake.PendingInterest(alice)
	require.NoError(t, err)
	expected, _ := new(big.Int).SetString("11058904109589041095", 10)
	assertAmount(t, expected, pending)

	// Doubling the rate doubles the preview but never the snapshot.
	err = fix.admin.SetRate(adminAddr, parseRate(t, "2.0"))
	require.NoError(t, err)

	doubled, err := fix.stake.PendingInterest(alice)
	require.NoError(t, err)
	assertAmount(t, new(big.Int).Mul(expected, big.NewInt(2)), doubled)

	fix.advance(45 * 24 * time.Hour)
	closed, err := fix.stake.Close(alice, 0)
	require.NoError(t, err)
	assertAmount(t, planThreeInterest, closed.Interest)
	assertAmount(t, planThreeInterest, fix.balance(t, domain.CurrencySettlement, alice))
}

func TestPendingInterestCapsAtDuration(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(1000))

	_, err := fix.stake.Open(alice, tokens(1000), 3)
	require.NoError(t, err)

	fix.advance(200 * 24 * time.Hour)
	pending, err := fix.stake.PendingInterest(alice)
	require.NoError(t, err)
	assertAmount(t, planThreeInterest, pending)
}

func TestPreviewInterestMatchesSnapshot(t *testing.T) {
	fix := newFixture(t)

	preview, err := fix.stake.PreviewInterest(tokens(1000), 3)
	require.NoError(t, err)
	assertAmount(t, planThreeInterest, preview)

	_, err = fix.stake.PreviewInterest(tokens(1000), 9)
	assert.ErrorIs(t, err, domain.ErrorInvalidPlan)

	_, err = fix.stake.PreviewInterest(nil, 3)
	assert.ErrorIs(t, err, domain.ErrorZeroAmount)

	_, err = fix.stake.PreviewInterest(new(big.Int), 3)
	assert.ErrorIs(t, err, domain.ErrorZeroAmount)
}
