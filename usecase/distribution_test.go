package usecase

import (
	"math/big"
	"testing"
	"time"

	"staking/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributionPaysExactShares(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(2000))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(300))
	fix.fund(t, domain.CurrencyPrincipal, bob, tokens(700))

	_, err := fix.stake.Open(alice, tokens(300), 3)
	require.NoError(t, err)
	_, err = fix.stake.Open(bob, tokens(700), 3)
	require.NoError(t, err)

	// Exactly at the dividend lock boundary both stakes count.
	fix.advance(testDividendLock)
	id, err := fix.distribution.Create(adminAddr, tokens(1000))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	_, _, distributionReserve := fix.counters(t)
	assertAmount(t, tokens(1000), distributionReserve)

	eligible, claimed, err := fix.distribution.SnapshotOf(id, alice)
	require.NoError(t, err)
	assertAmount(t, tokens(300), eligible)
	assert.False(t, claimed)

	share, err := fix.distribution.Claim(alice, id)
	require.NoError(t, err)
	assertAmount(t, tokens(300), share)
	assertAmount(t, tokens(300), fix.balance(t, domain.CurrencySettlement, alice))

	share, err = fix.distribution.Claim(bob, id)
	require.NoError(t, err)
	assertAmount(t, tokens(700), share)

	_, _, distributionReserve = fix.counters(t)
	assertAmount(t, new(big.Int), distributionReserve)

	record, err := fix.distribution.Get(id)
	require.NoError(t, err)
	assertAmount(t, tokens(1000), record.ClaimedAmount)
	assertAmount(t, new(big.Int), record.Undistributed())
}

func TestCreateValidation(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(100))

	_, err := fix.stake.Open(alice, tokens(100), 1)
	require.NoError(t, err)
	fix.advance(testDividendLock)

	_, err = fix.distribution.Create(alice, tokens(10))
	assert.ErrorIs(t, err, domain.ErrorUnauthorized)

	_, err = fix.distribution.Create(adminAddr, new(big.Int))
	assert.ErrorIs(t, err, domain.ErrorZeroAmount)

	_, err = fix.distribution.Create(adminAddr, nil)
	assert.ErrorIs(t, err, domain.ErrorZeroAmount)

	// 100 settlement cannot cover a 1000 round plus the interest reserve.
	_, err = fix.distribution.Create(adminAddr, tokens(1000))
	assert.ErrorIs(t, err, domain.ErrorInsufficientFunds)
}

func TestCreateRequiresAgedStakes(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(100))

	_, err := fix.stake.Open(alice, tokens(100), 3)
	require.NoError(t, err)

	fix.advance(testDividendLock - time.Hour)
	_, err = fix.distribution.Create(adminAddr, tokens(10))
	assert.ErrorIs(t, err, domain.ErrorNoEligibleStakers)

	// The failed round rolled back completely, id 1 is still free.
	fix.advance(time.Hour)
	id, err := fix.distribution.Create(adminAddr, tokens(10))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)
}

func TestSnapshotIgnoresLaterActivity(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(2000))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(300))
	fix.fund(t, domain.CurrencyPrincipal, bob, tokens(1200))

	aliceIndex, err := fix.stake.Open(alice, tokens(300), 1)
	require.NoError(t, err)
	_, err = fix.stake.Open(bob, tokens(700), 1)
	require.NoError(t, err)

	fix.advance(testDividendLock)
	id, err := fix.distribution.Create(adminAddr, tokens(1000))
	require.NoError(t, err)

	// Alice leaves and bob doubles down after the snapshot was taken.
	_, err = fix.stake.Close(alice, aliceIndex)
	require.NoError(t, err)
	_, err = fix.stake.Open(bob, tokens(500), 1)
	require.NoError(t, err)

	share, err := fix.distribution.Claim(alice, id)
	require.NoError(t, err)
	assertAmount(t, tokens(300), share)

	share, err = fix.distribution.Claim(bob, id)
	require.NoError(t, err)
	assertAmount(t, tokens(700), share)
}

func TestEligibilityExcludesWithdrawn(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(2000))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(300))
	fix.fund(t, domain.CurrencyPrincipal, bob, tokens(700))

	aliceIndex, err := fix.stake.Open(alice, tokens(300), 1)
	require.NoError(t, err)
	_, err = fix.stake.Open(bob, tokens(700), 1)
	require.NoError(t, err)

	fix.advance(testDividendLock)
	_, err = fix.stake.Close(alice, aliceIndex)
	require.NoError(t, err)

	id, err := fix.distribution.Create(adminAddr, tokens(700))
	require.NoError(t, err)

	record, err := fix.distribution.Get(id)
	require.NoError(t, err)
	assertAmount(t, tokens(700), record.EligibleTotal)

	_, err = fix.distribution.Claim(alice, id)
	assert.ErrorIs(t, err, domain.ErrorNoEligibleSnapshot)

	share, err := fix.distribution.Claim(bob, id)
	require.NoError(t, err)
	assertAmount(t, tokens(700), share)
}

func TestClaimGuards(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(2000))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(300))

	_, err := fix.stake.Open(alice, tokens(300), 1)
	require.NoError(t, err)
	fix.advance(testDividendLock)

	_, err = fix.distribution.Claim(alice, 1)
	assert.ErrorIs(t, err, domain.ErrorDistributionNotFound)

	id, err := fix.distribution.Create(adminAddr, tokens(100))
	require.NoError(t, err)

	_, err = fix.distribution.Claim(carol, id)
	assert.ErrorIs(t, err, domain.ErrorNoEligibleSnapshot)

	_, err = fix.distribution.Claim(alice, id)
	require.NoError(t, err)
	_, err = fix.distribution.Claim(alice, id)
	assert.ErrorIs(t, err, domain.ErrorAlreadyClaimed)
}

func TestZeroShareStillConsumesClaim(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(10))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(1))
	fix.fund(t, domain.CurrencyPrincipal, bob, tokens(2))

	_, err := fix.stake.Open(alice, tokens(1), 1)
	require.NoError(t, err)
	_, err = fix.stake.Open(bob, tokens(2), 1)
	require.NoError(t, err)
	fix.advance(testDividendLock)

	// One base unit across three eligible tokens floors every share to
	// zero.
	id, err := fix.distribution.Create(adminAddr, big.NewInt(1))
	require.NoError(t, err)

	share, err := fix.distribution.Claim(alice, id)
	require.NoError(t, err)
	assertAmount(t, new(big.Int), share)

	_, err = fix.distribution.Claim(alice, id)
	assert.ErrorIs(t, err, domain.ErrorAlreadyClaimed)

	_, _, distributionReserve := fix.counters(t)
	assertAmount(t, big.NewInt(1), distributionReserve)
}

func TestRecoverSweepsRoundingRemainder(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(10))
	for _, user := range []common.Address{alice, bob, carol} {
		fix.fund(t, domain.CurrencyPrincipal, user, tokens(1))
		_, err := fix.stake.Open(user, tokens(1), 1)
		require.NoError(t, err)
	}
	fix.advance(testDividendLock)

	id, err := fix.distribution.Create(adminAddr, big.NewInt(100))
	require.NoError(t, err)

	// Each share floors to 33, so two claims leave 34 unclaimed.
	for _, user := range []common.Address{alice, bob} {
		share, err := fix.distribution.Claim(user, id)
		require.NoError(t, err)
		assertAmount(t, big.NewInt(33), share)
	}

	fix.advance(testRecoveryWait - time.Second)
	_, err = fix.distribution.Recover(adminAddr, id, adminAddr)
	assert.ErrorIs(t, err, domain.ErrorRecoveryWindowOpen)

	fix.advance(time.Second)
	recovered, err := fix.distribution.Recover(adminAddr, id, adminAddr)
	require.NoError(t, err)
	assertAmount(t, big.NewInt(34), recovered)
	assertAmount(t, big.NewInt(34), fix.balance(t, domain.CurrencySettlement, adminAddr))

	_, _, distributionReserve := fix.counters(t)
	assertAmount(t, new(big.Int), distributionReserve)

	// The retired round accepts no late claims, snapshot or not.
	_, err = fix.distribution.Claim(carol, id)
	assert.ErrorIs(t, err, domain.ErrorDistributionNotFound)
}

func TestRecoverGuards(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(2000))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(300))
	fix.fund(t, domain.CurrencyPrincipal, bob, tokens(700))

	_, err := fix.stake.Open(alice, tokens(300), 1)
	require.NoError(t, err)
	_, err = fix.stake.Open(bob, tokens(700), 1)
	require.NoError(t, err)
	fix.advance(testDividendLock)

	id, err := fix.distribution.Create(adminAddr, tokens(1000))
	require.NoError(t, err)

	_, err = fix.distribution.Recover(alice, id, alice)
	assert.ErrorIs(t, err, domain.ErrorUnauthorized)

	_, err = fix.distribution.Recover(adminAddr, id, domain.ZeroAddress)
	assert.ErrorIs(t, err, domain.ErrorZeroAddress)

	_, err = fix.distribution.Recover(adminAddr, 99, adminAddr)
	assert.ErrorIs(t, err, domain.ErrorDistributionNotFound)

	_, err = fix.distribution.Claim(alice, id)
	require.NoError(t, err)
	_, err = fix.distribution.Claim(bob, id)
	require.NoError(t, err)

	fix.advance(testRecoveryWait)
	_, err = fix.distribution.Recover(adminAddr, id, adminAddr)
	assert.ErrorIs(t, err, domain.ErrorNothingToRecover)
}
