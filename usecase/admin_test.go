package usecase

import (
	"math/big"
	"testing"
	"time"

	"staking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRateAffectsFutureOpensOnly(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(200))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(2000))

	first, err := fix.stake.Open(alice, tokens(1000), 3)
	require.NoError(t, err)

	err = fix.admin.SetRate(adminAddr, parseRate(t, "2.0"))
	require.NoError(t, err)

	second, err := fix.stake.Open(alice, tokens(1000), 3)
	require.NoError(t, err)

	positions, err := fix.stake.PositionsOf(alice)
	require.NoError(t, err)
	assertAmount(t, planThreeInterest, positions[first].Interest)
	assertAmount(t, new(big.Int).Mul(planThreeInterest, big.NewInt(2)), positions[second].Interest)
}

func TestSetRateValidation(t *testing.T) {
	fix := newFixture(t)

	err := fix.admin.SetRate(alice, parseRate(t, "2.0"))
	assert.ErrorIs(t, err, domain.ErrorUnauthorized)

	err = fix.admin.SetRate(adminAddr, new(big.Int))
	assert.ErrorIs(t, err, domain.ErrorInvalidRate)

	err = fix.admin.SetRate(adminAddr, nil)
	assert.ErrorIs(t, err, domain.ErrorInvalidRate)
}

func TestSetMinimumStake(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(100))

	err := fix.admin.SetMinimumStake(alice, tokens(10))
	assert.ErrorIs(t, err, domain.ErrorUnauthorized)

	err = fix.admin.SetMinimumStake(adminAddr, tokens(10))
	require.NoError(t, err)

	_, err = fix.stake.Open(alice, tokens(9), 1)
	assert.ErrorIs(t, err, domain.ErrorBelowMinimum)

	// A zero minimum disables the floor entirely.
	err = fix.admin.SetMinimumStake(adminAddr, new(big.Int))
	require.NoError(t, err)

	_, err = fix.stake.Open(alice, big.NewInt(1), 1)
	require.NoError(t, err)
}

func TestSetPlanRewritesFutureTerms(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(1000))

	err := fix.admin.SetPlan(adminAddr, 3, 1897, 90*24*time.Hour)
	require.NoError(t, err)

	index, err := fix.stake.Open(alice, tokens(1000), 3)
	require.NoError(t, err)

	positions, err := fix.stake.PositionsOf(alice)
	require.NoError(t, err)
	assert.Equal(t, uint32(1897), positions[index].APY)
}

func TestSetPlanValidation(t *testing.T) {
	fix := newFixture(t)

	err := fix.admin.SetPlan(alice, 1, 500, 24*time.Hour)
	assert.ErrorIs(t, err, domain.ErrorUnauthorized)

	err = fix.admin.SetPlan(adminAddr, 1, 0, 24*time.Hour)
	assert.ErrorIs(t, err, domain.ErrorInvalidPlan)

	err = fix.admin.SetPlan(adminAddr, 1, 10001, 24*time.Hour)
	assert.ErrorIs(t, err, domain.ErrorInvalidPlan)

	err = fix.admin.SetPlan(adminAddr, 1, 500, 0)
	assert.ErrorIs(t, err, domain.ErrorInvalidPlan)

	err = fix.admin.SetPlan(adminAddr, 5, 500, 24*time.Hour)
	assert.ErrorIs(t, err, domain.ErrorInvalidPlan)
}
