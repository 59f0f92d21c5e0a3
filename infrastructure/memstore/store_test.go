package memstore

import (
	"fmt"
	"math/big"
	"testing"
	"time"

	"staking/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	user1 = common.HexToAddress("0x0000000000000000000000000000000000000001")
	user2 = common.HexToAddress("0x0000000000000000000000000000000000000002")
	user3 = common.HexToAddress("0x0000000000000000000000000000000000000003")
)

func TestExecuteRollsBackOnError(t *testing.T) {
	store := New()

	boom := fmt.Errorf("boom")
	err := store.Execute(func(tx domain.Tx) error {
		if err := tx.Accounts().Credit(domain.CurrencyPrincipal, user1, big.NewInt(100)); err != nil {
			return err
		}
		if err := tx.Registry().Add(user1); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = store.View(func(tx domain.Tx) error {
		balance, err := tx.Accounts().BalanceOf(domain.CurrencyPrincipal, user1)
		require.NoError(t, err)
		assert.Zero(t, balance.Sign())

		present, err := tx.Registry().Contains(user1)
		require.NoError(t, err)
		assert.False(t, present)
		return nil
	})
	require.NoError(t, err)
}

func TestExecuteCommitsOnNil(t *testing.T) {
	store := New()

	err := store.Execute(func(tx domain.Tx) error {
		return tx.Accounts().Credit(domain.CurrencySettlement, user1, big.NewInt(5))
	})
	require.NoError(t, err)

	err = store.View(func(tx domain.Tx) error {
		balance, err := tx.Accounts().BalanceOf(domain.CurrencySettlement, user1)
		require.NoError(t, err)
		assert.Equal(t, int64(5), balance.Int64())
		return nil
	})
	require.NoError(t, err)
}

func TestRegistrySwapsWithLast(t *testing.T) {
	store := New()

	err := store.Execute(func(tx domain.Tx) error {
		registry := tx.Registry()
		for _, user := range []common.Address{user1, user2, user3} {
			if err := registry.Add(user); err != nil {
				return err
			}
		}
		// Adding a member twice keeps one slot.
		return registry.Add(user2)
	})
	require.NoError(t, err)

	err = store.Execute(func(tx domain.Tx) error {
		return tx.Registry().Remove(user1)
	})
	require.NoError(t, err)

	err = store.View(func(tx domain.Tx) error {
		registry := tx.Registry()

		count, err := registry.Count()
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		// The last member moved into the vacated first slot.
		list, err := registry.List()
		require.NoError(t, err)
		assert.Equal(t, []common.Address{user3, user2}, list)

		present, err := registry.Contains(user1)
		require.NoError(t, err)
		assert.False(t, present)
		return nil
	})
	require.NoError(t, err)

	// Removing an absent member is a no-op.
	err = store.Execute(func(tx domain.Tx) error {
		return tx.Registry().Remove(user1)
	})
	require.NoError(t, err)
}

func TestBootstrapSeedsOnce(t *testing.T) {
	store := New()

	plans := [domain.PlanCount]domain.Plan{
		{APY: 100, Duration: time.Hour},
		{APY: 200, Duration: 2 * time.Hour},
		{APY: 300, Duration: 3 * time.Hour},
		{APY: 400, Duration: 4 * time.Hour},
	}
	err := store.Bootstrap(big.NewInt(7), big.NewInt(11), plans)
	require.NoError(t, err)

	// A second bootstrap must not clobber adjusted parameters.
	err = store.Execute(func(tx domain.Tx) error {
		return tx.Params().SetRate(big.NewInt(9))
	})
	require.NoError(t, err)

	err = store.Bootstrap(big.NewInt(7), big.NewInt(11), plans)
	require.NoError(t, err)

	err = store.View(func(tx domain.Tx) error {
		rate, err := tx.Params().Rate()
		require.NoError(t, err)
		assert.Equal(t, int64(9), rate.Int64())

		plan, err := tx.Params().Plan(3)
		require.NoError(t, err)
		assert.Equal(t, uint32(300), plan.APY)

		_, err = tx.Params().Plan(0)
		assert.ErrorIs(t, err, domain.ErrorInvalidPlan)
		_, err = tx.Params().Plan(5)
		assert.ErrorIs(t, err, domain.ErrorInvalidPlan)
		return nil
	})
	require.NoError(t, err)
}

func TestBooksCloneOnRead(t *testing.T) {
	store := New()

	err := store.Execute(func(tx domain.Tx) error {
		_, err := tx.Positions().Append(user1, &domain.StakePosition{
			Principal: big.NewInt(100),
			Interest:  big.NewInt(2),
		})
		return err
	})
	require.NoError(t, err)

	// Mutating a read result must not leak into the stored state.
	err = store.View(func(tx domain.Tx) error {
		position, err := tx.Positions().Get(user1, 0)
		require.NoError(t, err)
		position.Principal.SetInt64(0)
		position.Withdrawn = true
		return nil
	})
	require.NoError(t, err)

	err = store.View(func(tx domain.Tx) error {
		position, err := tx.Positions().Get(user1, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(100), position.Principal.Int64())
		assert.False(t, position.Withdrawn)

		_, err = tx.Positions().Get(user1, 1)
		assert.ErrorIs(t, err, domain.ErrorInvalidIndex)
		return nil
	})
	require.NoError(t, err)
}

func TestActivePrincipalSkipsWithdrawn(t *testing.T) {
	store := New()

	err := store.Execute(func(tx domain.Tx) error {
		book := tx.Positions()
		if _, err := book.Append(user1, &domain.StakePosition{Principal: big.NewInt(40), Interest: new(big.Int)}); err != nil {
			return err
		}
		if _, err := book.Append(user1, &domain.StakePosition{Principal: big.NewInt(60), Interest: new(big.Int)}); err != nil {
			return err
		}
		return book.MarkWithdrawn(user1, 0)
	})
	require.NoError(t, err)

	err = store.View(func(tx domain.Tx) error {
		active, err := tx.Positions().ActivePrincipalOf(user1)
		require.NoError(t, err)
		assert.Equal(t, int64(60), active.Int64())
		return nil
	})
	require.NoError(t, err)
}
