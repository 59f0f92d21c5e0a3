package usecase

import (
	"sync"
	"testing"

	"staking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardRejectsReentrantEntry(t *testing.T) {
	guard := NewGuard()

	var inner error
	err := guard.Do(func() error {
		inner = guard.Do(func() error { return nil })
		return inner
	})

	assert.ErrorIs(t, inner, domain.ErrorReentrantCall)
	assert.ErrorIs(t, err, domain.ErrorReentrantCall)

	// The failed nested entry must not leave the guard locked.
	err = guard.Do(func() error { return nil })
	assert.NoError(t, err)
}

func TestGuardSerializesConcurrentCallers(t *testing.T) {
	guard := NewGuard()

	var inside, peak, total int
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := guard.Do(func() error {
				inside++
				if inside > peak {
					peak = inside
				}
				total++
				inside--
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, peak)
	assert.Equal(t, 16, total)
}

// A mutating operation calling another mutating operation through the same
// guard is the exploit class the reentrancy check closes: the inner call is
// rejected and the outer transaction rolls back whole.
func TestReentrantOperationRollsBack(t *testing.T) {
	fix := newFixture(t)
	fix.fund(t, domain.CurrencySettlement, treasuryAddr, tokens(100))
	fix.fund(t, domain.CurrencyPrincipal, alice, tokens(100))

	index, err := fix.stake.Open(alice, tokens(100), 1)
	require.NoError(t, err)

	guard := fix.stake.guard
	err = guard.Do(func() error {
		_, err := fix.stake.Close(alice, index)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrorReentrantCall)

	positions, err := fix.stake.PositionsOf(alice)
	require.NoError(t, err)
	assert.False(t, positions[index].Withdrawn)
}
