package usecase

import (
	"fmt"
	"log"
	"math/big"
	"time"

	"staking/domain"
	"staking/interface/exporter"

	"github.com/ethereum/go-ethereum/common"
)

// StakeInteractor owns the stake ledger: opening and closing positions and
// the interest previews.
type StakeInteractor struct {
	store              domain.Store
	guard              *Guard
	treasury           common.Address
	principalDecimals  uint8
	settlementDecimals uint8
	clock              func() time.Time
}

func NewStakeInteractor(store domain.Store,
	guard *Guard,
	treasury common.Address,
	principalDecimals uint8,
	settlementDecimals uint8) *StakeInteractor {
	interactor := &StakeInteractor{
		store:              store,
		guard:              guard,
		treasury:           treasury,
		principalDecimals:  principalDecimals,
		settlementDecimals: settlementDecimals,
		clock:              time.Now,
	}

	return interactor
}

// Open stakes the given principal amount under a plan. The settlement
// interest is computed with the rate in effect now and snapshotted into the
// position; rate changes later never touch an open position.
func (interactor *StakeInteractor) Open(caller common.Address, amount *big.Int, planID uint8) (int, error) {
	var index int

	err := interactor.guard.Do(func() error {
		return interactor.store.Execute(func(tx domain.Tx) error {
			now := interactor.clock()

			if caller == domain.ZeroAddress {
				return domain.ErrorZeroAddress
			}
			if amount == nil || amount.Sign() <= 0 {
				return domain.ErrorZeroAmount
			}

			params := tx.Params()

			minimum, err := params.MinimumStake()
			if err != nil {
				return err
			}
			if amount.Cmp(minimum) < 0 {
				return domain.ErrorBelowMinimum
			}

			plan, err := params.Plan(planID)
			if err != nil {
				return err
			}

			rate, err := params.Rate()
			if err != nil {
				return err
			}
			interest, err := domain.Convert(domain.Interest(amount, plan.APY, plan.Duration), rate,
				interactor.principalDecimals, interactor.settlementDecimals)
			if err != nil {
				return err
			}

			// The settlement balance must cover every reserve after the
			// new obligation, checked live before anything moves.
			interestReserve, err := params.InterestReserve()
			if err != nil {
				return err
			}
			distributionReserve, err := params.DistributionReserve()
			if err != nil {
				return err
			}
			obligations := new(big.Int).Add(interestReserve, distributionReserve)
			obligations.Add(obligations, interest)

			settlement, err := tx.Accounts().BalanceOf(domain.CurrencySettlement, interactor.treasury)
			if err != nil {
				return err
			}
			if settlement.Cmp(obligations) < 0 {
				return domain.ErrorInsufficientReserve
			}

			err = tx.Accounts().Transfer(domain.CurrencyPrincipal, caller, interactor.treasury, amount)
			if err != nil {
				return err
			}

			index, err = tx.Positions().Append(caller, &domain.StakePosition{
				Principal: new(big.Int).Set(amount),
				StartTime: now,
				Duration:  plan.Duration,
				APY:       plan.APY,
				Interest:  interest,
			})
			if err != nil {
				return err
			}

			if err = params.AddInterestReserve(interest); err != nil {
				return err
			}
			if err = params.AddTotalStaked(amount); err != nil {
				return err
			}
			if err = tx.Registry().Add(caller); err != nil {
				return err
			}

			return tx.Journal().Append(&domain.JournalEntry{
				Op:        domain.OpOpenStake,
				Actor:     caller,
				Reference: fmt.Sprintf("position %d", index),
				Amount:    new(big.Int).Set(amount),
				CreatedAt: now,
			})
		})
	})
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 opening stake - %v\n", err.Error())
		return 0, err
	}

	exporter.IncOperationCount()
	return index, nil
}

// Close withdraws a matured position: the principal returns to the caller
// and the interest snapshotted at open time is paid out of the reserve.
func (interactor *StakeInteractor) Close(caller common.Address, index int) (*domain.StakePosition, error) {
	var closed *domain.StakePosition

	err := interactor.guard.Do(func() error {
		return interactor.store.Execute(func(tx domain.Tx) error {
			now := interactor.clock()

			position, err := tx.Positions().Get(caller, index)
			if err != nil {
				return err
			}
			if position.Withdrawn {
				return domain.ErrorAlreadyWithdrawn
			}
			if !position.IsMature(now) {
				return domain.ErrorStillLocked
			}

			// Deposits and withdrawals can move the balance between calls,
			// so the payout cover is re-checked live here.
			settlement, err := tx.Accounts().BalanceOf(domain.CurrencySettlement, interactor.treasury)
			if err != nil {
				return err
			}
			if settlement.Cmp(position.Interest) < 0 {
				return domain.ErrorInsufficientReserve
			}

			if err = tx.Positions().MarkWithdrawn(caller, index); err != nil {
				return err
			}
			if err = tx.Params().AddInterestReserve(new(big.Int).Neg(position.Interest)); err != nil {
				return err
			}
			if err = tx.Params().AddTotalStaked(new(big.Int).Neg(position.Principal)); err != nil {
				return err
			}

			err = tx.Accounts().Transfer(domain.CurrencyPrincipal, interactor.treasury, caller, position.Principal)
			if err != nil {
				return err
			}
			err = tx.Accounts().Transfer(domain.CurrencySettlement, interactor.treasury, caller, position.Interest)
			if err != nil {
				return err
			}

			active, err := tx.Positions().ActivePrincipalOf(caller)
			if err != nil {
				return err
			}
			if active.Sign() == 0 {
				if err = tx.Registry().Remove(caller); err != nil {
					return err
				}
			}

			closed = position
			return tx.Journal().Append(&domain.JournalEntry{
				Op:        domain.OpCloseStake,
				Actor:     caller,
				Reference: fmt.Sprintf("position %d", index),
				Amount:    new(big.Int).Set(position.Principal),
				CreatedAt: now,
			})
		})
	})
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 closing stake - %v\n", err.Error())
		return nil, err
	}

	exporter.IncOperationCount()
	return closed, nil
}

// PendingInterest estimates the interest accrued so far across the user's
// open positions, using the live rate and the capped elapsed time. The
// amount actually paid at close is the open-time snapshot, not this value.
func (interactor *StakeInteractor) PendingInterest(user common.Address) (*big.Int, error) {
	total := new(big.Int)

	err := interactor.store.View(func(tx domain.Tx) error {
		now := interactor.clock()

		rate, err := tx.Params().Rate()
		if err != nil {
			return err
		}

		positions, err := tx.Positions().ListOf(user)
		if err != nil {
			return err
		}

		for _, position := range positions {
			if position.Withdrawn {
				continue
			}
			accrued, err := domain.Convert(
				domain.Interest(position.Principal, position.APY, position.ElapsedAt(now)),
				rate, interactor.principalDecimals, interactor.settlementDecimals)
			if err != nil {
				return err
			}
			total.Add(total, accrued)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return total, nil
}

// PreviewInterest computes the full-duration interest a hypothetical stake
// would snapshot at the current rate.
func (interactor *StakeInteractor) PreviewInterest(amount *big.Int, planID uint8) (*big.Int, error) {
	var interest *big.Int

	if amount == nil || amount.Sign() <= 0 {
		return nil, domain.ErrorZeroAmount
	}

	err := interactor.store.View(func(tx domain.Tx) error {
		plan, err := tx.Params().Plan(planID)
		if err != nil {
			return err
		}
		rate, err := tx.Params().Rate()
		if err != nil {
			return err
		}

		interest, err = domain.Convert(domain.Interest(amount, plan.APY, plan.Duration), rate,
			interactor.principalDecimals, interactor.settlementDecimals)
		return err
	})
	if err != nil {
		return nil, err
	}

	return interest, nil
}

func (interactor *StakeInteractor) PositionsOf(user common.Address) ([]*domain.StakePosition, error) {
	var positions []*domain.StakePosition

	err := interactor.store.View(func(tx domain.Tx) error {
		var err error
		positions, err = tx.Positions().ListOf(user)
		return err
	})
	if err != nil {
		return nil, err
	}

	return positions, nil
}

// StakedOf returns the user's aggregate non-withdrawn principal. Governance
// consumes this as the staking part of voting weight; it is a live value,
// not a snapshot.
func (interactor *StakeInteractor) StakedOf(user common.Address) (*big.Int, error) {
	var staked *big.Int

	err := interactor.store.View(func(tx domain.Tx) error {
		var err error
		staked, err = tx.Positions().ActivePrincipalOf(user)
		return err
	})
	if err != nil {
		return nil, err
	}

	return staked, nil
}
