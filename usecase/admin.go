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

// AdminInteractor covers the parameter updates only the administrator may
// perform. None of them rewrites open positions: the rate and plan terms
// in effect at open time stay snapshotted in each position.
type AdminInteractor struct {
	store domain.Store
	guard *Guard
	admin common.Address
	clock func() time.Time
}

func NewAdminInteractor(store domain.Store, guard *Guard, admin common.Address) *AdminInteractor {
	interactor := &AdminInteractor{
		store: store,
		guard: guard,
		admin: admin,
		clock: time.Now,
	}

	return interactor
}

// SetRate replaces the settlement exchange rate used by all future opens
// and previews.
func (interactor *AdminInteractor) SetRate(caller common.Address, rate *big.Int) error {
	err := interactor.guard.Do(func() error {
		return interactor.store.Execute(func(tx domain.Tx) error {
			now := interactor.clock()

			if caller != interactor.admin {
				return domain.ErrorUnauthorized
			}
			if rate == nil || rate.Sign() <= 0 {
				return domain.ErrorInvalidRate
			}

			if err := tx.Params().SetRate(rate); err != nil {
				return err
			}

			return tx.Journal().Append(&domain.JournalEntry{
				Op:        domain.OpSetRate,
				Actor:     caller,
				Amount:    new(big.Int).Set(rate),
				CreatedAt: now,
			})
		})
	})
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 setting exchange rate - %v\n", err.Error())
		return err
	}

	exporter.IncOperationCount()
	return nil
}

// SetMinimumStake replaces the floor future opens are checked against.
// A zero minimum is allowed and disables the floor.
func (interactor *AdminInteractor) SetMinimumStake(caller common.Address, minimum *big.Int) error {
	err := interactor.guard.Do(func() error {
		return interactor.store.Execute(func(tx domain.Tx) error {
			now := interactor.clock()

			if caller != interactor.admin {
				return domain.ErrorUnauthorized
			}
			if minimum == nil || minimum.Sign() < 0 {
				return domain.ErrorZeroAmount
			}

			if err := tx.Params().SetMinimumStake(minimum); err != nil {
				return err
			}

			return tx.Journal().Append(&domain.JournalEntry{
				Op:        domain.OpSetMinimumStake,
				Actor:     caller,
				Amount:    new(big.Int).Set(minimum),
				CreatedAt: now,
			})
		})
	})
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 setting minimum stake - %v\n", err.Error())
		return err
	}

	exporter.IncOperationCount()
	return nil
}

// SetPlan rewrites the terms of one of the four plans for future opens.
func (interactor *AdminInteractor) SetPlan(caller common.Address, id uint8, apy uint32, duration time.Duration) error {
	err := interactor.guard.Do(func() error {
		return interactor.store.Execute(func(tx domain.Tx) error {
			now := interactor.clock()

			if caller != interactor.admin {
				return domain.ErrorUnauthorized
			}
			if apy == 0 || apy > domain.BasisPointDivisor {
				return domain.ErrorInvalidPlan
			}
			if duration <= 0 {
				return domain.ErrorInvalidPlan
			}

			if err := tx.Params().SetPlan(id, &domain.Plan{APY: apy, Duration: duration}); err != nil {
				return err
			}

			return tx.Journal().Append(&domain.JournalEntry{
				Op:        domain.OpSetPlan,
				Actor:     caller,
				Reference: fmt.Sprintf("plan %d", id),
				Amount:    big.NewInt(int64(apy)),
				Note:      duration.String(),
				CreatedAt: now,
			})
		})
	})
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 setting plan - %v\n", err.Error())
		return err
	}

	exporter.IncOperationCount()
	return nil
}
