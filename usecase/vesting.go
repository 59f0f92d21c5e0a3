package usecase

import (
	"log"
	"math/big"
	"time"

	"staking/domain"
	"staking/interface/exporter"

	"github.com/ethereum/go-ethereum/common"
)

// VestingInteractor grants linear vesting schedules out of the treasury
// and releases vested principal to beneficiaries.
type VestingInteractor struct {
	store    domain.Store
	guard    *Guard
	admin    common.Address
	treasury common.Address
	clock    func() time.Time
}

func NewVestingInteractor(store domain.Store,
	guard *Guard,
	admin common.Address,
	treasury common.Address) *VestingInteractor {
	interactor := &VestingInteractor{
		store:    store,
		guard:    guard,
		admin:    admin,
		treasury: treasury,
		clock:    time.Now,
	}

	return interactor
}

// Grant escrows a principal amount for one beneficiary under a linear
// schedule with a cliff. Staked principal can never be granted away: the
// treasury book must still cover the total staked after the move.
func (interactor *VestingInteractor) Grant(caller common.Address,
	beneficiary common.Address,
	total *big.Int,
	start time.Time,
	cliff time.Duration,
	duration time.Duration) error {
	err := interactor.guard.Do(func() error {
		return interactor.store.Execute(func(tx domain.Tx) error {
			now := interactor.clock()

			if caller != interactor.admin {
				return domain.ErrorUnauthorized
			}
			if beneficiary == domain.ZeroAddress {
				return domain.ErrorZeroAddress
			}
			if total == nil || total.Sign() <= 0 {
				return domain.ErrorZeroAmount
			}
			if duration <= 0 || cliff < 0 || cliff > duration {
				return domain.ErrorInvalidSchedule
			}

			existing, err := tx.Vesting().Get(beneficiary)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrorScheduleExists
			}

			balance, err := tx.Accounts().BalanceOf(domain.CurrencyPrincipal, interactor.treasury)
			if err != nil {
				return err
			}
			staked, err := tx.Params().TotalStaked()
			if err != nil {
				return err
			}
			after := new(big.Int).Sub(balance, total)
			if after.Cmp(staked) < 0 {
				return domain.ErrorInsufficientReserve
			}

			err = tx.Accounts().Transfer(domain.CurrencyPrincipal, interactor.treasury, domain.VestingEscrowAccount, total)
			if err != nil {
				return err
			}

			err = tx.Vesting().Insert(&domain.VestingSchedule{
				Beneficiary: beneficiary,
				Total:       new(big.Int).Set(total),
				Released:    new(big.Int),
				StartTime:   start,
				Cliff:       cliff,
				Duration:    duration,
			})
			if err != nil {
				return err
			}

			return tx.Journal().Append(&domain.JournalEntry{
				Op:        domain.OpGrantVesting,
				Actor:     caller,
				Reference: beneficiary.Hex(),
				Amount:    new(big.Int).Set(total),
				CreatedAt: now,
			})
		})
	})
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 granting vesting - %v\n", err.Error())
		return err
	}

	exporter.IncOperationCount()
	return nil
}

// Release pays the caller every vested token not yet released, out of the
// vesting escrow book.
func (interactor *VestingInteractor) Release(caller common.Address) (*big.Int, error) {
	var released *big.Int

	err := interactor.guard.Do(func() error {
		return interactor.store.Execute(func(tx domain.Tx) error {
			now := interactor.clock()

			schedule, err := tx.Vesting().Get(caller)
			if err != nil {
				return err
			}
			if schedule == nil {
				return domain.ErrorScheduleNotFound
			}

			released = schedule.ReleasableAt(now)
			if released.Sign() == 0 {
				return domain.ErrorNothingVested
			}

			err = tx.Accounts().Transfer(domain.CurrencyPrincipal, domain.VestingEscrowAccount, caller, released)
			if err != nil {
				return err
			}

			schedule.Released = new(big.Int).Add(schedule.Released, released)
			if err = tx.Vesting().Update(schedule); err != nil {
				return err
			}

			return tx.Journal().Append(&domain.JournalEntry{
				Op:        domain.OpReleaseVesting,
				Actor:     caller,
				Amount:    new(big.Int).Set(released),
				CreatedAt: now,
			})
		})
	})
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 releasing vested tokens - %v\n", err.Error())
		return nil, err
	}

	exporter.IncOperationCount()
	return released, nil
}

func (interactor *VestingInteractor) Get(beneficiary common.Address) (*domain.VestingSchedule, error) {
	var schedule *domain.VestingSchedule

	err := interactor.store.View(func(tx domain.Tx) error {
		var err error
		schedule, err = tx.Vesting().Get(beneficiary)
		return err
	})
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, domain.ErrorScheduleNotFound
	}

	return schedule, nil
}

func (interactor *VestingInteractor) List() ([]*domain.VestingSchedule, error) {
	var schedules []*domain.VestingSchedule

	err := interactor.store.View(func(tx domain.Tx) error {
		var err error
		schedules, err = tx.Vesting().List()
		return err
	})
	if err != nil {
		return nil, err
	}

	return schedules, nil
}
