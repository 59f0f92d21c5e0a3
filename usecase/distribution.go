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

// DistributionInteractor runs the dividend rounds: snapshotting eligible
// stakes, paying claims pro rata and recovering what goes unclaimed.
type DistributionInteractor struct {
	store        domain.Store
	guard        *Guard
	admin        common.Address
	treasury     common.Address
	dividendLock time.Duration
	recoveryWait time.Duration
	clock        func() time.Time
}

func NewDistributionInteractor(store domain.Store,
	guard *Guard,
	admin common.Address,
	treasury common.Address,
	dividendLock time.Duration,
	recoveryWait time.Duration) *DistributionInteractor {
	interactor := &DistributionInteractor{
		store:        store,
		guard:        guard,
		admin:        admin,
		treasury:     treasury,
		dividendLock: dividendLock,
		recoveryWait: recoveryWait,
		clock:        time.Now,
	}

	return interactor
}

// Create opens a dividend round over the stakers whose positions have been
// held past the dividend lock. Each member's eligible principal is frozen
// into the round's snapshot; stakes opened or closed afterwards cannot
// change anyone's share.
func (interactor *DistributionInteractor) Create(caller common.Address, total *big.Int) (uint64, error) {
	var id uint64

	err := interactor.guard.Do(func() error {
		return interactor.store.Execute(func(tx domain.Tx) error {
			now := interactor.clock()

			if caller != interactor.admin {
				return domain.ErrorUnauthorized
			}
			if total == nil || total.Sign() <= 0 {
				return domain.ErrorZeroAmount
			}

			params := tx.Params()

			interestReserve, err := params.InterestReserve()
			if err != nil {
				return err
			}
			distributionReserve, err := params.DistributionReserve()
			if err != nil {
				return err
			}
			needed := new(big.Int).Add(interestReserve, distributionReserve)
			needed.Add(needed, total)

			settlement, err := tx.Accounts().BalanceOf(domain.CurrencySettlement, interactor.treasury)
			if err != nil {
				return err
			}
			if settlement.Cmp(needed) < 0 {
				return domain.ErrorInsufficientFunds
			}

			id, err = tx.Distributions().NextID()
			if err != nil {
				return err
			}

			members, err := tx.Registry().List()
			if err != nil {
				return err
			}

			eligibleTotal := new(big.Int)
			for _, member := range members {
				positions, err := tx.Positions().ListOf(member)
				if err != nil {
					return err
				}

				eligible := new(big.Int)
				for _, position := range positions {
					if position.IsEligible(now, interactor.dividendLock) {
						eligible.Add(eligible, position.Principal)
					}
				}
				if eligible.Sign() == 0 {
					continue
				}

				if err = tx.Distributions().SetEligible(id, member, eligible); err != nil {
					return err
				}
				eligibleTotal.Add(eligibleTotal, eligible)
			}
			if eligibleTotal.Sign() == 0 {
				return domain.ErrorNoEligibleStakers
			}

			err = tx.Distributions().Insert(&domain.Distribution{
				ID:            id,
				TotalAmount:   new(big.Int).Set(total),
				EligibleTotal: eligibleTotal,
				ClaimedAmount: new(big.Int),
				CreatedAt:     now,
				Exists:        true,
			})
			if err != nil {
				return err
			}

			if err = params.AddDistributionReserve(total); err != nil {
				return err
			}

			return tx.Journal().Append(&domain.JournalEntry{
				Op:        domain.OpCreateDistribution,
				Actor:     caller,
				Reference: fmt.Sprintf("distribution %d", id),
				Amount:    new(big.Int).Set(total),
				CreatedAt: now,
			})
		})
	})
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 creating distribution - %v\n", err.Error())
		return 0, err
	}

	exporter.IncOperationCount()
	return id, nil
}

// Claim pays the caller's share of a round. A zero share from rounding
// still consumes the claim; there is no second try.
func (interactor *DistributionInteractor) Claim(caller common.Address, id uint64) (*big.Int, error) {
	var share *big.Int

	err := interactor.guard.Do(func() error {
		return interactor.store.Execute(func(tx domain.Tx) error {
			now := interactor.clock()

			distribution, err := tx.Distributions().Get(id)
			if err != nil {
				return err
			}
			if distribution == nil || !distribution.Exists {
				return domain.ErrorDistributionNotFound
			}

			claimed, err := tx.Distributions().HasClaimed(id, caller)
			if err != nil {
				return err
			}
			if claimed {
				return domain.ErrorAlreadyClaimed
			}

			eligible, err := tx.Distributions().EligibleOf(id, caller)
			if err != nil {
				return err
			}
			if eligible.Sign() == 0 {
				return domain.ErrorNoEligibleSnapshot
			}

			if err = tx.Distributions().MarkClaimed(id, caller); err != nil {
				return err
			}

			share = distribution.Share(eligible)
			if share.Sign() > 0 {
				err = tx.Accounts().Transfer(domain.CurrencySettlement, interactor.treasury, caller, share)
				if err != nil {
					return err
				}
				if err = tx.Params().AddDistributionReserve(new(big.Int).Neg(share)); err != nil {
					return err
				}

				distribution.ClaimedAmount = new(big.Int).Add(distribution.ClaimedAmount, share)
				if err = tx.Distributions().Update(distribution); err != nil {
					return err
				}
			}

			return tx.Journal().Append(&domain.JournalEntry{
				Op:        domain.OpClaim,
				Actor:     caller,
				Reference: fmt.Sprintf("distribution %d", id),
				Amount:    new(big.Int).Set(share),
				CreatedAt: now,
			})
		})
	})
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 claiming dividend - %v\n", err.Error())
		return nil, err
	}

	exporter.IncOperationCount()
	return share, nil
}

// Recover sweeps the unclaimed remainder of a round back to the given
// address once the recovery wait has passed. The round is retired: later
// claims against it fail as not found.
func (interactor *DistributionInteractor) Recover(caller common.Address, id uint64, to common.Address) (*big.Int, error) {
	var recovered *big.Int

	err := interactor.guard.Do(func() error {
		return interactor.store.Execute(func(tx domain.Tx) error {
			now := interactor.clock()

			if caller != interactor.admin {
				return domain.ErrorUnauthorized
			}
			if to == domain.ZeroAddress {
				return domain.ErrorZeroAddress
			}

			distribution, err := tx.Distributions().Get(id)
			if err != nil {
				return err
			}
			if distribution == nil || !distribution.Exists {
				return domain.ErrorDistributionNotFound
			}
			if !distribution.RecoverableAt(now, interactor.recoveryWait) {
				return domain.ErrorRecoveryWindowOpen
			}

			recovered = distribution.Undistributed()
			if recovered.Sign() == 0 {
				return domain.ErrorNothingToRecover
			}

			distribution.ClaimedAmount = new(big.Int).Set(distribution.TotalAmount)
			distribution.Exists = false
			if err = tx.Distributions().Update(distribution); err != nil {
				return err
			}

			if err = tx.Params().AddDistributionReserve(new(big.Int).Neg(recovered)); err != nil {
				return err
			}
			err = tx.Accounts().Transfer(domain.CurrencySettlement, interactor.treasury, to, recovered)
			if err != nil {
				return err
			}

			return tx.Journal().Append(&domain.JournalEntry{
				Op:        domain.OpRecover,
				Actor:     caller,
				Reference: fmt.Sprintf("distribution %d", id),
				Amount:    new(big.Int).Set(recovered),
				CreatedAt: now,
			})
		})
	})
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 recovering distribution - %v\n", err.Error())
		return nil, err
	}

	exporter.IncOperationCount()
	return recovered, nil
}

func (interactor *DistributionInteractor) Get(id uint64) (*domain.Distribution, error) {
	var distribution *domain.Distribution

	err := interactor.store.View(func(tx domain.Tx) error {
		var err error
		distribution, err = tx.Distributions().Get(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if distribution == nil {
		return nil, domain.ErrorDistributionNotFound
	}

	return distribution, nil
}

func (interactor *DistributionInteractor) List() ([]*domain.Distribution, error) {
	var distributions []*domain.Distribution

	err := interactor.store.View(func(tx domain.Tx) error {
		var err error
		distributions, err = tx.Distributions().List()
		return err
	})
	if err != nil {
		return nil, err
	}

	return distributions, nil
}

// SnapshotOf reports the user's stake in a round: the eligible principal
// frozen at creation and whether the share has been claimed.
func (interactor *DistributionInteractor) SnapshotOf(id uint64, user common.Address) (*big.Int, bool, error) {
	var eligible *big.Int
	var claimed bool

	err := interactor.store.View(func(tx domain.Tx) error {
		var err error
		eligible, err = tx.Distributions().EligibleOf(id, user)
		if err != nil {
			return err
		}
		claimed, err = tx.Distributions().HasClaimed(id, user)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	return eligible, claimed, nil
}
