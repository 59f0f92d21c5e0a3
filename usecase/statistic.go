package usecase

import (
	"math/big"

	"staking/domain"

	"github.com/ethereum/go-ethereum/common"
)

// StatisticInteractor assembles the aggregate ledger overview served to the
// status command and pushed into the metrics gauges.
type StatisticInteractor struct {
	store    domain.Store
	treasury common.Address
}

func NewStatisticInteractor(store domain.Store, treasury common.Address) *StatisticInteractor {
	interactor := &StatisticInteractor{
		store:    store,
		treasury: treasury,
	}

	return interactor
}

// Overview reads every aggregate in one consistent view, so the reported
// balances and reserves always belong to the same ledger state.
func (interactor *StatisticInteractor) Overview() (*domain.Overview, error) {
	overview := &domain.Overview{}

	err := interactor.store.View(func(tx domain.Tx) error {
		params := tx.Params()

		count, err := tx.Registry().Count()
		if err != nil {
			return err
		}
		overview.ActiveStakers = count

		if overview.TotalStaked, err = params.TotalStaked(); err != nil {
			return err
		}
		if overview.InterestReserve, err = params.InterestReserve(); err != nil {
			return err
		}
		if overview.DistributionReserve, err = params.DistributionReserve(); err != nil {
			return err
		}
		if overview.ExchangeRate, err = params.Rate(); err != nil {
			return err
		}
		if overview.MinimumStake, err = params.MinimumStake(); err != nil {
			return err
		}

		overview.PrincipalBalance, err = tx.Accounts().BalanceOf(domain.CurrencyPrincipal, interactor.treasury)
		if err != nil {
			return err
		}
		overview.SettlementBalance, err = tx.Accounts().BalanceOf(domain.CurrencySettlement, interactor.treasury)
		if err != nil {
			return err
		}

		overview.AvailablePrincipal = new(big.Int).Sub(overview.PrincipalBalance, overview.TotalStaked)
		obligations := new(big.Int).Add(overview.InterestReserve, overview.DistributionReserve)
		overview.AvailableSettlement = new(big.Int).Sub(overview.SettlementBalance, obligations)

		distributions, err := tx.Distributions().List()
		if err != nil {
			return err
		}
		overview.Distributions = len(distributions)

		for id := uint8(1); id <= domain.PlanCount; id++ {
			plan, err := params.Plan(id)
			if err != nil {
				return err
			}
			overview.Plans[id-1] = *plan
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return overview, nil
}

// History returns the newest journal entries, most recent first.
func (interactor *StatisticInteractor) History(limit int) ([]*domain.JournalEntry, error) {
	var entries []*domain.JournalEntry

	if limit <= 0 {
		return nil, domain.ErrorInvalidLimit
	}

	err := interactor.store.View(func(tx domain.Tx) error {
		var err error
		entries, err = tx.Journal().Recent(limit)
		return err
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}
