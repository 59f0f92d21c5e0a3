package usecase

import (
	"math/big"

	"staking/domain"

	"github.com/ethereum/go-ethereum/common"
)

// GovernanceInteractor derives voting weight from the ledger. It is a pure
// read surface: weight is staked principal plus unreleased vesting, taken
// live at query time.
type GovernanceInteractor struct {
	store     domain.Store
	threshold *big.Int
}

// PowerEntry is one address's voting weight in a full snapshot.
type PowerEntry struct {
	Address common.Address `json:"address"`
	Power   *big.Int       `json:"power"`
}

func NewGovernanceInteractor(store domain.Store, threshold *big.Int) *GovernanceInteractor {
	interactor := &GovernanceInteractor{
		store:     store,
		threshold: new(big.Int).Set(threshold),
	}

	return interactor
}

// VotingPowerOf breaks down one address's weight: non-withdrawn staked
// principal plus the unreleased balance of its vesting schedule.
func (interactor *GovernanceInteractor) VotingPowerOf(user common.Address) (*domain.VotingPower, error) {
	power := &domain.VotingPower{
		Staked: new(big.Int),
		Vested: new(big.Int),
	}

	err := interactor.store.View(func(tx domain.Tx) error {
		staked, err := tx.Positions().ActivePrincipalOf(user)
		if err != nil {
			return err
		}
		power.Staked = staked

		schedule, err := tx.Vesting().Get(user)
		if err != nil {
			return err
		}
		if schedule != nil {
			power.Vested = schedule.Locked()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	power.Total = new(big.Int).Add(power.Staked, power.Vested)
	return power, nil
}

// CanPropose reports whether the address's weight reaches the proposal
// threshold. A zero threshold lets anyone propose.
func (interactor *GovernanceInteractor) CanPropose(user common.Address) (bool, error) {
	power, err := interactor.VotingPowerOf(user)
	if err != nil {
		return false, err
	}

	return power.Total.Cmp(interactor.threshold) >= 0, nil
}

// Snapshot lists the weight of every active staker plus every vesting
// beneficiary, for off-ledger tallying.
func (interactor *GovernanceInteractor) Snapshot() ([]PowerEntry, error) {
	var entries []PowerEntry

	err := interactor.store.View(func(tx domain.Tx) error {
		members, err := tx.Registry().List()
		if err != nil {
			return err
		}

		seen := make(map[common.Address]bool, len(members))
		for _, member := range members {
			seen[member] = true
		}

		schedules, err := tx.Vesting().List()
		if err != nil {
			return err
		}
		for _, schedule := range schedules {
			if !seen[schedule.Beneficiary] {
				members = append(members, schedule.Beneficiary)
				seen[schedule.Beneficiary] = true
			}
		}

		for _, member := range members {
			staked, err := tx.Positions().ActivePrincipalOf(member)
			if err != nil {
				return err
			}

			total := new(big.Int).Set(staked)
			schedule, err := tx.Vesting().Get(member)
			if err != nil {
				return err
			}
			if schedule != nil {
				total.Add(total, schedule.Locked())
			}
			if total.Sign() == 0 {
				continue
			}

			entries = append(entries, PowerEntry{Address: member, Power: total})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}
