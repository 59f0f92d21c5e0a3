package memstore

import (
	"math/big"
	"sort"

	"staking/domain"

	"github.com/ethereum/go-ethereum/common"
)

// DistributionBook keeps dividend rounds, their per-user eligible snapshots
// and the write-once claimed flags.
type DistributionBook struct {
	state *state
}

func (book *DistributionBook) NextID() (uint64, error) {
	book.state.counter++
	return book.state.counter, nil
}

func (book *DistributionBook) Insert(d *domain.Distribution) error {
	book.state.distributions[d.ID] = cloneDistribution(d)
	return nil
}

func (book *DistributionBook) Get(id uint64) (*domain.Distribution, error) {
	d, present := book.state.distributions[id]
	if !present {
		return nil, nil
	}
	return cloneDistribution(d), nil
}

func (book *DistributionBook) Update(d *domain.Distribution) error {
	stored, present := book.state.distributions[d.ID]
	if !present {
		return domain.ErrorDistributionNotFound
	}
	stored.ClaimedAmount = cloneBig(d.ClaimedAmount)
	stored.Exists = d.Exists
	return nil
}

func (book *DistributionBook) List() ([]*domain.Distribution, error) {
	list := make([]*domain.Distribution, 0, len(book.state.distributions))
	for _, d := range book.state.distributions {
		list = append(list, cloneDistribution(d))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (book *DistributionBook) SetEligible(id uint64, user common.Address, amount *big.Int) error {
	snapshot, present := book.state.snapshots[id]
	if !present {
		snapshot = make(map[common.Address]*big.Int)
		book.state.snapshots[id] = snapshot
	}
	snapshot[user] = cloneBig(amount)
	return nil
}

func (book *DistributionBook) EligibleOf(id uint64, user common.Address) (*big.Int, error) {
	eligible, present := book.state.snapshots[id][user]
	if !present {
		return new(big.Int), nil
	}
	return cloneBig(eligible), nil
}

func (book *DistributionBook) MarkClaimed(id uint64, user common.Address) error {
	flags, present := book.state.claims[id]
	if !present {
		flags = make(map[common.Address]bool)
		book.state.claims[id] = flags
	}
	flags[user] = true
	return nil
}

func (book *DistributionBook) HasClaimed(id uint64, user common.Address) (bool, error) {
	return book.state.claims[id][user], nil
}
