package memstore

import (
	"sort"

	"staking/domain"

	"github.com/ethereum/go-ethereum/common"
)

// VestingBook keeps one vesting schedule per beneficiary.
type VestingBook struct {
	state *state
}

func (book *VestingBook) Get(beneficiary common.Address) (*domain.VestingSchedule, error) {
	schedule, present := book.state.vestings[beneficiary]
	if !present {
		return nil, nil
	}
	return cloneVesting(schedule), nil
}

func (book *VestingBook) Insert(s *domain.VestingSchedule) error {
	book.state.vestings[s.Beneficiary] = cloneVesting(s)
	return nil
}

func (book *VestingBook) Update(s *domain.VestingSchedule) error {
	stored, present := book.state.vestings[s.Beneficiary]
	if !present {
		return domain.ErrorScheduleNotFound
	}
	stored.Released = cloneBig(s.Released)
	return nil
}

func (book *VestingBook) List() ([]*domain.VestingSchedule, error) {
	list := make([]*domain.VestingSchedule, 0, len(book.state.vestings))
	for _, schedule := range book.state.vestings {
		list = append(list, cloneVesting(schedule))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Beneficiary.Hex() < list[j].Beneficiary.Hex()
	})
	return list, nil
}
