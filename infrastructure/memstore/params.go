package memstore

import (
	"math/big"

	"staking/domain"
)

// ParamBook keeps the configurable parameters and the global accounting
// counters.
type ParamBook struct {
	state *state
}

func (book *ParamBook) Rate() (*big.Int, error) {
	return cloneBig(book.state.rate), nil
}

func (book *ParamBook) SetRate(rate *big.Int) error {
	book.state.rate = cloneBig(rate)
	return nil
}

func (book *ParamBook) MinimumStake() (*big.Int, error) {
	return cloneBig(book.state.minimumStake), nil
}

func (book *ParamBook) SetMinimumStake(amount *big.Int) error {
	book.state.minimumStake = cloneBig(amount)
	return nil
}

func (book *ParamBook) Plan(id uint8) (*domain.Plan, error) {
	if id < 1 || id > domain.PlanCount {
		return nil, domain.ErrorInvalidPlan
	}

	plan := book.state.plans[id-1]
	if plan == nil {
		return nil, domain.ErrorInvalidPlan
	}

	copied := *plan
	return &copied, nil
}

func (book *ParamBook) SetPlan(id uint8, plan *domain.Plan) error {
	if id < 1 || id > domain.PlanCount {
		return domain.ErrorInvalidPlan
	}

	copied := *plan
	book.state.plans[id-1] = &copied
	return nil
}

func (book *ParamBook) TotalStaked() (*big.Int, error) {
	return cloneBig(book.state.totalStaked), nil
}

func (book *ParamBook) AddTotalStaked(delta *big.Int) error {
	if delta != nil {
		book.state.totalStaked.Add(book.state.totalStaked, delta)
	}
	return nil
}

func (book *ParamBook) InterestReserve() (*big.Int, error) {
	return cloneBig(book.state.interestReserve), nil
}

func (book *ParamBook) AddInterestReserve(delta *big.Int) error {
	if delta != nil {
		book.state.interestReserve.Add(book.state.interestReserve, delta)
	}
	return nil
}

func (book *ParamBook) DistributionReserve() (*big.Int, error) {
	return cloneBig(book.state.distributionReserve), nil
}

func (book *ParamBook) AddDistributionReserve(delta *big.Int) error {
	if delta != nil {
		book.state.distributionReserve.Add(book.state.distributionReserve, delta)
	}
	return nil
}
