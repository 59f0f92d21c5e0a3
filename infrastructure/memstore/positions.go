package memstore

import (
	"math/big"

	"staking/domain"

	"github.com/ethereum/go-ethereum/common"
)

// PositionBook keeps the append-only per-user stake lists.
type PositionBook struct {
	state *state
}

func (book *PositionBook) Append(user common.Address, position *domain.StakePosition) (int, error) {
	list := book.state.positions[user]
	index := len(list)
	book.state.positions[user] = append(list, clonePosition(position))
	return index, nil
}

func (book *PositionBook) Get(user common.Address, index int) (*domain.StakePosition, error) {
	list := book.state.positions[user]
	if index < 0 || index >= len(list) {
		return nil, domain.ErrorInvalidIndex
	}
	return clonePosition(list[index]), nil
}

func (book *PositionBook) ListOf(user common.Address) ([]*domain.StakePosition, error) {
	list := book.state.positions[user]
	copied := make([]*domain.StakePosition, len(list))
	for i, position := range list {
		copied[i] = clonePosition(position)
	}
	return copied, nil
}

func (book *PositionBook) MarkWithdrawn(user common.Address, index int) error {
	list := book.state.positions[user]
	if index < 0 || index >= len(list) {
		return domain.ErrorInvalidIndex
	}
	list[index].Withdrawn = true
	return nil
}

func (book *PositionBook) ActivePrincipalOf(user common.Address) (*big.Int, error) {
	sum := new(big.Int)
	for _, position := range book.state.positions[user] {
		if !position.Withdrawn {
			sum.Add(sum, position.Principal)
		}
	}
	return sum, nil
}
