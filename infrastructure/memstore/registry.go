package memstore

import (
	"github.com/ethereum/go-ethereum/common"
)

// RegistryBook keeps the active-staker set as a dense arena plus an index
// map, so removal is a swap with the last member.
type RegistryBook struct {
	state *state
}

func (book *RegistryBook) Add(user common.Address) error {
	if _, present := book.state.slots[user]; present {
		return nil
	}

	book.state.slots[user] = len(book.state.members)
	book.state.members = append(book.state.members, user)
	return nil
}

func (book *RegistryBook) Remove(user common.Address) error {
	slot, present := book.state.slots[user]
	if !present {
		return nil
	}

	last := len(book.state.members) - 1
	if slot != last {
		moved := book.state.members[last]
		book.state.members[slot] = moved
		book.state.slots[moved] = slot
	}

	book.state.members = book.state.members[:last]
	delete(book.state.slots, user)
	return nil
}

func (book *RegistryBook) Contains(user common.Address) (bool, error) {
	_, present := book.state.slots[user]
	return present, nil
}

func (book *RegistryBook) Count() (int, error) {
	return len(book.state.members), nil
}

func (book *RegistryBook) List() ([]common.Address, error) {
	list := make([]common.Address, len(book.state.members))
	copy(list, book.state.members)
	return list, nil
}
