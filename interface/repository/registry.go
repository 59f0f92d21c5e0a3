package repository

import (
	"database/sql"

	"github.com/behrang/sqlbatch"
	"github.com/ethereum/go-ethereum/common"
)

const (
	sqlRegistryInsert = `
	insert into registry (
			slot, address
		)
		values (
			$1, $2
		)
`

	sqlRegistrySlotOf = `
	select
		slot
	from registry
	where address = $1
`

	sqlRegistryAddressAt = `
	select
		address
	from registry
	where slot = $1
`

	sqlRegistryMaxSlot = `
	select
		coalesce(max(slot), -1)
	from registry
`

	sqlRegistryDelete = `
	delete from registry
	where address = $1
`

	sqlRegistryMove = `
	update registry
		set slot = $2
	where address = $1
`

	sqlRegistryCount = `
	select
		count(*)
	from registry
`

	sqlRegistryList = `
	select
		address
	from registry
	order by slot
`
)

func readAllAddresses(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	var address string
	err := scan(&address)

	list := memo.([]common.Address)
	if err != nil {
		return list, err
	}
	return append(list, common.HexToAddress(address)), nil
}

func readAllCounts(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	var count int64
	err := scan(&count)

	list := memo.([]int64)
	if err != nil {
		return list, err
	}
	return append(list, count), nil
}

// RegistryBook keeps the active-staker set dense: members occupy slots
// 0..count-1 and removal swaps the last member into the vacated slot.
type RegistryBook struct {
	tx *sql.Tx
}

func (book *RegistryBook) slotOf(user common.Address) (int64, bool, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlRegistrySlotOf,
			Args:    []interface{}{user.Hex()},
			Init:    make([]int64, 0),
			ReadAll: readAllCounts,
		},
	})
	if err != nil {
		return 0, false, err
	}

	list, _ := results[0].([]int64)
	if len(list) == 0 {
		return 0, false, nil
	}
	return list[0], true, nil
}

func (book *RegistryBook) maxSlot() (int64, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlRegistryMaxSlot,
			ReadOne: readCount,
		},
	})
	if err != nil {
		return 0, err
	}

	max, _ := results[0].(int64)
	return max, nil
}

func (book *RegistryBook) Add(user common.Address) error {
	_, present, err := book.slotOf(user)
	if err != nil || present {
		return err
	}

	max, err := book.maxSlot()
	if err != nil {
		return err
	}

	_, err = sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:  sqlRegistryInsert,
			Args:   []interface{}{max + 1, user.Hex()},
			Affect: 1,
		},
	})
	return err
}

func (book *RegistryBook) Remove(user common.Address) error {
	slot, present, err := book.slotOf(user)
	if err != nil || !present {
		return err
	}

	max, err := book.maxSlot()
	if err != nil {
		return err
	}

	if slot == max {
		_, err = sqlbatch.Batch(book.tx, []sqlbatch.Command{
			{
				Query:  sqlRegistryDelete,
				Args:   []interface{}{user.Hex()},
				Affect: 1,
			},
		})
		return err
	}

	// Swap the last member into the vacated slot.
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlRegistryAddressAt,
			Args:    []interface{}{max},
			Init:    make([]common.Address, 0),
			ReadAll: readAllAddresses,
		},
	})
	if err != nil {
		return err
	}
	members, _ := results[0].([]common.Address)
	last := members[0]

	_, err = sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:  sqlRegistryDelete,
			Args:   []interface{}{user.Hex()},
			Affect: 1,
		},
		{
			Query:  sqlRegistryMove,
			Args:   []interface{}{last.Hex(), slot},
			Affect: 1,
		},
	})
	return err
}

func (book *RegistryBook) Contains(user common.Address) (bool, error) {
	_, present, err := book.slotOf(user)
	return present, err
}

func (book *RegistryBook) Count() (int, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlRegistryCount,
			ReadOne: readCount,
		},
	})
	if err != nil {
		return 0, err
	}

	count, _ := results[0].(int64)
	return int(count), nil
}

func (book *RegistryBook) List() ([]common.Address, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlRegistryList,
			Init:    make([]common.Address, 0),
			ReadAll: readAllAddresses,
		},
	})
	if err != nil {
		return nil, err
	}

	list, _ := results[0].([]common.Address)
	return list, nil
}
