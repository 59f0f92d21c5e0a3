package repository

import (
	"database/sql"
	"time"

	"staking/domain"

	"github.com/behrang/sqlbatch"
	"github.com/ethereum/go-ethereum/common"
)

const (
	sqlVestingInsert = `
	insert into vestings (
			beneficiary, total, released, start_time, cliff_nanos, duration_nanos
		)
		values (
			$1, $2::numeric, $3::numeric, $4, $5, $6
		)
`

	sqlVestingFind = `
	select
		beneficiary, total, released, start_time, cliff_nanos, duration_nanos
	from vestings
	where beneficiary = $1
`

	sqlVestingUpdate = `
	update vestings
		set released = $2::numeric
	where beneficiary = $1
`

	sqlVestingList = `
	select
		beneficiary, total, released, start_time, cliff_nanos, duration_nanos
	from vestings
	order by beneficiary
`
)

func readAllVestings(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	var (
		beneficiary string
		total       string
		released    string
		start       time.Time
		cliff       int64
		duration    int64
	)
	err := scan(&beneficiary, &total, &released, &start, &cliff, &duration)

	list := memo.([]*domain.VestingSchedule)
	if err != nil {
		return list, err
	}

	return append(list, &domain.VestingSchedule{
		Beneficiary: common.HexToAddress(beneficiary),
		Total:       bigFromString(total),
		Released:    bigFromString(released),
		StartTime:   start,
		Cliff:       time.Duration(cliff),
		Duration:    time.Duration(duration),
	}), nil
}

// VestingBook keeps one vesting schedule per beneficiary.
type VestingBook struct {
	tx *sql.Tx
}

func (book *VestingBook) Get(beneficiary common.Address) (*domain.VestingSchedule, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlVestingFind,
			Args:    []interface{}{beneficiary.Hex()},
			Init:    make([]*domain.VestingSchedule, 0),
			ReadAll: readAllVestings,
		},
	})
	if err != nil {
		return nil, err
	}

	list, _ := results[0].([]*domain.VestingSchedule)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (book *VestingBook) Insert(s *domain.VestingSchedule) error {
	_, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query: sqlVestingInsert,
			Args: []interface{}{
				s.Beneficiary.Hex(), s.Total.String(), s.Released.String(),
				s.StartTime, s.Cliff.Nanoseconds(), s.Duration.Nanoseconds(),
			},
			Affect: 1,
		},
	})
	return err
}

func (book *VestingBook) Update(s *domain.VestingSchedule) error {
	_, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:  sqlVestingUpdate,
			Args:   []interface{}{s.Beneficiary.Hex(), s.Released.String()},
			Affect: 1,
		},
	})
	return err
}

func (book *VestingBook) List() ([]*domain.VestingSchedule, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlVestingList,
			Init:    make([]*domain.VestingSchedule, 0),
			ReadAll: readAllVestings,
		},
	})
	if err != nil {
		return nil, err
	}

	list, _ := results[0].([]*domain.VestingSchedule)
	return list, nil
}
