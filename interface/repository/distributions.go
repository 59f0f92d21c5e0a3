package repository

import (
	"database/sql"
	"math/big"
	"time"

	"staking/domain"

	"github.com/behrang/sqlbatch"
	"github.com/ethereum/go-ethereum/common"
)

const (
	sqlDistributionCounterNext = `
	insert into params as c (
			key, value
		)
		values (
			$1, '1'
		)
	on conflict (key) do
		update set
			value = ((c.value)::bigint + 1)::text
`

	sqlDistributionInsert = `
	insert into distributions (
			id, created_at, total_amount, eligible_total, claimed_amount, present
		)
		values (
			$1, $2, $3::numeric, $4::numeric, $5::numeric, true
		)
`

	sqlDistributionFind = `
	select
		id, created_at, total_amount, eligible_total, claimed_amount, present
	from distributions
	where id = $1
`

	sqlDistributionUpdate = `
	update distributions
		set claimed_amount = $2::numeric, present = $3
	where id = $1
`

	sqlDistributionList = `
	select
		id, created_at, total_amount, eligible_total, claimed_amount, present
	from distributions
	order by id
`

	sqlSnapshotInsert = `
	insert into distribution_snapshots (
			distribution_id, address, eligible, claimed
		)
		values (
			$1, $2, $3::numeric, false
		)
`

	sqlSnapshotEligible = `
	select
		eligible
	from distribution_snapshots
	where distribution_id = $1 and address = $2
`

	sqlSnapshotMarkClaimed = `
	update distribution_snapshots
		set claimed = true
	where distribution_id = $1 and address = $2 and claimed = false
`

	sqlSnapshotClaimed = `
	select
		claimed
	from distribution_snapshots
	where distribution_id = $1 and address = $2
`
)

func readAllDistributions(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	var (
		id       int64
		created  time.Time
		total    string
		eligible string
		claimed  string
		present  bool
	)
	err := scan(&id, &created, &total, &eligible, &claimed, &present)

	list := memo.([]*domain.Distribution)
	if err != nil {
		return list, err
	}

	return append(list, &domain.Distribution{
		ID:            uint64(id),
		CreatedAt:     created,
		TotalAmount:   bigFromString(total),
		EligibleTotal: bigFromString(eligible),
		ClaimedAmount: bigFromString(claimed),
		Exists:        present,
	}), nil
}

func readAllFlags(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	var flag bool
	err := scan(&flag)

	list := memo.([]bool)
	if err != nil {
		return list, err
	}
	return append(list, flag), nil
}

// DistributionBook keeps dividend rounds, their per-user eligible snapshots
// and the write-once claimed flags.
type DistributionBook struct {
	tx *sql.Tx
}

func (book *DistributionBook) NextID() (uint64, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:  sqlDistributionCounterNext,
			Args:   []interface{}{paramDistributionCounter},
			Affect: 1,
		},
		{
			Query:   sqlParamFind,
			Args:    []interface{}{paramDistributionCounter},
			ReadOne: readBig,
		},
	})
	if err != nil {
		return 0, err
	}

	counter, _ := results[1].(*big.Int)
	if counter == nil {
		counter = new(big.Int)
	}
	return counter.Uint64(), nil
}

func (book *DistributionBook) Insert(d *domain.Distribution) error {
	_, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query: sqlDistributionInsert,
			Args: []interface{}{
				int64(d.ID), d.CreatedAt, d.TotalAmount.String(),
				d.EligibleTotal.String(), d.ClaimedAmount.String(),
			},
			Affect: 1,
		},
	})
	return err
}

func (book *DistributionBook) Get(id uint64) (*domain.Distribution, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlDistributionFind,
			Args:    []interface{}{int64(id)},
			Init:    make([]*domain.Distribution, 0),
			ReadAll: readAllDistributions,
		},
	})
	if err != nil {
		return nil, err
	}

	list, _ := results[0].([]*domain.Distribution)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (book *DistributionBook) Update(d *domain.Distribution) error {
	_, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:  sqlDistributionUpdate,
			Args:   []interface{}{int64(d.ID), d.ClaimedAmount.String(), d.Exists},
			Affect: 1,
		},
	})
	return err
}

func (book *DistributionBook) List() ([]*domain.Distribution, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlDistributionList,
			Init:    make([]*domain.Distribution, 0),
			ReadAll: readAllDistributions,
		},
	})
	if err != nil {
		return nil, err
	}

	list, _ := results[0].([]*domain.Distribution)
	return list, nil
}

func (book *DistributionBook) SetEligible(id uint64, user common.Address, amount *big.Int) error {
	_, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:  sqlSnapshotInsert,
			Args:   []interface{}{int64(id), user.Hex(), amount.String()},
			Affect: 1,
		},
	})
	return err
}

func (book *DistributionBook) EligibleOf(id uint64, user common.Address) (*big.Int, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlSnapshotEligible,
			Args:    []interface{}{int64(id), user.Hex()},
			Init:    make([]string, 0),
			ReadAll: readAllValues,
		},
	})
	if err != nil {
		return nil, err
	}

	list, _ := results[0].([]string)
	if len(list) == 0 {
		return new(big.Int), nil
	}
	return bigFromString(list[0]), nil
}

func (book *DistributionBook) MarkClaimed(id uint64, user common.Address) error {
	_, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:  sqlSnapshotMarkClaimed,
			Args:   []interface{}{int64(id), user.Hex()},
			Affect: 1,
		},
	})
	return err
}

func (book *DistributionBook) HasClaimed(id uint64, user common.Address) (bool, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlSnapshotClaimed,
			Args:    []interface{}{int64(id), user.Hex()},
			Init:    make([]bool, 0),
			ReadAll: readAllFlags,
		},
	})
	if err != nil {
		return false, err
	}

	list, _ := results[0].([]bool)
	if len(list) == 0 {
		return false, nil
	}
	return list[0], nil
}
