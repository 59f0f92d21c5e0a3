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
	sqlPositionInsert = `
	insert into positions (
			address, idx, principal, start_time, duration_seconds, apy, interest, withdrawn
		)
		values (
			$1, $2, $3::numeric, $4, $5, $6, $7::numeric, false
		)
`

	sqlPositionFind = `
	select
		principal, start_time, duration_seconds, apy, interest, withdrawn
	from positions
	where address = $1 and idx = $2
`

	sqlPositionFindAll = `
	select
		principal, start_time, duration_seconds, apy, interest, withdrawn
	from positions
	where address = $1
	order by idx
`

	sqlPositionCount = `
	select
		count(*)
	from positions
	where address = $1
`

	sqlPositionMarkWithdrawn = `
	update positions
		set withdrawn = true
	where address = $1 and idx = $2 and withdrawn = false
`

	sqlPositionSumActive = `
	select
		coalesce(sum(principal), 0)
	from positions
	where address = $1 and withdrawn = false
`
)

func readAllPositions(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	var (
		principal string
		start     time.Time
		seconds   int64
		apy       int64
		interest  string
		withdrawn bool
	)
	err := scan(&principal, &start, &seconds, &apy, &interest, &withdrawn)

	list := memo.([]*domain.StakePosition)
	if err != nil {
		return list, err
	}

	return append(list, &domain.StakePosition{
		Principal: bigFromString(principal),
		StartTime: start,
		Duration:  time.Duration(seconds) * time.Second,
		APY:       uint32(apy),
		Interest:  bigFromString(interest),
		Withdrawn: withdrawn,
	}), nil
}

func readCount(scan func(...interface{}) error) (interface{}, error) {
	var count int64
	err := scan(&count)
	return count, err
}

func readBig(scan func(...interface{}) error) (interface{}, error) {
	var value string
	err := scan(&value)
	if err != nil {
		return nil, err
	}
	return bigFromString(value), nil
}

// PositionBook keeps the append-only per-user stake lists.
type PositionBook struct {
	tx *sql.Tx
}

func (book *PositionBook) Append(user common.Address, position *domain.StakePosition) (int, error) {
	count, err := book.CountOf(user)
	if err != nil {
		return 0, err
	}

	_, err = sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query: sqlPositionInsert,
			Args: []interface{}{
				user.Hex(), count, position.Principal.String(), position.StartTime,
				int64(position.Duration / time.Second), int64(position.APY),
				position.Interest.String(),
			},
			Affect: 1,
		},
	})
	return count, err
}

func (book *PositionBook) Get(user common.Address, index int) (*domain.StakePosition, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlPositionFind,
			Args:    []interface{}{user.Hex(), index},
			Init:    make([]*domain.StakePosition, 0),
			ReadAll: readAllPositions,
		},
	})
	if err != nil {
		return nil, err
	}

	list, _ := results[0].([]*domain.StakePosition)
	if len(list) == 0 {
		return nil, domain.ErrorInvalidIndex
	}
	return list[0], nil
}

func (book *PositionBook) ListOf(user common.Address) ([]*domain.StakePosition, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlPositionFindAll,
			Args:    []interface{}{user.Hex()},
			Init:    make([]*domain.StakePosition, 0),
			ReadAll: readAllPositions,
		},
	})
	if err != nil {
		return nil, err
	}

	list, _ := results[0].([]*domain.StakePosition)
	return list, nil
}

func (book *PositionBook) CountOf(user common.Address) (int, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlPositionCount,
			Args:    []interface{}{user.Hex()},
			ReadOne: readCount,
		},
	})
	if err != nil {
		return 0, err
	}

	count, _ := results[0].(int64)
	return int(count), nil
}

func (book *PositionBook) MarkWithdrawn(user common.Address, index int) error {
	_, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:  sqlPositionMarkWithdrawn,
			Args:   []interface{}{user.Hex(), index},
			Affect: 1,
		},
	})
	return err
}

func (book *PositionBook) ActivePrincipalOf(user common.Address) (*big.Int, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlPositionSumActive,
			Args:    []interface{}{user.Hex()},
			ReadOne: readBig,
		},
	})
	if err != nil {
		return nil, err
	}

	sum, _ := results[0].(*big.Int)
	if sum == nil {
		sum = new(big.Int)
	}
	return sum, nil
}
