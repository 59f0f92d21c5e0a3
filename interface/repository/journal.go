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
	sqlJournalInsert = `
	insert into journal (
			op, actor, reference, amount, note, created_at
		)
		values (
			$1, $2, $3, $4::numeric, $5, $6
		)
`

	sqlJournalRecent = `
	select
		id, op, actor, reference, amount, note, created_at
	from journal
	order by id desc
	limit $1
`
)

func readAllJournalEntries(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	var (
		id        int64
		op        string
		actor     string
		reference string
		amount    string
		note      string
		created   time.Time
	)
	err := scan(&id, &op, &actor, &reference, &amount, &note, &created)

	list := memo.([]*domain.JournalEntry)
	if err != nil {
		return list, err
	}

	return append(list, &domain.JournalEntry{
		ID:        uint64(id),
		Op:        op,
		Actor:     common.HexToAddress(actor),
		Reference: reference,
		Amount:    bigFromString(amount),
		Note:      note,
		CreatedAt: created,
	}), nil
}

// JournalBook is the append-only operation log.
type JournalBook struct {
	tx *sql.Tx
}

func (book *JournalBook) Append(e *domain.JournalEntry) error {
	amount := e.Amount
	if amount == nil {
		amount = new(big.Int)
	}

	_, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query: sqlJournalInsert,
			Args: []interface{}{
				e.Op, e.Actor.Hex(), e.Reference, amount.String(), e.Note, e.CreatedAt,
			},
			Affect: 1,
		},
	})
	return err
}

func (book *JournalBook) Recent(limit int) ([]*domain.JournalEntry, error) {
	results, err := sqlbatch.Batch(book.tx, []sqlbatch.Command{
		{
			Query:   sqlJournalRecent,
			Args:    []interface{}{limit},
			Init:    make([]*domain.JournalEntry, 0),
			ReadAll: readAllJournalEntries,
		},
	})
	if err != nil {
		return nil, err
	}

	list, _ := results[0].([]*domain.JournalEntry)
	return list, nil
}
