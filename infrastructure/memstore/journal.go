package memstore

import (
	"staking/domain"
)

// JournalBook is the append-only operation log.
type JournalBook struct {
	state *state
}

func (book *JournalBook) Append(e *domain.JournalEntry) error {
	book.state.journalID++

	entry := &domain.JournalEntry{
		ID:        book.state.journalID,
		Op:        e.Op,
		Actor:     e.Actor,
		Reference: e.Reference,
		Amount:    cloneBig(e.Amount),
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
	book.state.journal = append(book.state.journal, entry)
	return nil
}

func (book *JournalBook) Recent(limit int) ([]*domain.JournalEntry, error) {
	if limit < 0 {
		limit = 0
	}
	if limit > len(book.state.journal) {
		limit = len(book.state.journal)
	}

	list := make([]*domain.JournalEntry, 0, limit)
	for i := len(book.state.journal) - 1; i >= len(book.state.journal)-limit; i-- {
		list = append(list, book.state.journal[i])
	}
	return list, nil
}
