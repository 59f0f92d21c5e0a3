package repository

import (
	"database/sql"

	"github.com/behrang/sqlbatch"
)

var (
	BatchOptionNormal = sql.TxOptions{
		ReadOnly:  false,
		Isolation: sql.LevelReadCommitted,
	}

	BatchOptionNormalReadOnly = sql.TxOptions{
		ReadOnly:  true,
		Isolation: sql.LevelReadCommitted,
	}

	BatchOptionSerializable = sql.TxOptions{
		ReadOnly:  false,
		Isolation: sql.LevelSerializable,
	}

	BatchOptionSerializableReadOnly = sql.TxOptions{
		ReadOnly:  true,
		Isolation: sql.LevelSerializable,
	}
)

// BatchHandler is a database handler that executes a batch of SQL commands.
type BatchHandler interface {
	Batch(opts *sql.TxOptions, commands []sqlbatch.Command) ([]interface{}, error)
}

// RunHandler is a database handler that additionally runs a closure inside
// a single transaction, committing only when the closure returns nil.
type RunHandler interface {
	BatchHandler
	Run(opts *sql.TxOptions, fn func(tx *sql.Tx) error) error
}
