package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func TestGetExecutor(t *testing.T) {
	db := Wrap(&sql.DB{}, nil)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := &fakeTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}

func TestOperation(t *testing.T) {
	tests := map[string]string{
		"SELECT id FROM bookings":              "select",
		"  insert into bookings (id)":          "insert",
		"UPDATE bookings SET status = $1":      "update",
		"DELETE FROM shop_rules":               "delete",
		"WITH t AS (SELECT 1) SELECT * FROM t": "with",
		"LOCK TABLE bookings":                  "other",
		"":                                     "unknown",
	}

	for query, want := range tests {
		assert.Equal(t, want, Operation(query), query)
	}
}
