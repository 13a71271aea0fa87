package rules

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rowsAffected int64

func (r rowsAffected) LastInsertId() (int64, error) { return 0, nil }
func (r rowsAffected) RowsAffected() (int64, error) { return int64(r), nil }

type execOnly struct {
	DBExecutor
	query    string
	args     []interface{}
	affected int64
}

func (e *execOnly) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.query, e.args = query, args
	return rowsAffected(e.affected), nil
}

func TestDelete(t *testing.T) {
	exec := &execOnly{affected: 1}
	repo := NewRepository(exec)

	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.Equal(t, "DELETE FROM shop_rules WHERE shop_id = $1", exec.query)
	assert.Equal(t, []interface{}{int64(5)}, exec.args)

	exec.affected = 0
	assert.ErrorIs(t, repo.Delete(context.Background(), 5), ErrRulesNotFound)
}

func TestNullableInt(t *testing.T) {
	assert.Nil(t, nullableInt(sql.NullInt32{}))

	v := nullableInt(sql.NullInt32{Int32: 45, Valid: true})
	require.NotNil(t, v)
	assert.Equal(t, 45, *v)
}
