package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "status").
		From("bookings").
		Where(squirrel.Eq{"barber_id": int64(7)}).
		Where(squirrel.Eq{"booking_date": "2025-01-15"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, status FROM bookings WHERE barber_id = $1 AND booking_date = $2", query)
	assert.Equal(t, []interface{}{int64(7), "2025-01-15"}, args)
}

func TestUpdate_CompareAndSet(t *testing.T) {
	query, args, err := Update("bookings").
		Set("status", "confirmed").
		Where(squirrel.Eq{"id": int64(1), "status": "pending"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE bookings SET status = $1 WHERE id = $2 AND status = $3", query)
	assert.Equal(t, []interface{}{"confirmed", int64(1), "pending"}, args)
}
