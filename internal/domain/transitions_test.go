package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusInProgress, false},
		{StatusPending, StatusNoShow, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusConfirmed, StatusPending, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusNoShow, false},
		{ReservationStatus("unknown"), StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCanTransition_NoSelfTransitions(t *testing.T) {
	for _, s := range AllStatuses {
		assert.False(t, CanTransition(s, s), "self transition allowed for %s", s)
	}
}

func TestCanTransition_TerminalStatesHaveNoEdges(t *testing.T) {
	for _, from := range AllStatuses {
		if !from.IsTerminal() {
			continue
		}
		for _, to := range AllStatuses {
			assert.False(t, CanTransition(from, to), "%s -> %s must be rejected", from, to)
		}
		assert.Empty(t, NextStatuses(from))
	}
}

func TestAssertTransition(t *testing.T) {
	require.NoError(t, AssertTransition(StatusPending, StatusConfirmed))

	err := AssertTransition(StatusCompleted, StatusCancelled)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	var transitionErr *InvalidTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, StatusCompleted, transitionErr.From)
	assert.Equal(t, StatusCancelled, transitionErr.To)
	assert.Contains(t, err.Error(), "completed -> cancelled")
}

func TestNextStatuses_ReturnsCopy(t *testing.T) {
	next := NextStatuses(StatusPending)
	next[0] = StatusNoShow

	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
}

func TestReservationStatus_Classification(t *testing.T) {
	for _, s := range ActiveStatuses {
		assert.True(t, s.IsActive())
		assert.False(t, s.IsTerminal())
	}
	for _, s := range InactiveStatuses {
		assert.False(t, s.IsActive())
		assert.True(t, s.IsTerminal())
	}

	_, err := ParseReservationStatus("cancelled_by_user")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	status, err := ParseReservationStatus("no_show")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, status)
}
