package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition возвращается при попытке недопустимой смены статуса
var ErrInvalidTransition = errors.New("domain: invalid status transition")

// InvalidTransitionError описывает отклонённый переход и совместима с errors.Is(err, ErrInvalidTransition)
type InvalidTransitionError struct {
	From ReservationStatus
	To   ReservationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition.Error(), e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// transitions таблица допустимых переходов. Терминальные статусы не имеют исходящих рёбер
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// CanTransition reports whether a reservation may move from one status to another.
// Self-transitions are never allowed.
func CanTransition(from, to ReservationStatus) bool {
	if from == to {
		return false
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AssertTransition returns *InvalidTransitionError when CanTransition(from, to) is false.
func AssertTransition(from, to ReservationStatus) error {
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// NextStatuses возвращает копию списка статусов, в которые можно перейти из from
func NextStatuses(from ReservationStatus) []ReservationStatus {
	next := transitions[from]
	out := make([]ReservationStatus, len(next))
	copy(out, next)
	return out
}
