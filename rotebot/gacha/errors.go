package gacha

import (
	"errors"
	"fmt"
)

// Game-rule rejections. These are user-visible and terminal at the point
// of detection; none of them leave partial state behind.
var (
	ErrInvalidSpinCount  = errors.New("spin count out of range")
	ErrNotRegistered     = errors.New("user is not registered")
	ErrInsufficientFunds = errors.New("insufficient PPT balance")
	ErrCardNotFound      = errors.New("card not found")
	ErrEmptyPool         = errors.New("draw pool is empty")
	ErrNotSessionOwner   = errors.New("only the requesting user may act on this session")
	ErrSessionResolved   = errors.New("session already resolved")
	ErrSessionBusy       = errors.New("another spin session is in progress")
	ErrSessionNotRunning = errors.New("session is not in the running state")
)

// ErrStoreUnavailable marks persistence failures, as opposed to game-rule
// rejections. Match with errors.Is; the concrete driver error stays
// reachable through Unwrap.
var ErrStoreUnavailable = errors.New("backing store unavailable")

type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStoreUnavailable }

func wrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
