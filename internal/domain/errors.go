package domain

import "errors"

var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrDuplicateEntrant   = errors.New("email already entered")
	ErrRaffleCodeTaken    = errors.New("raffle code taken")
	ErrCodeSpaceExhausted = errors.New("raffle code space exhausted")
	ErrNoEntrants         = errors.New("no entrants")
	ErrInvalidDrawCount   = errors.New("invalid draw count")
	ErrInvalidID          = errors.New("invalid id")
)
