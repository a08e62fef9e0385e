package domain

import "time"

// RaffleCodeMin and RaffleCodeMax bound the 4-digit code space.
const (
	RaffleCodeMin = 1000
	RaffleCodeMax = 9999
)

// Entrant represents one successful giveaway registration.
// Records are created once and never mutated; email and raffle code are
// unique across the whole collection.
type Entrant struct {
	ID         string
	Email      string
	RaffleCode string
	EventTitle string
	EventDate  string
	CreatedAt  time.Time
}
