package domain

// EventContext is the denormalized event snapshot copied onto entrants
// at submission time and included in confirmation messages. It carries
// no identity; it is never used for lookups.
type EventContext struct {
	Title        string
	Date         string
	VenueName    string
	VenueAddress string
}
